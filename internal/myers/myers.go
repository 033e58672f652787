// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package myers

import (
	"math"

	"znkr.io/htmldiff/internal/config"
	"znkr.io/htmldiff/internal/rvecs"
)

// DiffFunc compares the contents of x and y using eq and returns the result vectors describing
// the changes necessary to convert from one to the other (see package rvecs).
//
// When elements could either be deleted first or inserted first, deletions come first. The
// result is deterministic.
func DiffFunc[T any](x, y []T, eq func(a, b T) bool, cfg config.Config) (rx, ry []bool) {
	rx, ry = rvecs.Make(x, y)

	var m myers[T]
	m.rx, m.ry = rx, ry
	smin, smax, tmin, tmax := m.init(x, y, eq)
	if smin == smax && tmin == tmax {
		return rx, ry
	}
	m.compare(smin, smax, tmin, tmax, cfg.Optimal, eq)
	return rx, ry
}

type myers[T any] struct {
	x, y []T

	// Furthest reaching endpoints of the forward and backward d-paths. The endpoint for diagonal
	// k is stored in v[v0+k]. Only s is stored, t follows from t = s - k.
	vf, vb []int
	v0     int

	// Cost limit for the TOO_EXPENSIVE heuristic.
	costLimit int

	rx, ry []bool
}

// init prepares m for comparing x and y and returns the bounds of the region that remains after
// stripping the common prefix and suffix.
func (m *myers[T]) init(x, y []T, eq func(a, b T) bool) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	for smin < smax && tmin < tmax && eq(x[smin], y[tmin]) {
		smin++
		tmin++
	}
	for smax > smin && tmax > tmin && eq(x[smax-1], y[tmax-1]) {
		smax--
		tmax--
	}

	diagonals := (smax - smin) + (tmax - tmin)
	vlen := 2*diagonals + 3 // one for the middle and two for the borders
	buf := make([]int, 2*vlen)

	m.x, m.y = x, y
	m.vf, m.vb = buf[:vlen], buf[vlen:]
	m.v0 = diagonals + 1

	// Approximately the square root of the number of diagonals.
	costLimit := 1
	for i := diagonals; i != 0; i >>= 2 {
		costLimit <<= 1
	}
	m.costLimit = max(minCostLimit, costLimit)

	if m.rx == nil || m.ry == nil {
		m.rx, m.ry = rvecs.Make(x, y)
	}
	return
}

// compare marks all changes between x[smin:smax] and y[tmin:tmax].
//
// Important: x[smin:smax] and y[tmin:tmax] must not have a common prefix or a common suffix.
func (m *myers[T]) compare(smin, smax, tmin, tmax int, optimal bool, eq func(a, b T) bool) {
	switch {
	case smin == smax:
		for t := tmin; t < tmax; t++ {
			m.ry[t] = true
		}
	case tmin == tmax:
		for s := smin; s < smax; s++ {
			m.rx[s] = true
		}
	default:
		// The split is a, possibly empty, run of matches (s0, t0) to (s1, t1). The regions before
		// and after it have no common prefix or suffix by construction.
		s0, s1, t0, t1, opt0, opt1 := m.split(smin, smax, tmin, tmax, optimal, eq)
		m.compare(smin, s0, tmin, t0, opt0, eq)
		m.compare(s1, smax, t1, tmax, opt1, eq)
	}
}

// split finds a, possibly empty, run of matches in the middle of an optimal path from (smin, tmin)
// to (smax, tmax). If the search becomes too expensive and optimal is false, the run is in the
// middle of a good enough path instead. opt0 and opt1 report whether the regions before and after
// the run still need to be searched optimally.
//
// Important: x[smin:smax] and y[tmin:tmax] must not have a common prefix or a common suffix and
// they may not both be empty.
func (m *myers[T]) split(smin, smax, tmin, tmax int, optimal bool, eq func(a, b T) bool) (s0, s1, t0, t1 int, opt0, opt1 bool) {
	N, M := smax-smin, tmax-tmin
	x, y := m.x, m.y
	vf, vb := m.vf, m.vb
	v0 := m.v0

	// Diagonals inside the grid.
	kmin, kmax := smin-tmax, smax-tmin

	// Forward paths start on diagonal fmid, backward paths on bmid. Both searches use the same
	// numbering for k, so overlaps can be checked without converting between them.
	fmid, bmid := smin-tmin, smax-tmax
	fmin, fmax := fmid, fmid
	bmin, bmax := bmid, bmid

	// Forward and backward paths can only overlap after a forward step if the parity of N-M is
	// odd and only after a backward step if it is even.
	odd := (N-M)%2 != 0

	// There's no common prefix or suffix, so the 0-paths are trivial and the search starts at d=1.
	// An optimal path has at most N+M non-diagonal steps, the loop always terminates.
	vf[v0+fmid] = smin
	vb[v0+bmid] = smax
	for d := 1; ; d++ {
		// Grow the range of diagonals by one in each direction but stay inside the grid. The
		// borders of the range are initialized so that the k-loop doesn't need special cases.
		if fmin > kmin {
			fmin--
			vf[v0+fmin-1] = math.MinInt
		} else {
			fmin++
		}
		if fmax < kmax {
			fmax++
			vf[v0+fmax+1] = math.MinInt
		} else {
			fmax--
		}
		for k := fmin; k <= fmax; k += 2 {
			k0 := k + v0

			// The furthest reaching d-path on k extends either the (d-1)-path on k+1 with a step
			// down or the (d-1)-path on k-1 with a step right. Ties prefer the step right, which
			// puts deletions before insertions.
			var s int
			if vf[k0-1] < vf[k0+1] {
				s = vf[k0+1]
			} else {
				s = vf[k0-1] + 1
			}
			t := s - k

			s0, t0 := s, t
			for s < smax && t < tmax && eq(x[s], y[t]) {
				s++
				t++
			}
			vf[k0] = s

			if odd && bmin <= k && k <= bmax && s >= vb[k0] {
				return s0, s, t0, t, true, true
			}
		}

		// Backward search, mirrors the forward search.
		if bmin > kmin {
			bmin--
			vb[v0+bmin-1] = math.MaxInt
		} else {
			bmin++
		}
		if bmax < kmax {
			bmax++
			vb[v0+bmax+1] = math.MaxInt
		} else {
			bmax--
		}
		for k := bmin; k <= bmax; k += 2 {
			k0 := k + v0
			var s int
			if vb[k0-1] < vb[k0+1] {
				s = vb[k0-1]
			} else {
				s = vb[k0+1] - 1
			}
			t := s - k

			s0, t0 := s, t
			for s > smin && t > tmin && eq(x[s-1], y[t-1]) {
				s--
				t--
			}
			vb[k0] = s

			if !odd && fmin <= k && k <= fmax && s <= vf[k0] {
				return s, s0, t, t0, true, true
			}
		}

		if optimal || d < m.costLimit {
			continue
		}

		// TOO_EXPENSIVE: Give up on the optimal split and use the furthest reaching forward path
		// that maximizes s+t or the backward path that minimizes s+t, whichever got further.
		fbest, fbestk := math.MinInt, 0
		for k := fmin; k <= fmax; k += 2 {
			s := vf[k+v0]
			t := s - k
			if smin <= s && s < smax && tmin <= t && t < tmax && fbest < s+t {
				fbest, fbestk = s+t, k
			}
		}
		bbest, bbestk := math.MaxInt, 0
		for k := bmin; k <= bmax; k += 2 {
			s := vb[k+v0]
			t := s - k
			if smin <= s && s < smax && tmin <= t && t < tmax && s+t < bbest {
				bbest, bbestk = s+t, k
			}
		}

		switch {
		case fbest != math.MinInt && (smax+tmax)-bbest < fbest-(smin+tmin):
			k := fbestk
			k0 := k + v0
			s := vf[k0]
			t := s - k
			// Walk back to the start of the run of matches that ends in (s, t).
			var pk int
			if vf[k0-1] < vf[k0+1] {
				pk = k + 1
			} else {
				pk = k - 1
			}
			ps := vf[pk+v0]
			pt := ps - pk
			diag := min(s-ps, t-pt)
			return s - diag, s, t - diag, t, true, false
		case bbest != math.MaxInt:
			k := bbestk
			k0 := k + v0
			s := vb[k0]
			t := s - k
			var pk int
			if vb[k0-1] < vb[k0+1] {
				pk = k - 1
			} else {
				pk = k + 1
			}
			ps := vb[pk+v0]
			pt := ps - pk
			diag := min(ps-s, pt-t)
			return s, s + diag, t, t + diag, false, true
		default:
			panic("no best path found")
		}
	}
}
