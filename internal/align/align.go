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

// Package align aligns two sequences and describes the result as opcodes.
//
// Some elements carry little information on their own (e.g. whitespace). If they were allowed to
// anchor the alignment, incidental agreement between them could dominate the result. Instead,
// these low-signal elements are excluded while searching for matches and are only matched where
// they directly extend the regions between matches.
package align

import (
	"znkr.io/htmldiff/internal/config"
	"znkr.io/htmldiff/internal/myers"
	"znkr.io/htmldiff/internal/rvecs"
)

// Opcodes aligns x and y and returns the opcodes describing the alignment.
func Opcodes[T any](x, y []T, eq func(a, b T) bool, lowSignal func(T) bool, cfg config.Config) []rvecs.Opcode {
	rx, ry := Align(x, y, eq, lowSignal, cfg)
	return rvecs.Opcodes(rx, ry)
}

// Align aligns x and y and returns the result vectors (see package rvecs).
//
// Matches are found in two steps: First, Myers' algorithm aligns the elements that are not low
// signal. Then, the regions between two consecutive matches are matched up from both ends as far
// as the elements are equal. Everything else is a deletion or an insertion.
func Align[T any](x, y []T, eq func(a, b T) bool, lowSignal func(T) bool, cfg config.Config) (rx, ry []bool) {
	xi, xs := strong(x, lowSignal)
	yi, ys := strong(y, lowSignal)
	sx, sy := myers.DiffFunc(xs, ys, eq, cfg)

	rx, ry = rvecs.Make(x, y)
	s, t := 0, 0 // start of the region after the last match
	for i, j := 0, 0; i < len(xs) || j < len(ys); {
		switch {
		case sx[i]:
			i++
		case sy[j]:
			j++
		default:
			fill(rx, ry, x, y, s, xi[i], t, yi[j], eq)
			s, t = xi[i]+1, yi[j]+1
			i++
			j++
		}
	}
	fill(rx, ry, x, y, s, len(x), t, len(y), eq)
	return rx, ry
}

// strong returns the elements of x that are not low-signal together with their indices in x.
func strong[T any](x []T, lowSignal func(T) bool) (idx []int, elems []T) {
	idx = make([]int, 0, len(x))
	elems = make([]T, 0, len(x))
	for i, e := range x {
		if !lowSignal(e) {
			idx = append(idx, i)
			elems = append(elems, e)
		}
	}
	return idx, elems
}

// fill marks the changes between x[smin:smax] and y[tmin:tmax], a region that is bounded by
// matches or by the ends of the inputs.
func fill[T any](rx, ry []bool, x, y []T, smin, smax, tmin, tmax int, eq func(a, b T) bool) {
	for smin < smax && tmin < tmax && eq(x[smin], y[tmin]) {
		smin++
		tmin++
	}
	for smax > smin && tmax > tmin && eq(x[smax-1], y[tmax-1]) {
		smax--
		tmax--
	}
	for s := smin; s < smax; s++ {
		rx[s] = true
	}
	for t := tmin; t < tmax; t++ {
		ry[t] = true
	}
}
