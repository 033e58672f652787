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

package rvecs

import "fmt"

// Kind describes how an opcode relates the two inputs.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Kind
type Kind int

const (
	Equal   Kind = iota // x[I1:I2] and y[J1:J2] match
	Delete              // x[I1:I2] only exists in x, J1 == J2
	Insert              // y[J1:J2] only exists in y, I1 == I2
	Replace             // x[I1:I2] is substituted by y[J1:J2]
)

// Opcode describes one maximal block of the alignment of x and y.
type Opcode struct {
	Kind   Kind
	I1, I2 int // Range in x.
	J1, J2 int // Range in y.
}

func (op Opcode) String() string {
	return fmt.Sprintf("%v x[%d:%d] y[%d:%d]", op.Kind, op.I1, op.I2, op.J1, op.J2)
}

// Opcodes translates the result vectors into a list of opcodes. The ranges of the opcodes
// partition x and y in order.
//
// All consecutive deletions and insertions between two matches end up in a single opcode,
// regardless of their interleaving in rx and ry.
func Opcodes(rx, ry []bool) []Opcode {
	var ops []Opcode
	n, m := len(rx)-1, len(ry)-1
	for s, t := 0, 0; s < n || t < m; {
		start := s + t
		s0, t0 := s, t
		for s < n && rx[s] || t < m && ry[t] {
			for s < n && rx[s] {
				s++
			}
			for t < m && ry[t] {
				t++
			}
		}
		switch {
		case s > s0 && t > t0:
			ops = append(ops, Opcode{Replace, s0, s, t0, t})
		case s > s0:
			ops = append(ops, Opcode{Delete, s0, s, t0, t})
		case t > t0:
			ops = append(ops, Opcode{Insert, s0, s, t0, t})
		}

		s0, t0 = s, t
		for s < n && t < m && !rx[s] && !ry[t] {
			s++
			t++
		}
		if s > s0 {
			ops = append(ops, Opcode{Equal, s0, s, t0, t})
		}
		if s+t == start {
			// Only one of x and y has elements left and none of them are marked.
			panic(fmt.Sprintf("inconsistent result vectors at x[%d], y[%d]", s, t))
		}
	}
	return ops
}
