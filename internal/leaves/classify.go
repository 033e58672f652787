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

package leaves

import "znkr.io/htmldiff/internal/rvecs"

// Classify marks the leaves of a and b according to ops and returns them in output order.
//
// Matches are taken from a. Within a replacement, all deletions come before all insertions.
func Classify(ops []rvecs.Opcode, a, b []*Leaf) []*Leaf {
	n := 0
	for _, op := range ops {
		switch op.Kind {
		case rvecs.Equal, rvecs.Delete:
			n += op.I2 - op.I1
		case rvecs.Insert:
			n += op.J2 - op.J1
		case rvecs.Replace:
			n += op.I2 - op.I1 + op.J2 - op.J1
		}
	}

	out := make([]*Leaf, 0, n)
	mark := func(ls []*Leaf, c Change) {
		for _, l := range ls {
			l.Mark(c)
			out = append(out, l)
		}
	}
	for _, op := range ops {
		switch op.Kind {
		case rvecs.Equal:
			mark(a[op.I1:op.I2], Unchanged)
		case rvecs.Delete:
			mark(a[op.I1:op.I2], Deleted)
		case rvecs.Insert:
			mark(b[op.J1:op.J2], Inserted)
		case rvecs.Replace:
			mark(a[op.I1:op.I2], Deleted)
			mark(b[op.J1:op.J2], Inserted)
		default:
			panic("never reached")
		}
	}
	return out
}
