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

// Package myers contains an implementation of Myers' algorithm for slices of arbitrary elements
// compared with an equality function.
//
// The implementation uses the linear space variant described in section 4.2 of the paper: a
// forward and a backward search for furthest reaching d-paths meet in the middle, the overlap
// splits the problem in two, and both halves are solved recursively. Without heuristics the
// runtime is O(ND) where N is the sum of the lengths of both inputs and D is the number of
// differences.
//
// By default, the TOO_EXPENSIVE heuristic by Paul Eggert limits the time spend on large inputs with
// many differences: once the search exceeds a cost limit (in terms of d), the furthest reaching
// d-path that optimizes s + t is used as a split point instead of the optimal one. The result is
// still a valid alignment, but not necessarily a minimal one.
//
// Coordinates: s indexes x, t indexes y and k = s - t numbers the diagonals. Moving right in the
// edit graph deletes x[s], moving down inserts y[t] and a diagonal step matches x[s] with y[t].
//
// # References
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
package myers
