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

// Package htmldiff compares two HTML fragments and renders the differences as HTML.
//
// The main function is [Diff], which returns a single fragment in which deleted content is wrapped
// in <del class="diff"> and inserted content is wrapped in <ins class="diff">. The wrappers can be
// changed with [Deletion] and [Insertion]. [Edits] returns the individual changes instead.
//
// Both fragments are broken down into words, whitespace runs and void elements (e.g. <br> or
// <img>), each tagged with the path of elements that enclose it. These leaves are aligned with
// Myers' algorithm, where whitespace never anchors a match. The result is then rendered by
// opening and closing elements whenever the path changes, which means the output is well-formed
// even if a change crosses element boundaries.
//
// Elements are compared by name and a few significant attributes: By default, two links are only
// the same if their href matches and two images are only the same if their src matches. All other
// attribute changes are ignored. Use [SignificantAttributes] and [VoidElements] to customize.
// Comments are dropped. The content of raw text elements such as <script> is diffed and escaped
// like ordinary text.
//
// Performance: Default complexity is O(N^1.5 log N) time and O(N) space where N is the number of
// words in both fragments. With [Optimal], time complexity is O(ND) where D is the number of
// differences.
package htmldiff
