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

// Htmldiff compares two HTML fragments and prints the differences as HTML.
//
// Usage:
//
//	htmldiff [flags] OLD NEW
//
// Either OLD or NEW can be "-" to read from standard input. See htmldiff --help for all flags.
package main

func main() {
	Execute()
}
