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

// Package wellformed checks the tag structure of rendered HTML and extracts its text.
//
// Both functions work on the token stream, no tree is constructed. This means that they see the
// HTML exactly as it was written, without any of the repairs an HTML parser would apply.
package wellformed

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"znkr.io/htmldiff/internal/markup"
)

// ErrMalformed is returned by [Check] if start and end tags don't match up.
var ErrMalformed = errors.New("malformed HTML")

// Check reports an error if an end tag doesn't match the innermost open element or if elements are
// still open at the end of s. Elements that are void in reg must not have an end tag.
func Check(s string, reg markup.Registry) error {
	z := html.NewTokenizer(strings.NewReader(s))
	var open []string
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return err
			}
			if len(open) > 0 {
				return fmt.Errorf("%w: unclosed <%s>", ErrMalformed, open[len(open)-1])
			}
			return nil
		case html.StartTagToken:
			name, _ := z.TagName()
			if !reg.IsVoid(string(name)) {
				open = append(open, string(name))
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch {
			case reg.IsVoid(string(name)):
				return fmt.Errorf("%w: end tag for void element </%s>", ErrMalformed, name)
			case len(open) == 0:
				return fmt.Errorf("%w: unexpected </%s>", ErrMalformed, name)
			case open[len(open)-1] != string(name):
				return fmt.Errorf("%w: unexpected </%s>, want </%s>", ErrMalformed, name, open[len(open)-1])
			}
			open = open[:len(open)-1]
		}
	}
}

// Text returns the unescaped text content of s, excluding any text inside of elements whose name
// is in skip.
func Text(s string, skip ...string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	depth := 0 // number of open skipped elements
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.StartTagToken:
			if name, _ := z.TagName(); contains(skip, name) {
				depth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); contains(skip, name) && depth > 0 {
				depth--
			}
		case html.TextToken:
			if depth == 0 {
				sb.Write(z.Text())
			}
		}
	}
}

func contains(names []string, name []byte) bool {
	for _, n := range names {
		if n == string(name) {
			return true
		}
	}
	return false
}
