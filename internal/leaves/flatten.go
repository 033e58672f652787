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

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"znkr.io/htmldiff/internal/markup"
)

// Flatten returns the leaves of the children of root in document order. The root itself is a
// neutral wrapper and doesn't appear in any path.
//
// Text is split into words and whitespace runs, void elements become a single leaf and all other
// elements add themselves to the path of their descendants. An element that the registry declares
// void but that has children is treated like any other element. Two additional kinds of empty
// text leaves are emitted:
//
//   - Between an element and an immediately following sibling element, so that the boundary
//     between them survives reconstruction even if there is no content in between. A void
//     element doesn't end a sequence of sibling elements.
//   - Inside of elements that don't produce any leaves, so that empty elements survive
//     reconstruction.
//
// Comments and other non-content nodes are ignored.
func Flatten(root *html.Node, reg markup.Registry) []*Leaf {
	f := flattener{reg: reg}
	f.children(root, nil)
	return f.out
}

type flattener struct {
	reg markup.Registry
	out []*Leaf
}

func (f *flattener) emit(parents []*markup.Element, text string, void *markup.Element) {
	f.out = append(f.out, &Leaf{
		Parents: parents,
		Text:    text,
		Void:    void,
	})
}

func (f *flattener) children(n *html.Node, parents []*markup.Element) {
	afterElement := false // a non-void element follows the last text
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if c.Data == "" {
				continue
			}
			for _, w := range Words(c.Data) {
				f.emit(parents, w, nil)
			}
			afterElement = false

		case html.ElementNode:
			if afterElement {
				f.emit(parents, "", nil)
			}
			elt := f.reg.Element(c)
			if f.reg.IsVoid(elt.Name) && c.FirstChild == nil {
				f.emit(parents, "", elt)
				continue
			}
			// Leaves share path prefixes, the full slice expression forces a copy on append.
			path := append(parents[:len(parents):len(parents)], elt)
			before := len(f.out)
			f.children(c, path)
			if len(f.out) == before {
				f.emit(path, "", nil)
			}
			afterElement = true
		}
	}
}

// Words splits s into maximal runs of whitespace and non-whitespace characters. The
// concatenation of the result is s.
func Words(s string) []string {
	var words []string
	for len(s) > 0 {
		r, _ := utf8.DecodeRuneInString(s)
		space := unicode.IsSpace(r)
		i := strings.IndexFunc(s, func(r rune) bool { return unicode.IsSpace(r) != space })
		if i < 0 {
			i = len(s)
		}
		words = append(words, s[:i])
		s = s[i:]
	}
	return words
}
