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

// Package leaves flattens HTML trees into sequences of leaves, the atomic units that are compared
// when diffing, and classifies them according to an alignment.
//
// A leaf is either a text token or a void element together with the path of elements from the
// fragment root down to it. Non-void elements never become leaves, they only exist as part of the
// paths of their descendants.
package leaves

import (
	"strconv"
	"strings"
	"unicode"

	"znkr.io/htmldiff/internal/markup"
)

// Change describes how a leaf was classified.
type Change uint8

const (
	Unset Change = iota
	Unchanged
	Deleted
	Inserted
)

func (c Change) String() string {
	switch c {
	case Unset:
		return "unset"
	case Unchanged:
		return "unchanged"
	case Deleted:
		return "deleted"
	case Inserted:
		return "inserted"
	default:
		return "Change(" + strconv.Itoa(int(c)) + ")"
	}
}

// Leaf is an atomic unit of content.
type Leaf struct {
	// Parents are the elements from the fragment root down to the leaf.
	Parents []*markup.Element

	// Content is either Text or, if Void is not nil, a void element.
	Text string
	Void *markup.Element

	// Change is set exactly once, see Mark.
	Change Change
}

// Mark sets the change of l. It panics if l has already been marked.
func (l *Leaf) Mark(c Change) {
	if l.Change != Unset {
		panic("leaf marked twice: " + l.String())
	}
	if c == Unset {
		panic("leaf marked as unset: " + l.String())
	}
	l.Change = c
}

// HTML renders the content of l.
func (l *Leaf) HTML() string {
	if l.Void != nil {
		return l.Void.StartTag()
	}
	return markup.EscapeText(l.Text)
}

func (l *Leaf) String() string {
	var sb strings.Builder
	for _, p := range l.Parents {
		sb.WriteString(p.StartTag())
	}
	sb.WriteString(l.HTML())
	return sb.String()
}

// Equal reports whether a and b have equal paths and equal content.
func Equal(a, b *Leaf) bool {
	if len(a.Parents) != len(b.Parents) {
		return false
	}
	if (a.Void == nil) != (b.Void == nil) {
		return false
	}
	if a.Void != nil {
		if !a.Void.Equal(b.Void) {
			return false
		}
	} else if a.Text != b.Text {
		return false
	}
	return CommonPrefix(a.Parents, b.Parents) == len(a.Parents)
}

// LowSignal reports whether l carries no visible content. Such leaves are empty or
// whitespace-only text.
func LowSignal(l *Leaf) bool {
	if l.Void != nil {
		return false
	}
	return strings.TrimFunc(l.Text, unicode.IsSpace) == ""
}

// CommonPrefix returns the length of the longest common prefix of a and b under element equality.
//
// The comparison is positional: two distinct elements at the same depth with the same identity
// are considered to be the same element. This means that reordered siblings of the same identity
// can't be told apart.
func CommonPrefix(a, b []*markup.Element) int {
	n := min(len(a), len(b))
	for i := range n {
		if !a[i].Equal(b[i]) {
			return i
		}
	}
	return n
}
