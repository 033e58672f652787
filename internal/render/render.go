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

// Package render reconstructs HTML from a sequence of classified leaves.
//
// The renderer keeps track of the currently open elements. Before a leaf is written, the open
// elements are moved to the leaf's path: Elements beyond the common prefix are closed innermost
// first and the remaining elements of the path are opened outermost first. The common prefix is
// positional, it is not a search for the lowest common ancestor.
//
// Changed leaves are wrapped with the insertion or deletion function. By default, a run of leaves
// with the same change is wrapped once. The wrapper is placed at the deepest level that the run,
// its predecessor and its successor have in common; elements below that level are opened and
// closed inside of the wrapper. With EachLeaf, every changed leaf is wrapped on its own inside of
// its full path.
package render

import (
	"slices"
	"strings"

	"znkr.io/htmldiff/internal/config"
	"znkr.io/htmldiff/internal/leaves"
	"znkr.io/htmldiff/internal/markup"
)

// HTML renders ls. All leaves must be classified.
func HTML(ls []*leaves.Leaf, cfg config.Config) string {
	r := renderer{cfg: cfg}
	r.leaves(ls)
	r.moveTo(nil)
	return r.sb.String()
}

type renderer struct {
	cfg  config.Config
	sb   strings.Builder
	open []*markup.Element
}

func (r *renderer) leaves(ls []*leaves.Leaf) {
	for i := 0; i < len(ls); {
		l := ls[i]
		switch l.Change {
		case leaves.Unchanged:
			r.moveTo(l.Parents)
			r.sb.WriteString(l.HTML())
			i++
		case leaves.Deleted, leaves.Inserted:
			j := i + 1
			if !r.cfg.EachLeaf {
				for j < len(ls) && ls[j].Change == l.Change {
					j++
				}
			}
			var next []*markup.Element
			if j < len(ls) {
				next = ls[j].Parents
			}
			r.span(ls[i:j], next)
			i = j
		default:
			panic("unclassified leaf: " + l.String())
		}
	}
}

// span renders a run of leaves with the same change inside of a single wrapper. next is the path
// of the leaf following the run, or nil at the end.
func (r *renderer) span(run []*leaves.Leaf, next []*markup.Element) {
	first, last := run[0], run[len(run)-1]
	d := len(first.Parents)
	if !r.cfg.EachLeaf {
		for _, l := range run[1:] {
			d = min(d, leaves.CommonPrefix(first.Parents, l.Parents))
		}
		d = min(d, max(leaves.CommonPrefix(r.open, first.Parents), leaves.CommonPrefix(last.Parents, next)))
	}

	base := first.Parents[:d]
	r.moveTo(base)

	// All leaves in the run share base, the inner renderer never closes any of its elements.
	inner := renderer{cfg: r.cfg, open: slices.Clone(base)}
	for _, l := range run {
		inner.moveTo(l.Parents)
		inner.sb.WriteString(l.HTML())
	}
	inner.moveTo(base)

	content := inner.sb.String()
	if content == "" {
		return
	}
	switch first.Change {
	case leaves.Deleted:
		r.sb.WriteString(r.cfg.Deletion(content))
	case leaves.Inserted:
		r.sb.WriteString(r.cfg.Insertion(content))
	default:
		panic("never reached")
	}
}

// moveTo closes and opens elements until the open elements match path.
func (r *renderer) moveTo(path []*markup.Element) {
	n := leaves.CommonPrefix(r.open, path)
	for i := len(r.open) - 1; i >= n; i-- {
		r.sb.WriteString(r.open[i].EndTag())
	}
	for _, e := range path[n:] {
		r.sb.WriteString(e.StartTag())
	}
	r.open = append(r.open[:n], path[n:]...)
}
