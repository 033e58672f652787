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

package htmldiff

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"znkr.io/htmldiff/internal/align"
	"znkr.io/htmldiff/internal/config"
	"znkr.io/htmldiff/internal/leaves"
	"znkr.io/htmldiff/internal/markup"
	"znkr.io/htmldiff/internal/render"
)

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Match  Op = iota // Content that is present in both fragments
	Delete           // Content that is only present in the old fragment
	Insert           // Content that is only present in the new fragment
)

// Edit describes a single edit of a diff.
type Edit struct {
	Op Op

	// Path holds the start tags of the elements enclosing Content, outermost first. For Match, the
	// tags are taken from the old fragment.
	Path []string

	// Content is a single word, a whitespace run or the start tag of a void element. Boundaries
	// between elements are represented by edits with empty content.
	Content string
}

// Diff compares the HTML fragments a and b and returns a fragment that contains the content of both,
// with deleted content wrapped by the [Deletion] function and inserted content wrapped by the
// [Insertion] function. The output is well-formed.
//
// Both fragments are parsed as the content of a <div> element. Elements are compared by name and
// their significant attributes (see [SignificantAttributes]); text is compared word by word.
// Moved content is reported as a deletion and an insertion.
//
// If a and b are identical, the output is the normalized HTML of a without any wrappers.
//
// All options are supported.
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Diff(a, b string, opts ...Option) (string, error) {
	cfg := config.FromOptions(opts, config.Rendering|config.Alignment)
	x, err := ParseFragment(a)
	if err != nil {
		return "", fmt.Errorf("parsing old fragment: %w", err)
	}
	y, err := ParseFragment(b)
	if err != nil {
		return "", fmt.Errorf("parsing new fragment: %w", err)
	}
	return render.HTML(classify(x, y, cfg), cfg), nil
}

// DiffNodes is like [Diff] for parsed fragments. The children of a and b are compared, a and b
// themselves are not part of the output.
//
// All options are supported.
func DiffNodes(a, b *html.Node, opts ...Option) string {
	cfg := config.FromOptions(opts, config.Rendering|config.Alignment)
	return render.HTML(classify(a, b, cfg), cfg)
}

// Edits compares the HTML fragments a and b and returns every match, deletion and insertion.
// Within a replacement, all deletions come before all insertions.
//
// The following options are supported: [Optimal], [VoidElements], [SignificantAttributes]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Edits(a, b string, opts ...Option) ([]Edit, error) {
	cfg := config.FromOptions(opts, config.Alignment)
	x, err := ParseFragment(a)
	if err != nil {
		return nil, fmt.Errorf("parsing old fragment: %w", err)
	}
	y, err := ParseFragment(b)
	if err != nil {
		return nil, fmt.Errorf("parsing new fragment: %w", err)
	}

	ls := classify(x, y, cfg)
	tags := make(map[*markup.Element]string)
	out := make([]Edit, len(ls))
	for i, l := range ls {
		path := make([]string, len(l.Parents))
		for j, p := range l.Parents {
			tag, ok := tags[p]
			if !ok {
				tag = p.StartTag()
				tags[p] = tag
			}
			path[j] = tag
		}
		out[i] = Edit{
			Op:      op(l.Change),
			Path:    path,
			Content: l.HTML(),
		}
	}
	return out, nil
}

// ParseFragment parses s as the content of a <div> element and returns a root node holding the
// result. The root node is suitable as input for [DiffNodes].
func ParseFragment(s string) (*html.Node, error) {
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(s), root)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

func classify(x, y *html.Node, cfg config.Config) []*leaves.Leaf {
	a := leaves.Flatten(x, cfg.Registry)
	b := leaves.Flatten(y, cfg.Registry)
	ops := align.Opcodes(a, b, leaves.Equal, leaves.LowSignal, cfg)
	return leaves.Classify(ops, a, b)
}

func op(c leaves.Change) Op {
	switch c {
	case leaves.Unchanged:
		return Match
	case leaves.Deleted:
		return Delete
	case leaves.Inserted:
		return Insert
	default:
		panic("never reached")
	}
}
