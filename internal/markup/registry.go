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

package markup

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Registry describes which elements are void and which attributes are significant for the
// identity of an element.
//
// A Registry is immutable, the With* methods return modified copies. The zero value has no void
// elements and no significant attributes.
type Registry struct {
	void        map[string]bool
	significant map[string][]string // sorted attribute keys per tag name
}

// htmlVoid are the elements that never have children or end tags in parsed HTML.
var htmlVoid = map[string]bool{
	"area":     true,
	"base":     true,
	"br":       true,
	"col":      true,
	"embed":    true,
	"hr":       true,
	"img":      true,
	"input":    true,
	"isindex":  true,
	"keygen":   true,
	"link":     true,
	"menuitem": true,
	"meta":     true,
	"param":    true,
	"source":   true,
	"track":    true,
	"wbr":      true,
}

var defaultRegistry = Registry{void: htmlVoid, significant: map[string][]string{
	"a":   {"href"},
	"img": {"src"},
}}

// DefaultRegistry returns the registry for HTML: the standard void elements, the link target for
// anchors and the source for images.
func DefaultRegistry() Registry { return defaultRegistry }

// IsVoid reports whether elements named name have no content and no end tag.
func (r Registry) IsVoid(name string) bool { return r.void[name] }

// Significant returns the significant attributes for elements named name in sorted order. The
// result must not be modified.
func (r Registry) Significant(name string) []string { return r.significant[name] }

// WithVoid returns a copy of r where the given names and the HTML void elements are void
// elements. The HTML void elements can't be removed, they never have end tags.
func (r Registry) WithVoid(names ...string) Registry {
	void := maps.Clone(htmlVoid)
	for _, name := range names {
		void[strings.ToLower(name)] = true
	}
	r.void = void
	return r
}

// WithSignificant returns a copy of r where the significant attributes for elements named tag are
// replaced by attrs. Without attrs, all attributes of tag become insignificant.
func (r Registry) WithSignificant(tag string, attrs ...string) Registry {
	significant := maps.Clone(r.significant)
	if significant == nil {
		significant = make(map[string][]string)
	}
	tag = strings.ToLower(tag)
	if len(attrs) == 0 {
		delete(significant, tag)
	} else {
		keys := make([]string, len(attrs))
		for i, a := range attrs {
			keys[i] = strings.ToLower(a)
		}
		slices.Sort(keys)
		significant[tag] = slices.Compact(keys)
	}
	r.significant = significant
	return r
}

// Element creates the identity projection for n, which must be an element node.
func (r Registry) Element(n *html.Node) *Element {
	if n.Type != html.ElementNode {
		panic("not an element node: " + n.Data)
	}
	return r.NewElement(n.Data, n.Attr)
}

// NewElement creates an element with the given name and attributes.
func (r Registry) NewElement(name string, attrs []html.Attribute) *Element {
	// The key is the name followed by key=value pairs of the significant attributes that are
	// present, each introduced by a NUL byte. The HTML parser never produces NUL bytes.
	var sb strings.Builder
	sb.WriteString(name)
	for _, k := range r.significant[name] {
		i := slices.IndexFunc(attrs, func(a html.Attribute) bool { return a.Namespace == "" && a.Key == k })
		if i < 0 {
			continue
		}
		sb.WriteByte(0)
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(attrs[i].Val)
	}
	return &Element{
		Name:  name,
		Attrs: attrs,
		key:   sb.String(),
	}
}
