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

// Package markup contains the identity model for HTML elements: which elements are void, which
// attributes make two elements different, and how elements and text are rendered back to HTML.
package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is the identity projection of an HTML tag.
//
// Two elements are equal if their names and their significant attributes match. All other
// attributes are kept only for rendering.
type Element struct {
	Name  string
	Attrs []html.Attribute // In source order.

	key string // Name and significant attributes, see Registry.Element.
}

// Equal reports whether e and o have the same identity.
func (e *Element) Equal(o *Element) bool {
	return e.key == o.key
}

// StartTag renders the opening tag of e including all attributes.
func (e *Element) StartTag() string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(e.Name)
	for _, a := range e.Attrs {
		sb.WriteByte(' ')
		if a.Namespace != "" {
			sb.WriteString(a.Namespace)
			sb.WriteByte(':')
		}
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(EscapeAttr(a.Val))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	return sb.String()
}

// EndTag renders the closing tag of e.
func (e *Element) EndTag() string {
	return "</" + e.Name + ">"
}

func (e *Element) String() string { return e.StartTag() }

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;")
)

// EscapeText escapes s for use as element content. Only '&' and '<' need escaping there.
func EscapeText(s string) string { return textEscaper.Replace(s) }

// EscapeAttr escapes s for use as a double quoted attribute value.
func EscapeAttr(s string) string { return attrEscaper.Replace(s) }
