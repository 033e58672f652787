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

// Package color highlights diffs with ANSI escape codes for display in a terminal.
package color

import (
	"fmt"
	"strings"

	"znkr.io/htmldiff"
	"znkr.io/htmldiff/internal/config"
)

const reset = "\033[0m"

type colors struct {
	delete, insert string
}

// A Option makes it possible to configure custom colors in [Terminal].
type Option func(*colors)

// Deletes colors deleted content. The default is red.
func Deletes(params ...int) Option {
	code := format(params)
	return func(cc *colors) {
		cc.delete = code
	}
}

// Inserts colors inserted content. The default is green.
func Inserts(params ...int) Option {
	code := format(params)
	return func(cc *colors) {
		cc.insert = code
	}
}

// Terminal returns an option that replaces the insertion and deletion wrappers with ANSI escape
// codes. It can be used instead of [htmldiff.Insertion] and [htmldiff.Deletion].
func Terminal(opts ...Option) htmldiff.Option {
	cc := colors{
		delete: format([]int{31}),
		insert: format([]int{32}),
	}
	for _, opt := range opts {
		opt(&cc)
	}
	return func(cfg *config.Config) config.Flag {
		cfg.Deletion = func(html string) string { return cc.delete + html + reset }
		cfg.Insertion = func(html string) string { return cc.insert + html + reset }
		return config.Insertion | config.Deletion
	}
}

func format(params []int) string {
	var sb strings.Builder
	sb.WriteString("\033[")
	for i, v := range params {
		if i > 0 {
			sb.WriteRune(';')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteRune('m')
	return sb.String()
}
