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

// Package config provides shared configuration mechanisms for packages in this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// htmldiff.Option.
package config

import (
	"strings"

	"znkr.io/htmldiff/internal/markup"
)

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Void elements and significant attributes.
	Registry markup.Registry

	// Wrap the HTML of inserted and deleted content respectively.
	Insertion, Deletion func(string) string

	// If set, every changed leaf is wrapped on its own instead of wrapping runs of changes.
	EachLeaf bool

	// If set, the alignment is minimal irrespective of the cost.
	Optimal bool
}

// Default is the default configuration.
var Default = Config{
	Registry:  markup.DefaultRegistry(),
	Insertion: DefaultInsertion,
	Deletion:  DefaultDeletion,
	EachLeaf:  false,
	Optimal:   false,
}

// DefaultInsertion wraps html in <ins class="diff">.
func DefaultInsertion(html string) string { return `<ins class="diff">` + html + `</ins>` }

// DefaultDeletion wraps html in <del class="diff">.
func DefaultDeletion(html string) string { return `<del class="diff">` + html + `</del>` }

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	Insertion Flag = 1 << iota
	Deletion
	EachLeaf
	Optimal
	VoidElements
	SignificantAttributes

	// Rendering covers all flags that only affect the HTML output.
	Rendering = Insertion | Deletion | EachLeaf

	// Alignment covers all flags that affect which content is considered changed.
	Alignment = Optimal | VoidElements | SignificantAttributes
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if bad := flag & ^allowed; bad != 0 {
			panic("Option " + printFlag(bad) + " not allowed here")
		}
	}
	if cfg.Insertion == nil || cfg.Deletion == nil {
		panic("insertion and deletion functions must not be nil")
	}
	return cfg
}

func printFlag(flag Flag) string {
	var names []string
	for f := Insertion; f <= SignificantAttributes; f <<= 1 {
		if flag&f != 0 {
			names = append(names, flagName(f))
		}
	}
	return strings.Join(names, "|")
}

func flagName(flag Flag) string {
	switch flag {
	case Insertion:
		return "htmldiff.Insertion"
	case Deletion:
		return "htmldiff.Deletion"
	case EachLeaf:
		return "htmldiff.EachLeaf"
	case Optimal:
		return "htmldiff.Optimal"
	case VoidElements:
		return "htmldiff.VoidElements"
	case SignificantAttributes:
		return "htmldiff.SignificantAttributes"
	default:
		panic("never reached")
	}
}
