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

import "znkr.io/htmldiff/internal/config"

// Option configures the behavior of comparison functions.
type Option = config.Option

// Insertion sets the function that wraps inserted content. The function receives well-formed HTML
// and must return well-formed HTML. The default wraps content in <ins class="diff">.
func Insertion(wrap func(html string) string) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Insertion = wrap
		return config.Insertion
	}
}

// Deletion sets the function that wraps deleted content. The function receives well-formed HTML
// and must return well-formed HTML. The default wraps content in <del class="diff">.
func Deletion(wrap func(html string) string) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Deletion = wrap
		return config.Deletion
	}
}

// EachLeaf wraps every changed word, whitespace run and void element on its own, directly inside
// of its parent element. By default, consecutive changes are wrapped together and the wrapper may
// enclose whole elements.
func EachLeaf() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.EachLeaf = true
		return config.EachLeaf
	}
}

// Optimal finds a minimal alignment irrespective of the cost. By default, the alignment limits the
// cost for large inputs with many differences by applying heuristics that reduce the time
// complexity.
//
// With this option, the runtime is O(ND) where N is the number of words in both inputs and D is
// the number of differences.
func Optimal() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Optimal = true
		return config.Optimal
	}
}

// VoidElements declares additional void elements, i.e. elements that have no content and no end
// tag. Void elements are compared as a single unit. The HTML void elements (e.g. <br> or <img>)
// are always void, an element with children is never void. Names are case-insensitive. If the
// option is given more than once, the last one wins.
func VoidElements(names ...string) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Registry = cfg.Registry.WithVoid(names...)
		return config.VoidElements
	}
}

// SignificantAttributes sets the attributes that are part of the identity of elements named tag.
// Two elements with the same name are different if any of their significant attributes differ; all
// other attributes are ignored when comparing. Without attrs, all attributes of tag are ignored.
//
// By default, href is significant for <a> and src is significant for <img>.
func SignificantAttributes(tag string, attrs ...string) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Registry = cfg.Registry.WithSignificant(tag, attrs...)
		return config.SignificantAttributes
	}
}
