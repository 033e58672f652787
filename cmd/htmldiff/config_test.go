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

package main

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/htmldiff"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	data := []byte(`
void_elements: [br, x-icon]
significant_attributes:
  span: [class]
  a: []
insertion: '<mark>{{.}}</mark>'
each_leaf: true
optimal: true
`)
	got, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig(...) failed: %v", err)
	}
	want := &File{
		VoidElements:          []string{"br", "x-icon"},
		SignificantAttributes: map[string][]string{"span": {"class"}, "a": {}},
		Insertion:             "<mark>{{.}}</mark>",
		EachLeaf:              true,
		Optimal:               true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseConfig(...) result is different [-want,+got]:\n%s", diff)
	}
}

func TestParseConfigEmpty(t *testing.T) {
	t.Parallel()

	got, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("ParseConfig(nil) failed: %v", err)
	}
	if diff := cmp.Diff(&File{}, got); diff != "" {
		t.Errorf("ParseConfig(nil) result is different [-want,+got]:\n%s", diff)
	}
}

func TestParseConfigErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"unknown-key", "colour: red\n"},
		{"wrong-type", "void_elements: br\n"},
		{"syntax", "void_elements: [br\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseConfig([]byte(tt.data)); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("ParseConfig(%q) = %v, want ErrInvalidConfig", tt.data, err)
			}
		})
	}
}

func TestFileOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file File
		a, b string
		want string
	}{
		{
			name: "empty",
			a:    `<p><a href="/x">go</a></p>`,
			b:    `<p><a href="/y">go</a></p>`,
			want: `<p><del class="diff"><a href="/x">go</a></del><ins class="diff"><a href="/y">go</a></ins></p>`,
		},
		{
			name: "insignificant-href",
			file: File{SignificantAttributes: map[string][]string{"a": {}}},
			a:    `<p><a href="/x">go</a></p>`,
			b:    `<p><a href="/y">go</a></p>`,
			want: `<p><a href="/x">go</a></p>`,
		},
		{
			name: "templates",
			file: File{Insertion: "<mark>{{.}}</mark>", Deletion: "<s>{{.}}</s>"},
			a:    `<p>old</p>`,
			b:    `<p>new</p>`,
			want: `<p><s>old</s><mark>new</mark></p>`,
		},
		{
			name: "void-elements",
			file: File{VoidElements: []string{"x-icon"}},
			a:    `<p>a <x-icon></x-icon>b</p>`,
			b:    `<p>a b</p>`,
			want: `<p>a <del class="diff"><x-icon></del>b</p>`,
		},
		{
			name: "each-leaf",
			file: File{EachLeaf: true},
			a:    `<p>a</p>`,
			b:    `<p>a b c</p>`,
			want: `<p>a<ins class="diff"> </ins><ins class="diff">b</ins><ins class="diff"> </ins><ins class="diff">c</ins></p>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts, err := tt.file.Options()
			if err != nil {
				t.Fatalf("Options() failed: %v", err)
			}
			got, err := htmldiff.Diff(tt.a, tt.b, opts...)
			if err != nil {
				t.Fatalf("Diff(...) failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Diff(...) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileOptionsBadTemplate(t *testing.T) {
	t.Parallel()

	for _, tmpl := range []string{"{{.", "{{.Field}}", "{{template \"missing\"}}"} {
		f := File{Deletion: tmpl}
		if _, err := f.Options(); !errors.Is(err, ErrBadTemplate) {
			t.Errorf("Options() with template %q = %v, want ErrBadTemplate", tmpl, err)
		}
	}
}
