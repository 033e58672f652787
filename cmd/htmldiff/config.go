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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
	"znkr.io/htmldiff"
)

// DefaultConfigFile is the name of the configuration file that is looked up in the working
// directory if no configuration file is given explicitly.
const DefaultConfigFile = ".htmldiff.yaml"

// File is the content of a configuration file.
type File struct {
	// VoidElements are void in addition to the HTML void elements.
	VoidElements []string `yaml:"void_elements"`

	// SignificantAttributes maps tag names to the attributes that are part of their identity.
	// An empty list makes all attributes of a tag insignificant.
	SignificantAttributes map[string][]string `yaml:"significant_attributes"`

	// Insertion and Deletion are text/template templates for the wrappers, the wrapped HTML is
	// available as {{.}}.
	Insertion string `yaml:"insertion"`
	Deletion  string `yaml:"deletion"`

	EachLeaf bool `yaml:"each_leaf"`
	Optimal  bool `yaml:"optimal"`
}

// FindConfigFile returns the path of the configuration file to use, or an empty string if there
// is none. An explicit path is always returned as is.
func FindConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	path := filepath.Join(cwd, DefaultConfigFile)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// LoadConfigFile reads and decodes the configuration file at path.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes a configuration file. Unknown keys are rejected.
func ParseConfig(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &f, nil
}

// Options translates the configuration into diff options.
func (f *File) Options() ([]htmldiff.Option, error) {
	var opts []htmldiff.Option
	if f.VoidElements != nil {
		opts = append(opts, htmldiff.VoidElements(f.VoidElements...))
	}
	for tag, attrs := range f.SignificantAttributes {
		opts = append(opts, htmldiff.SignificantAttributes(tag, attrs...))
	}
	if f.Insertion != "" {
		wrap, err := wrapper("insertion", f.Insertion)
		if err != nil {
			return nil, err
		}
		opts = append(opts, htmldiff.Insertion(wrap))
	}
	if f.Deletion != "" {
		wrap, err := wrapper("deletion", f.Deletion)
		if err != nil {
			return nil, err
		}
		opts = append(opts, htmldiff.Deletion(wrap))
	}
	if f.EachLeaf {
		opts = append(opts, htmldiff.EachLeaf())
	}
	if f.Optimal {
		opts = append(opts, htmldiff.Optimal())
	}
	return opts, nil
}

// wrapper compiles a wrapper template. The template is executed once to detect errors early.
func wrapper(name, text string) (func(string) string, error) {
	t, err := template.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTemplate, err)
	}
	if err := t.Execute(io.Discard, "<b>probe</b>"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTemplate, err)
	}
	return func(html string) string {
		var sb strings.Builder
		if err := t.Execute(&sb, html); err != nil {
			panic(fmt.Sprintf("executing %s template: %v", name, err))
		}
		return sb.String()
	}, nil
}
