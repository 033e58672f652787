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

import "errors"

var (
	// ErrConfigNotFound is returned when an explicitly requested configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidConfig is returned when the configuration file can't be decoded, e.g. because it
	// contains unknown keys.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrBadTemplate is returned when an insertion or deletion template can't be parsed or
	// executed.
	ErrBadTemplate = errors.New("invalid wrapper template")

	// ErrTooManyStdin is returned when both inputs are read from standard input.
	ErrTooManyStdin = errors.New("only one input can be read from standard input")
)
