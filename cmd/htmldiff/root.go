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
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"znkr.io/htmldiff"
	"znkr.io/htmldiff/color"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "htmldiff [flags] OLD NEW",
		Short: "Compare two HTML fragments",
		Long: `htmldiff compares two HTML fragments and prints a single fragment that contains the
content of both. Deleted content is wrapped in <del class="diff"> and inserted content in
<ins class="diff">. The output is well-formed HTML.

Either OLD or NEW can be "-" to read it from standard input.

Wrappers, void elements and significant attributes can be configured in a YAML file. Unless
--config is given, ` + DefaultConfigFile + ` in the working directory is used if it exists:

  void_elements: [x-icon]
  significant_attributes:
    a: [href]
    img: [src]
    span: [class]
  insertion: '<ins class="diff">{{.}}</ins>'
  deletion: '<del class="diff">{{.}}</del>'
  each_leaf: false
  optimal: false`,
		Args:          cobra.ExactArgs(2),
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDiff,
	}

	cmd.Flags().StringP("config", "c", "", "Read configuration from this YAML file")
	cmd.Flags().StringP("output", "o", "", "Write the result to this file instead of standard output")
	cmd.Flags().Bool("each-leaf", false, "Wrap every changed word on its own")
	cmd.Flags().Bool("optimal", false, "Find a minimal diff irrespective of the cost")
	cmd.Flags().Bool("minify", false, "Minify the result")
	cmd.Flags().Bool("color", false, "Highlight changes with terminal colors instead of wrappers")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDiff(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	opts, err := options(cmd, logger)
	if err != nil {
		return err
	}

	if args[0] == "-" && args[1] == "-" {
		return ErrTooManyStdin
	}
	a, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	b, err := readInput(cmd, args[1])
	if err != nil {
		return err
	}
	logger.Debug("comparing", "old", args[0], "old_bytes", len(a), "new", args[1], "new_bytes", len(b))

	start := time.Now()
	out, err := htmldiff.Diff(a, b, opts...)
	if err != nil {
		return err
	}
	logger.Debug("compared", "elapsed", time.Since(start), "bytes", len(out))

	if minify, _ := flags.GetBool("minify"); minify {
		out, err = minifyHTML(out)
		if err != nil {
			return fmt.Errorf("failed to minify output: %w", err)
		}
	}

	output, err := flags.GetString("output")
	if err != nil {
		return err
	}
	if output == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Debug("wrote output", "path", output)
	return nil
}

// options collects the diff options from the configuration file and the flags. Flags take
// precedence.
func options(cmd *cobra.Command, logger *slog.Logger) ([]htmldiff.Option, error) {
	flags := cmd.Flags()
	explicit, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}

	var opts []htmldiff.Option
	if path := FindConfigFile(explicit); path != "" {
		f, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		opts, err = f.Options()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("loaded configuration", "path", path)
	}

	if eachLeaf, _ := flags.GetBool("each-leaf"); eachLeaf {
		opts = append(opts, htmldiff.EachLeaf())
	}
	if optimal, _ := flags.GetBool("optimal"); optimal {
		opts = append(opts, htmldiff.Optimal())
	}
	if useColor, _ := flags.GetBool("color"); useColor {
		opts = append(opts, color.Terminal())
	}
	return opts, nil
}

func readInput(cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}
