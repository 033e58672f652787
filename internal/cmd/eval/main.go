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

// eval provides a way to validate the diffing algorithm on a corpus of HTML fragment pairs. Every
// diff is checked for well-formedness and for preserving the content of both inputs.
//
// The corpus consists of txtar archives with two files, "a" and "b", holding the old and the new
// fragment respectively.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/tools/txtar"
	"znkr.io/htmldiff"
	"znkr.io/htmldiff/internal/markup"
	"znkr.io/htmldiff/internal/wellformed"
)

type config struct {
	glob     string
	sample   int
	parallel int
	stats    string
	validate bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.glob, "glob", "", "glob pattern matching the txtar archives to evaluate")
	flag.IntVar(&cfg.sample, "sample", 0, "if >0, sample archives to the value of the flag")
	flag.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	flag.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	flag.BoolVar(&cfg.validate, "validate", true, "if validation should be performed")
	flag.Parse()

	if len(flag.CommandLine.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected command line arguments: %v\n", flag.CommandLine.Args())
		os.Exit(1)
	}

	if err := run(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var bars = []string{
	" ",
	"▏",
	"▎",
	"▍",
	"▌",
	"▋",
	"▊",
	"▉",
	"█",
}

type note struct {
	prefix string
	msg    string
}

type result struct {
	file     string
	variant  string
	N, M     int
	D        int
	duration time.Duration
}

type change struct {
	filename string
	old, new string
}

// Unique wrapper elements, so that <ins> and <del> in the corpus don't interfere with validation.
const (
	insTag = "htmldiff-ins"
	delTag = "htmldiff-del"
)

var wrappers = []htmldiff.Option{
	htmldiff.Insertion(func(html string) string { return "<" + insTag + ">" + html + "</" + insTag + ">" }),
	htmldiff.Deletion(func(html string) string { return "<" + delTag + ">" + html + "</" + delTag + ">" }),
}

var variants = map[string][]htmldiff.Option{
	"default":   nil,
	"optimal":   {htmldiff.Optimal()},
	"each-leaf": {htmldiff.EachLeaf()},
}

func run(cfg *config) error {
	start := time.Now()
	notes := make(chan note)
	done := make(chan struct{})
	var filesDone atomic.Int64
	var processed atomic.Int64

	var stats *os.File
	if cfg.stats != "" {
		var err error
		stats, err = os.Create(cfg.stats)
		if err != nil {
			return fmt.Errorf("creating stats file: %v", err)
		}
		defer stats.Close()
	}

	filenames, err := filepath.Glob(cfg.glob)
	if err != nil {
		return fmt.Errorf("matching archives: %v", err)
	}
	if len(filenames) == 0 {
		return fmt.Errorf("no archives match %q", cfg.glob)
	}

	// Sample archives
	if cfg.sample > 0 && cfg.sample < len(filenames) {
		rand.Shuffle(len(filenames), func(i, j int) {
			filenames[i], filenames[j] = filenames[j], filenames[i]
		})
		filenames = filenames[:cfg.sample]
	}

	// Read archives.
	changes := make(chan change)
	var changesWG sync.WaitGroup
	chunkSize := max(1, len(filenames)/(4*runtime.GOMAXPROCS(0)))
	for chunk := range slices.Chunk(filenames, chunkSize) {
		changesWG.Add(1)
		go func() {
			defer changesWG.Done()
			for _, filename := range chunk {
				c, err := read(filename)
				if err != nil {
					notes <- note{
						prefix: filename,
						msg:    fmt.Sprintf("error reading archive: %v", err),
					}
				} else {
					changes <- c
				}
				filesDone.Add(1)
			}
		}()
	}

	// Process diffs.
	var processWG sync.WaitGroup
	var results chan result
	if cfg.stats != "" {
		results = make(chan result)
	}
	for range cfg.parallel {
		processWG.Add(1)
		go func() {
			defer processWG.Done()
			for change := range changes {
				for variant, opts := range variants {
					if results != nil && variant != "each-leaf" {
						start := time.Now()
						edits, err := htmldiff.Edits(change.old, change.new, opts...)
						duration := time.Since(start)
						if err != nil {
							notes <- note{prefix: change.filename, msg: err.Error()}
							continue
						}
						r := result{
							file:     change.filename,
							variant:  variant,
							duration: duration,
						}
						for _, e := range edits {
							switch e.Op {
							case htmldiff.Match:
								r.N++
								r.M++
							case htmldiff.Delete:
								r.N++
								r.D++
							case htmldiff.Insert:
								r.M++
								r.D++
							}
						}
						results <- r
					}

					if cfg.validate {
						for _, msg := range validate(change, opts) {
							notes <- note{
								prefix: change.filename + ":" + variant,
								msg:    msg,
							}
						}
					}
				}
				processed.Add(1)
			}
		}()
	}

	// Render progress
	var ioWG sync.WaitGroup
	render := func() {
		const width = 60
		files := filesDone.Load()
		processed := processed.Load()
		progress := float64(files) / float64(len(filenames))
		whole := int(progress * width)
		remainder := math.Mod(progress*width, 1)
		last := bars[max(0, min(len(bars)-1, int(remainder*float64(len(bars)))))]
		if width-whole < 1 {
			last = ""
		}
		bar := strings.Repeat(bars[len(bars)-1], whole) + last
		var filesPerSec, procPerSec int
		if files > 0 {
			filesPerSec = int((time.Duration(files) * time.Second) / time.Since(start))
		}
		if processed > 0 {
			procPerSec = int((time.Duration(processed) * time.Second) / time.Since(start))
		}
		fmt.Printf("\r[%-*s] % 3.1f%% (%d files/s, %d evals/s) ", width, bar, 100*progress, filesPerSec, procPerSec)
	}
	ioWG.Add(1)
	go func() {
		defer ioWG.Done()
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case note := <-notes:
				fmt.Printf("\r%s: %s\n", note.prefix, note.msg)
				render()

			case <-ticker.C:
				render()

			case <-done:
				render()
				fmt.Printf("\n")
				return
			}
		}
	}()
	var statsWG sync.WaitGroup
	if cfg.stats != "" {
		statsWG.Add(1)
		go func() {
			defer statsWG.Done()
			w := bufio.NewWriter(stats)
			w.WriteString("file,variant,N,M,D,duration_ns\n")
			for result := range results {
				_, err := fmt.Fprintf(w, "%s,%s,%d,%d,%d,%d\n", result.file, result.variant, result.N, result.M, result.D, result.duration.Nanoseconds())
				if err != nil {
					notes <- note{
						prefix: result.file,
						msg:    fmt.Sprintf("failed to write stats: %v", err),
					}
				}
			}
			err := w.Flush()
			if err != nil {
				notes <- note{
					prefix: "",
					msg:    fmt.Sprintf("failed to flush stats: %v", err),
				}
			}
		}()
	}

	// Shutdown
	changesWG.Wait()
	close(changes)
	processWG.Wait()
	if results != nil {
		close(results)
	}
	statsWG.Wait()
	close(done)
	ioWG.Wait()

	return nil
}

// read reads the old and the new fragment from a txtar archive.
func read(filename string) (change, error) {
	ar, err := txtar.ParseFile(filename)
	if err != nil {
		return change{}, err
	}
	c := change{filename: filename}
	var found int
	for _, f := range ar.Files {
		switch f.Name {
		case "a":
			c.old = string(f.Data)
			found |= 1
		case "b":
			c.new = string(f.Data)
			found |= 2
		}
	}
	if found != 3 {
		return change{}, fmt.Errorf("archive must contain the files a and b")
	}
	return c, nil
}

// validate diffs the change with opts and returns a message for every problem found.
func validate(c change, opts []htmldiff.Option) []string {
	var msgs []string
	opts = append(slices.Clip(opts), wrappers...)

	// The inputs might not be normalized, compare against their normalized forms instead.
	normOld, err := htmldiff.Diff(c.old, c.old, opts...)
	if err != nil {
		return []string{err.Error()}
	}
	normNew, err := htmldiff.Diff(c.new, c.new, opts...)
	if err != nil {
		return []string{err.Error()}
	}
	for _, norm := range []string{normOld, normNew} {
		if strings.Contains(norm, "<"+insTag+">") || strings.Contains(norm, "<"+delTag+">") {
			msgs = append(msgs, fmt.Sprintf("diffing a fragment with itself reports changes:\n%s", norm))
		}
	}

	got, err := htmldiff.Diff(c.old, c.new, opts...)
	if err != nil {
		return append(msgs, err.Error())
	}
	reg := markup.DefaultRegistry()
	if err := wellformed.Check(got, reg); err != nil {
		msgs = append(msgs, fmt.Sprintf("diff is not well-formed: %v", err))
	}
	if gotOld, wantOld := wellformed.Text(got, insTag), wellformed.Text(normOld); gotOld != wantOld {
		msgs = append(msgs, fmt.Sprintf("old text is not preserved. got:\n%s\nwant:\n%s", gotOld, wantOld))
	}
	if gotNew, wantNew := wellformed.Text(got, delTag), wellformed.Text(normNew); gotNew != wantNew {
		msgs = append(msgs, fmt.Sprintf("new text is not preserved. got:\n%s\nwant:\n%s", gotNew, wantNew))
	}
	return msgs
}
