// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tabload loads a tree of benchmark reports.
//
// A results tree has one directory per compiler, containing one
// directory per build variant, containing one report file per
// benchmark:
//
//	<root>/<compiler>/<variant>/<bench>.json
//	<root>/<compiler>/<variant>/<bench>.txt
//
// JSON files hold Reports encoded by the tabfmt package. Text files
// hold raw benchmark output and are parsed with tabfmt.Reader.
package tabload

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/poetlib/tabstat/runorder"
	"github.com/poetlib/tabstat/tabfmt"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoRoot is returned by Load when the results root does not exist
// or is not a directory.
var ErrNoRoot = errors.New("results root not found")

// A Diagnostic records a file that was skipped during loading.
type Diagnostic struct {
	Path string
	Err  error
}

func (d *Diagnostic) Error() string {
	return d.Path + ": " + d.Err.Error()
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// Options configures Load. The zero Options is ready to use.
type Options struct {
	// TextExts lists the file extensions, including the leading
	// dot, of raw text reports. If nil, it defaults to [".txt"].
	TextExts []string

	// Parallelism limits the number of files read at once. If it
	// is <= 0, it defaults to GOMAXPROCS.
	Parallelism int

	// Logger receives diagnostics. If nil, nothing is logged.
	Logger *zap.Logger
}

// DefaultTextExts is the default value of Options.TextExts.
var DefaultTextExts = []string{".txt"}

// source is one report file of a results tree.
type source struct {
	path  string
	key   runorder.Key
	bench string
	json  bool

	// shadowed is the text report of the same run and benchmark
	// that a JSON report replaced. It is read instead if the JSON
	// report cannot be.
	shadowed string
}

// Load reads every report under root.
//
// Files that cannot be read or decoded are skipped and recorded in
// the Set's Diagnostics. Load only returns an error if root cannot be
// walked or ctx is done.
func Load(ctx context.Context, root string, opts Options) (*Set, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	textExts := opts.TextExts
	if textExts == nil {
		textExts = DefaultTextExts
	}
	par := opts.Parallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(0)
	}

	fi, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoRoot, root)
		}
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNoRoot, root)
	}

	set := NewSet()
	srcs, err := walk(ctx, root, textExts, set, log)
	if err != nil {
		return nil, err
	}

	reports := make([]*tabfmt.Report, len(srcs))
	errs := make([]error, len(srcs))
	// jsonErrs records JSON reports that failed and were replaced
	// by their shadowed text report.
	jsonErrs := make([]error, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(par)
	for i, src := range srcs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i], errs[i] = readSource(src)
			if errs[i] != nil && src.shadowed != "" {
				jsonErrs[i] = errs[i]
				reports[i], errs[i] = readSource(source{path: src.shadowed})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, src := range srcs {
		if jsonErrs[i] != nil {
			set.skip(log, src.path, jsonErrs[i])
			src.path = src.shadowed
		}
		if errs[i] != nil {
			set.skip(log, src.path, errs[i])
			continue
		}
		set.Add(src.bench, src.key, reports[i])
	}
	slices.SortStableFunc(set.diags, func(a, b *Diagnostic) int {
		return strings.Compare(a.Path, b.Path)
	})
	log.Debug("loaded results",
		zap.String("root", root),
		zap.Int("reports", set.Len()),
		zap.Int("skipped", len(set.diags)))
	return set, nil
}

// walk returns the report files under root in path order. When a run
// has both a JSON and a text report for the same benchmark, only the
// JSON report is returned, with the text report as its fallback.
func walk(ctx context.Context, root string, textExts []string, set *Set, log *zap.Logger) ([]source, error) {
	type runBench struct {
		key   runorder.Key
		bench string
	}
	var srcs []source
	index := make(map[runBench]int)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			set.skip(log, path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if d.IsDir() {
			if len(parts) >= 3 {
				return filepath.SkipDir
			}
			return nil
		}
		if len(parts) != 3 || !d.Type().IsRegular() {
			return nil
		}

		name := parts[2]
		ext := filepath.Ext(name)
		isJSON := ext == ".json"
		if !isJSON && !slices.Contains(textExts, ext) {
			return nil
		}
		src := source{
			path:  path,
			key:   runorder.Key{Compiler: parts[0], Variant: parts[1]},
			bench: strings.TrimSuffix(name, ext),
			json:  isJSON,
		}
		rb := runBench{src.key, src.bench}
		if i, ok := index[rb]; ok {
			prev := srcs[i]
			if src.json && !prev.json {
				src.shadowed = prev.path
				srcs[i] = src
				prev, src = src, prev
			} else if prev.json && !src.json && prev.shadowed == "" {
				srcs[i].shadowed = src.path
			}
			log.Debug("ignoring shadowed report",
				zap.String("path", src.path),
				zap.String("using", prev.path))
			return nil
		}
		index[rb] = len(srcs)
		srcs = append(srcs, src)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return srcs, nil
}

func readSource(src source) (*tabfmt.Report, error) {
	f, err := os.Open(src.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if src.json {
		r, err := tabfmt.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decoding report: %w", err)
		}
		return r, nil
	}
	return tabfmt.NewReader(f, src.path).Read()
}

func (s *Set) skip(log *zap.Logger, path string, err error) {
	s.diags = append(s.diags, &Diagnostic{Path: path, Err: err})
	log.Warn("skipping report", zap.String("path", path), zap.Error(err))
}
