// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asmscan summarizes the vector register usage and call
// instructions of disassembled benchmark hot loops.
//
// Disassembly lives next to a run's reports:
//
//	<root>/<compiler>/<variant>/asm/<bench>[_hot].asm
package asmscan

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/poetlib/tabstat/runorder"
	"go.uber.org/zap"
)

var (
	zmmRe  = regexp.MustCompile(`%zmm\d+`)
	ymmRe  = regexp.MustCompile(`%ymm\d+`)
	xmmRe  = regexp.MustCompile(`%xmm\d+`)
	callRe = regexp.MustCompile(`(?i)\bcall\b`)
)

// Counts are the register and call counts of one disassembly.
type Counts struct {
	ZMM, YMM, XMM int
	Calls         int
}

// Vectorized reports whether the code uses 256- or 512-bit registers.
func (c Counts) Vectorized() bool {
	return c.ZMM > 0 || c.YMM > 0
}

// Width returns the widest vector register size used: "512", "256",
// "128", or "scalar".
func (c Counts) Width() string {
	switch {
	case c.ZMM > 0:
		return "512"
	case c.YMM > 0:
		return "256"
	case c.XMM > 0:
		return "128"
	}
	return "scalar"
}

// Count scans AT&T-syntax disassembly from r.
func Count(r io.Reader) (Counts, error) {
	var c Counts
	s := bufio.NewScanner(r)
	s.Buffer(nil, 1<<20)
	for s.Scan() {
		line := s.Text()
		if strings.IndexByte(line, '%') >= 0 {
			c.ZMM += len(zmmRe.FindAllStringIndex(line, -1))
			c.YMM += len(ymmRe.FindAllStringIndex(line, -1))
			c.XMM += len(xmmRe.FindAllStringIndex(line, -1))
		}
		c.Calls += len(callRe.FindAllStringIndex(line, -1))
	}
	return c, s.Err()
}

// A Result is the analysis of one disassembly file.
type Result struct {
	Key   runorder.Key
	Bench string
	Path  string
	Counts
}

// NeedsVectorWarning reports whether r is a probe that is expected to
// vectorize but did not.
func (r *Result) NeedsVectorWarning() bool {
	if r.Vectorized() {
		return false
	}
	b := strings.ToLower(r.Bench)
	return strings.Contains(b, "saxpy") || strings.Contains(b, "compiler_comparison")
}

// Scan analyzes every asm/*.asm file under root, in path order.
// Files that cannot be read are logged and skipped.
func Scan(ctx context.Context, root string, log *zap.Logger) ([]*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var out []*Result
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			log.Warn("skipping disassembly", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".asm" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) < 4 || parts[len(parts)-2] != "asm" {
			return nil
		}

		res := &Result{
			Key:   runorder.Key{Compiler: parts[0], Variant: parts[1]},
			Bench: strings.ReplaceAll(strings.TrimSuffix(d.Name(), ".asm"), "_hot", ""),
			Path:  path,
		}
		res.Counts, err = countFile(path)
		if err != nil {
			log.Warn("skipping disassembly", zap.String("path", path), zap.Error(err))
			return nil
		}
		out = append(out, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning disassembly: %w", err)
	}
	return out, nil
}

func countFile(path string) (Counts, error) {
	f, err := os.Open(path)
	if err != nil {
		return Counts{}, err
	}
	defer f.Close()
	return Count(f)
}
