// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Tabstat parses benchmark reports written as ASCII tables and
// compares them across compiler and variant runs.
//
// Usage:
//
//	tabstat parse [-o out.json] report.txt
//	tabstat compare [--results-root dir] [--output-md file] [--output-csv file] ...
//	tabstat chart [--output-dir dir]
//	tabstat asm [--output file]
//
// The results root is laid out as
//
//	<root>/<compiler>/<variant>/<bench>.{json,txt}
//
// and each file is one report of that bench for that run. The compare
// command aligns the rows of every run into one comparison and writes
// it as Markdown and CSV, and optionally as JSON, HTML, or into a
// sqlite3 or mysql database. The chart command renders SVG speedup
// charts from the same comparison. Both accept --runs gcc-13/default,...
// to restrict the comparison to the named runs. The asm command summarizes
// disassembly dumps found under <root>/<compiler>/<variant>/asm/.
//
// Every flag can also be set in a YAML file given by --config, or
// through an environment variable with the TABSTAT_ prefix, such as
// TABSTAT_RESULTS_ROOT or TABSTAT_ORDER_COMPILERS.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
