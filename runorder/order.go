// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runorder defines the identity of a benchmark run and the
// order in which runs are presented.
//
// A run is one build of the benchmark suite, identified by the
// compiler that produced it and a build variant such as "default" or
// "native". Presentation order is a Policy so that callers can
// substitute their own preference without touching aggregation.
package runorder

import (
	"fmt"
	"slices"
	"strings"
)

// A Key identifies one benchmark run.
type Key struct {
	Compiler string
	Variant  string
}

// String returns the display form of k, "<compiler> <variant>".
func (k Key) String() string {
	return k.Compiler + " " + k.Variant
}

// ParseKey parses a Key in the form "<compiler> <variant>" or
// "<compiler>/<variant>".
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, " /")
	if sep < 0 {
		return Key{}, fmt.Errorf("run key %q: want \"compiler variant\" or \"compiler/variant\"", s)
	}
	k := Key{Compiler: s[:sep], Variant: strings.TrimSpace(s[sep+1:])}
	if k.Compiler == "" || k.Variant == "" || strings.ContainsAny(k.Variant, " /") {
		return Key{}, fmt.Errorf("run key %q: want \"compiler variant\" or \"compiler/variant\"", s)
	}
	return k, nil
}

// A Policy is a total order over Keys.
type Policy interface {
	// Compare returns a negative number if a sorts before b, a
	// positive number if a sorts after b, and 0 only if a == b.
	Compare(a, b Key) int
}

// DefaultCompilers is the default compiler preference: GCC, then
// Clang, each in ascending version order.
var DefaultCompilers = []string{
	"gcc-12", "gcc-13", "gcc-14", "gcc-15",
	"clang-18", "clang-19", "clang-20", "clang-21", "clang-22",
}

// DefaultVariants is the default build variant preference.
var DefaultVariants = []string{"default", "native"}

// Preference orders Keys by variant rank, then compiler rank, where
// ranks are positions in the Variants and Compilers lists. Values
// not in a list rank after every value that is. Keys of equal rank
// are ordered by compiler name, then variant name.
type Preference struct {
	Compilers []string
	Variants  []string
}

// Default returns the Preference built from DefaultCompilers and
// DefaultVariants.
func Default() *Preference {
	return &Preference{
		Compilers: slices.Clone(DefaultCompilers),
		Variants:  slices.Clone(DefaultVariants),
	}
}

func rank(list []string, v string) int {
	if i := slices.Index(list, v); i >= 0 {
		return i
	}
	return len(list)
}

// Compare implements Policy.
func (p *Preference) Compare(a, b Key) int {
	if c := rank(p.Variants, a.Variant) - rank(p.Variants, b.Variant); c != 0 {
		return c
	}
	if c := rank(p.Compilers, a.Compiler) - rank(p.Compilers, b.Compiler); c != 0 {
		return c
	}
	if c := strings.Compare(a.Compiler, b.Compiler); c != 0 {
		return c
	}
	return strings.Compare(a.Variant, b.Variant)
}

// Sort sorts keys in place according to p.
func Sort(keys []Key, p Policy) {
	slices.SortFunc(keys, p.Compare)
}
