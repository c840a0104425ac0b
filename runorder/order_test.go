// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runorder

import (
	"math/rand"
	"slices"
	"testing"
)

func keys(ss ...string) []Key {
	var out []Key
	for _, s := range ss {
		k, err := ParseKey(s)
		if err != nil {
			panic(err)
		}
		out = append(out, k)
	}
	return out
}

func TestSortDefault(t *testing.T) {
	want := keys(
		"gcc-12 default", "gcc-15 default", "clang-18 default", "clang-22 default",
		"aocc default", "icx default",
		"gcc-13 native", "clang-19 native", "zig native",
		"gcc-13 asan", "gcc-13 lto", "clang-19 lto",
	)
	got := slices.Clone(want)
	rng := rand.New(rand.NewSource(1))
	for range 10 {
		rng.Shuffle(len(got), func(i, j int) { got[i], got[j] = got[j], got[i] })
		Sort(got, Default())
		if !slices.Equal(got, want) {
			t.Fatalf("Sort = %v, want %v", got, want)
		}
	}
}

func TestSortCustom(t *testing.T) {
	p := &Preference{Compilers: []string{"clang-19", "gcc-13"}, Variants: []string{"native"}}
	got := keys("gcc-13 default", "gcc-13 native", "clang-19 default", "clang-19 native")
	Sort(got, p)
	want := keys("clang-19 native", "gcc-13 native", "clang-19 default", "gcc-13 default")
	if !slices.Equal(got, want) {
		t.Errorf("Sort = %v, want %v", got, want)
	}
}

func TestCompareTotal(t *testing.T) {
	p := Default()
	all := keys("gcc-13 default", "gcc-13 native", "x default", "y default", "x z", "x y")
	for _, a := range all {
		for _, b := range all {
			c := p.Compare(a, b)
			if (c == 0) != (a == b) {
				t.Errorf("Compare(%v, %v) = %d", a, b, c)
			}
			if r := p.Compare(b, a); (c < 0) != (r > 0) {
				t.Errorf("Compare(%v, %v) = %d but Compare(%v, %v) = %d", a, b, c, b, a, r)
			}
		}
	}
}

func TestParseKey(t *testing.T) {
	for _, test := range []struct {
		in   string
		want Key
		err  bool
	}{
		{"gcc-13 default", Key{"gcc-13", "default"}, false},
		{"clang-19/native", Key{"clang-19", "native"}, false},
		{"  gcc-13   default ", Key{"gcc-13", "default"}, false},
		{"gcc-13", Key{}, true},
		{"/native", Key{}, true},
		{"gcc-13/", Key{}, true},
		{"a b c", Key{}, true},
	} {
		got, err := ParseKey(test.in)
		if (err != nil) != test.err || got != test.want {
			t.Errorf("ParseKey(%q) = %v, %v, want %v, err %v", test.in, got, err, test.want, test.err)
		}
	}
	if s := (Key{"gcc-13", "default"}).String(); s != "gcc-13 default" {
		t.Errorf("String = %q", s)
	}
}
