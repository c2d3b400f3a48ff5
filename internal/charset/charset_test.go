// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

package charset

import "testing"

func TestParseRange(t *testing.T) {
	s := Parse("a-z")
	for c := byte('a'); c <= 'z'; c++ {
		if !s.Test(c) {
			t.Errorf("Test(%q)=false, want true", c)
		}
	}
	if s.Test('A') {
		t.Errorf("Test('A')=true, want false")
	}
}

func TestParseNegated(t *testing.T) {
	s := Parse("^a-z")
	if s.Test('a') || s.Test('z') {
		t.Errorf("negated class still contains a-z")
	}
	if !s.Test('A') {
		t.Errorf("negated class missing 'A'")
	}
}

func TestParseEscape(t *testing.T) {
	s := Parse(`\n\t`)
	if !s.Test('\n') || !s.Test('\t') {
		t.Errorf("escape sequences not set")
	}
}

func TestAllBitsSetEquivalentToDot(t *testing.T) {
	var a Set
	for c := 0; c < 256; c++ {
		a.Set(byte(c))
	}
	if !a.Full() {
		t.Errorf("Full()=false for a fully-set class")
	}
}

func TestEmpty(t *testing.T) {
	var s Set
	if !s.Empty() {
		t.Errorf("zero value Set is not Empty")
	}
	s.Set('a')
	if s.Empty() {
		t.Errorf("Set with a bit set reports Empty")
	}
}

func TestClear(t *testing.T) {
	var s Set
	s.Set('a')
	s.Clear('a')
	if s.Test('a') {
		t.Errorf("Clear did not clear the bit")
	}
}

func TestUnionIntersectXor(t *testing.T) {
	a := Parse("a-c")
	b := Parse("b-d")

	u := a
	u.Union(b)
	for _, c := range []byte("abcd") {
		if !u.Test(c) {
			t.Errorf("Union missing %q", c)
		}
	}

	i := a
	i.Intersect(b)
	if !i.Test('b') || !i.Test('c') || i.Test('a') || i.Test('d') {
		t.Errorf("Intersect = %v, want only b,c set", i.Bytes())
	}

	x := a
	x.Xor(b)
	if x.Test('b') || x.Test('c') || !x.Test('a') || !x.Test('d') {
		t.Errorf("Xor = %v, want only a,d set", x.Bytes())
	}
}
