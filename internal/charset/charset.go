// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

// Package charset implements the 256-bit byte-class primitive used
// throughout the grammar middle-end: a bitset over the 256 byte values,
// with the union/intersect/xor/set/clear/test operations and the
// textual class syntax (`[a-z^...]`) that the front end hands to
// Parse.
package charset

import (
	"fmt"
	"strings"
)

// Set is a 256-bit set of byte values, one bit per possible byte.
// The zero value is the empty set.
type Set [32]byte

// Set sets c's bit.
func (s *Set) Set(c byte) { s[c>>3] |= 1 << (c & 7) }

// Clear clears c's bit.
func (s *Set) Clear(c byte) { s[c>>3] &^= 1 << (c & 7) }

// SetAll sets every bit, making s behaviorally equivalent to Dot.
func (s *Set) SetAll() {
	for i := range s {
		s[i] = 0xff
	}
}

// Test reports whether c's bit is set.
func (s Set) Test(c byte) bool { return s[c>>3]&(1<<(c&7)) != 0 }

// Union ors b into s, returning s.
func (s *Set) Union(b Set) *Set {
	for i := range s {
		s[i] |= b[i]
	}
	return s
}

// Intersect ands b into s, returning s.
func (s *Set) Intersect(b Set) *Set {
	for i := range s {
		s[i] &= b[i]
	}
	return s
}

// Xor xors b into s, returning s.
func (s *Set) Xor(b Set) *Set {
	for i := range s {
		s[i] ^= b[i]
	}
	return s
}

// Empty reports whether no bit is set.
func (s Set) Empty() bool {
	for _, b := range s {
		if b != 0 {
			return false
		}
	}
	return true
}

// Full reports whether every bit is set,
// making the Set behaviorally equivalent to Dot.
func (s Set) Full() bool {
	for _, b := range s {
		if b != 0xff {
			return false
		}
	}
	return true
}

// Bytes returns every byte value set in s, in ascending order.
func (s Set) Bytes() []byte {
	var out []byte
	for c := 0; c < 256; c++ {
		if s.Test(byte(c)) {
			out = append(out, byte(c))
		}
	}
	return out
}

// escape table shared between the class-syntax parser and the
// raw-string de-escaper (spec.md §3's de-escape pass).
var namedEscapes = map[byte]byte{
	'a': '\a',
	'b': '\b',
	'e': 0x1b,
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'v': '\v',
}

// Parse parses the textual class syntax into a Set:
// a leading ^ negates (begin with all bits set and clear instead of
// set), a-b sets the inclusive byte range, and \<esc> honors the same
// escape table as string literals. An empty text parses to the empty
// set.
func Parse(text string) Set {
	var s Set
	var set func(byte)
	if strings.HasPrefix(text, "^") {
		for i := range s {
			s[i] = 0xff
		}
		set = s.Clear
		text = text[1:]
	} else {
		set = s.Set
	}

	prev := -1
	i := 0
	for i < len(text) {
		c := text[i]
		i++
		switch {
		case c == '-' && i < len(text) && prev >= 0:
			end := text[i]
			i++
			for b := prev; b <= int(end); b++ {
				set(byte(b))
			}
			prev = -1
		case c == '\\' && i < len(text):
			e := resolveEscape(text[i])
			i++
			set(e)
			prev = int(e)
		default:
			set(c)
			prev = int(c)
		}
	}
	return s
}

func resolveEscape(c byte) byte {
	if r, ok := namedEscapes[c]; ok {
		return r
	}
	return c
}

// ResolveEscape is resolveEscape exported for ast's raw-string
// de-escape pass, which shares this same escape table.
func ResolveEscape(c byte) byte { return resolveEscape(c) }

// EscapeName returns the single-letter escape name for c (e.g. 'n'
// for '\n') and true, or (0, false) if c has no named escape.
func EscapeName(c byte) (byte, bool) {
	for name, v := range namedEscapes {
		if v == c {
			return name, true
		}
	}
	return 0, false
}

// String renders the bitset as a sequence of \xHH escapes, one per
// byte of the underlying 32-byte array. The optimizer uses it as the
// spelling of a coalesced class; the code generator renders sets with
// its own [32]byte literal instead.
func (s Set) String() string {
	var b strings.Builder
	for _, c := range s {
		fmt.Fprintf(&b, "\\x%02x", c)
	}
	return b.String()
}
