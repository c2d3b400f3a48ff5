// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

package ast

import "github.com/pegc/pegc/internal/charset"

// Dot matches any one byte.
type Dot struct{ Loc Loc }

func (e *Dot) Begin() Loc { return e.Loc }
func (e *Dot) End() Loc   { return Loc{File: e.Loc.File, Line: e.Loc.Line, Col: e.Loc.Col + 1} }

// Character matches one specific byte. Spelling is the source text
// (e.g. "a" or "\n") that decoded to Value; spec.md §3 requires the
// two to agree.
type Character struct {
	Value    byte
	Spelling string
	Loc      Loc
}

func (e *Character) Begin() Loc { return e.Loc }
func (e *Character) End() Loc   { return Loc{File: e.Loc.File, Line: e.Loc.Line, Col: e.Loc.Col + len(e.Spelling) + 2} }

// RawString is an owning byte sequence with an explicit length,
// NUL-safe because Go's string/[]byte already carry their length
// rather than relying on a terminator (spec.md §3's RawString).
type RawString struct {
	Bytes []byte
}

func (r *RawString) String() string { return string(r.Bytes) }

// Literal matches a fixed byte sequence (spec.md §3's String
// variant). Single-byte strings are demoted to Character by
// MakeString at construction time, so Value.Bytes is either empty
// (the empty string, which always matches) or two or more bytes long.
type Literal struct {
	Value    *RawString
	Spelling string
	Loc      Loc
}

func (e *Literal) Begin() Loc { return e.Loc }
func (e *Literal) End() Loc   { return Loc{File: e.Loc.File, Line: e.Loc.Line, Col: e.Loc.Col + len(e.Spelling) + 2} }

// CharClass matches one byte whose bit is set in Bits (spec.md §3's
// Class variant). Spelling is the original `[...]` source text, kept
// for diagnostics.
type CharClass struct {
	Bits     charset.Set
	Spelling string
	Loc      Loc
}

func (e *CharClass) Begin() Loc { return e.Loc }
func (e *CharClass) End() Loc   { return Loc{File: e.Loc.File, Line: e.Loc.Line, Col: e.Loc.Col + len(e.Spelling) + 2} }

// Name references another rule (spec.md §3's Name variant). On
// success, if Variable is non-nil, the target rule's semantic value
// is bound to that slot.
type Name struct {
	Rule     *Rule
	Variable *Variable
	Loc      Loc
}

func (e *Name) Begin() Loc { return e.Loc }
func (e *Name) End() Loc   { return Loc{File: e.Loc.File, Line: e.Loc.Line, Col: e.Loc.Col + len(e.Rule.RuleName)} }

// Alternate is an ordered choice between its Children: the first
// child that matches wins, and no later child is tried once one
// succeeds (spec.md §3's Alternate variant, "ordered choice").
type Alternate struct {
	Children []Node
}

func (e *Alternate) Begin() Loc { return e.Children[0].Begin() }
func (e *Alternate) End() Loc   { return e.Children[len(e.Children)-1].End() }

// Sequence is concatenation: any child failing fails the whole
// sequence after restoring state (spec.md §3's Sequence variant).
type Sequence struct {
	Children []Node
}

func (e *Sequence) Begin() Loc { return e.Children[0].Begin() }
func (e *Sequence) End() Loc   { return e.Children[len(e.Children)-1].End() }

// PeekFor is positive lookahead: it never consumes input on either
// outcome (spec.md §3).
type PeekFor struct {
	Element Node
	Loc     Loc
}

func (e *PeekFor) Begin() Loc { return e.Loc }
func (e *PeekFor) End() Loc   { return e.Element.End() }

// PeekNot is negative lookahead: it never consumes input on either
// outcome (spec.md §3).
type PeekNot struct {
	Element Node
	Loc     Loc
}

func (e *PeekNot) Begin() Loc { return e.Loc }
func (e *PeekNot) End() Loc   { return e.Element.End() }

// Query is the `?` repetition: zero or one match, never failing.
type Query struct {
	Element Node
	Loc     Loc
}

func (e *Query) Begin() Loc { return e.Element.Begin() }
func (e *Query) End() Loc   { return e.Loc }

// Star is the `*` repetition: zero or more matches, never failing.
type Star struct {
	Element Node
	Loc     Loc
}

func (e *Star) Begin() Loc { return e.Element.Begin() }
func (e *Star) End() Loc   { return e.Loc }

// Plus is the `+` repetition: one or more matches; fails iff the
// first match fails.
type Plus struct {
	Element Node
	Loc     Loc
}

func (e *Plus) Begin() Loc { return e.Element.Begin() }
func (e *Plus) End() Loc   { return e.Loc }

// StringArray is a sorted run of strings sharing the first Offset
// bytes, plus any overflow chain produced by further StringTable
// synthesis at a deeper offset (spec.md §4.3/§4.7).
type StringArray struct {
	// Offset is the byte offset shared by every string in Strings.
	Offset int

	// Strings are sorted per spec.md §4.3: by the suffix from
	// Offset, ties broken by ascending length.
	Strings []*RawString

	// Label is a generated code label for a non-head entry. The
	// optimizer only ever builds a head entry, so Label stays 0 and
	// the code generator does not read it.
	Label int

	// Next would chain further StringArrays at deeper offsets. The
	// optimizer never populates it (every table is one head entry at
	// Offset 0) and the code generator does not read it.
	Next *StringArray
}

// StringTable is a post-optimization dispatch node replacing a run of
// String/Character/Class/Dot alternatives with one sorted array of
// strings plus an optional class (spec.md §3's StringTable variant,
// synthesized by optimize.SynthesizeStringTables, lowered by codegen's
// stringTableTemplate as a flat longest-match probe).
type StringTable struct {
	// Bits, if non-nil, is the leading character class folded into
	// the head entry (spec.md §4.3).
	Bits *charset.Set

	// EmptyString is true if one of the coalesced alternatives was
	// the empty string.
	EmptyString bool

	// Value is the head StringArray (offset 0).
	Value *StringArray

	Loc Loc
}

func (e *StringTable) Begin() Loc { return e.Loc }
func (e *StringTable) End() Loc   { return e.Loc }
