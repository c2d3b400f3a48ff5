// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

// Package optimize implements the grammar-tree rewrite passes of
// spec.md §4.2-§4.3: adjacent class/character coalescing, ordered-
// choice reachability filtering, and StringTable synthesis. Every
// pass operates on an *ast.Alternate's Children in place, grounded on
// original_source/optimize.c's optimizeAlternateClass for the first
// pass; the latter two have no surviving C source (only one
// optimize.c revision remains on disk) and are implemented from
// spec.md §4.3's prose description directly.
package optimize

import (
	"sort"

	"github.com/pegc/pegc/internal/ast"
	"github.com/pegc/pegc/internal/charset"
)

// Warn reports a non-fatal diagnostic at loc.
type Warn func(loc ast.Loc, format string, args ...interface{})

// Optimize runs every pass over each rule in g, bottom-up, so that an
// Alternate nested inside another node's subtree is coalesced,
// filtered, and stringtable-synthesized before its enclosing node is
// considered.
func Optimize(g *ast.Grammar, warn Warn) {
	for _, r := range g.Rules {
		if r.Expr != nil {
			r.Expr = optimizeNode(r.Expr, warn)
		}
	}
}

func optimizeNode(n ast.Node, warn Warn) ast.Node {
	switch v := n.(type) {
	case *ast.Alternate:
		for i, c := range v.Children {
			v.Children[i] = optimizeNode(c, warn)
		}
		CoalesceAlternateClasses(v)
		FilterUnreachable(v, warn)
		SynthesizeStringTables(v)
		if len(v.Children) == 1 {
			return v.Children[0]
		}
		return v
	case *ast.Sequence:
		for i, c := range v.Children {
			v.Children[i] = optimizeNode(c, warn)
		}
		return v
	case *ast.PeekFor:
		v.Element = optimizeNode(v.Element, warn)
		return v
	case *ast.PeekNot:
		v.Element = optimizeNode(v.Element, warn)
		return v
	case *ast.Query:
		v.Element = optimizeNode(v.Element, warn)
		return v
	case *ast.Star:
		v.Element = optimizeNode(v.Element, warn)
		return v
	case *ast.Plus:
		v.Element = optimizeNode(v.Element, warn)
		return v
	default:
		return n
	}
}

// isClassLike reports whether n is a Character or CharClass, the two
// variants optimizeAlternateClass coalesces.
func isClassLike(n ast.Node) bool {
	switch n.(type) {
	case *ast.Character, *ast.CharClass:
		return true
	default:
		return false
	}
}

func unionInto(set *charset.Set, n ast.Node) {
	switch v := n.(type) {
	case *ast.Character:
		set.Set(v.Value)
	case *ast.CharClass:
		set.Union(v.Bits)
	}
}

// CoalesceAlternateClasses merges every maximal run of two or more
// adjacent Character/CharClass alternatives within alt into a single
// CharClass whose bits are their union (spec.md §4.2, grounded on
// original_source/optimize.c's optimizeAlternateClass). A run of just
// one such node is left as-is: coalescing it would only replace a
// Character with an equivalent, costlier CharClass.
func CoalesceAlternateClasses(alt *ast.Alternate) {
	out := make([]ast.Node, 0, len(alt.Children))
	i := 0
	for i < len(alt.Children) {
		c := alt.Children[i]
		if !isClassLike(c) {
			out = append(out, c)
			i++
			continue
		}
		j := i
		var set charset.Set
		for j < len(alt.Children) && isClassLike(alt.Children[j]) {
			unionInto(&set, alt.Children[j])
			j++
		}
		if j-i > 1 {
			out = append(out, &ast.CharClass{Bits: set, Spelling: set.String(), Loc: c.Begin()})
		} else {
			out = append(out, c)
		}
		i = j
	}
	alt.Children = out
}

// hasPrefixBytes reports whether prefix is a byte-for-byte prefix of s,
// the dominance test spec.md §4.3 uses to drop a longer string whose
// match is already guaranteed by a shorter, earlier-registered one.
func hasPrefixBytes(s, prefix []byte) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, b := range prefix {
		if s[i] != b {
			return false
		}
	}
	return true
}

// FilterUnreachable implements spec.md §4.3's reachability filter: it
// walks alt's children left to right, tracking the 256-bit set of
// first bytes already guaranteed to match by an earlier Class/Dot/
// Character, whether an earlier zero-length String was seen, and,
// bucketed by first byte, the (bytes, length) of every earlier
// registered non-empty String. A later alternative dominated by any
// of that state can never be reached under ordered-choice semantics
// (an earlier alternative is guaranteed to already have matched it)
// and is dropped with a warning.
func FilterUnreachable(alt *ast.Alternate, warn Warn) {
	var bits charset.Set
	emptyString := false
	buckets := make(map[byte][][]byte)
	out := make([]ast.Node, 0, len(alt.Children))
	for _, c := range alt.Children {
		switch v := c.(type) {
		case *ast.Dot:
			bits.SetAll()
			out = append(out, c)
		case *ast.CharClass:
			bits.Union(v.Bits)
			out = append(out, c)
		case *ast.Character:
			if bits.Test(v.Value) {
				warn(c.Begin(), "alternative %s can never be matched", c.String())
				continue
			}
			bits.Set(v.Value)
			out = append(out, c)
		case *ast.Literal:
			raw := v.Value.Bytes
			if len(raw) == 0 {
				if emptyString {
					warn(c.Begin(), "alternative %s can never be matched", c.String())
					continue
				}
				emptyString = true
				out = append(out, c)
				continue
			}
			first := raw[0]
			if bits.Test(first) {
				warn(c.Begin(), "alternative %s can never be matched", c.String())
				continue
			}
			dominated := false
			for _, prior := range buckets[first] {
				if len(prior) <= len(raw) && hasPrefixBytes(raw, prior) {
					dominated = true
					break
				}
			}
			if dominated {
				warn(c.Begin(), "alternative %s can never be matched", c.String())
				continue
			}
			buckets[first] = append(buckets[first], raw)
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	alt.Children = out
}

// isStringTableCandidate reports whether n is one of the four variants
// spec.md §4.3 requires an Alternate's children to be exclusively
// composed of before StringTable synthesis applies.
func isStringTableCandidate(n ast.Node) bool {
	switch n.(type) {
	case *ast.Literal, *ast.Character, *ast.CharClass, *ast.Dot:
		return true
	default:
		return false
	}
}

// SynthesizeStringTables replaces alt's entire child list with a
// single StringTable when every child is exclusively a String,
// Character, Class or Dot (spec.md §4.3), folding every Class/
// Character/Dot's bit contribution into the table's head Bits (so a
// single-byte alternative is tested by bit lookup rather than by
// string comparison) and collecting every non-empty Literal into the
// sorted strings array. Per spec.md §3's invariant ("within an
// Alternate that has been optimized into a StringTable, the sibling
// list has exactly one child"), this never leaves a partial run
// alongside other node types — if any child doesn't qualify, the
// whole Alternate is left untouched.
func SynthesizeStringTables(alt *ast.Alternate) {
	if len(alt.Children) == 0 {
		return
	}
	var bits charset.Set
	hasCC := false
	var raws []*ast.RawString
	empty := false
	count := 0
	for _, c := range alt.Children {
		if !isStringTableCandidate(c) {
			return
		}
		switch v := c.(type) {
		case *ast.Dot:
			bits.SetAll()
			hasCC = true
		case *ast.CharClass:
			bits.Union(v.Bits)
			hasCC = true
		case *ast.Character:
			bits.Set(v.Value)
			hasCC = true
		case *ast.Literal:
			if len(v.Value.Bytes) == 0 {
				empty = true
			} else {
				raws = append(raws, v.Value)
				count++
			}
		}
	}
	gain := count
	if hasCC {
		gain++
	}
	if count == 0 || gain < 2 {
		return
	}
	sortStrings(raws)
	st := &ast.StringTable{
		EmptyString: empty,
		Value:       &ast.StringArray{Offset: 0, Strings: raws},
		Loc:         alt.Children[0].Begin(),
	}
	if hasCC {
		st.Bits = &bits
	}
	alt.Children = []ast.Node{st}
}

func sortStrings(raws []*ast.RawString) {
	sort.SliceStable(raws, func(i, j int) bool {
		a, b := raws[i].Bytes, raws[j].Bytes
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
}
