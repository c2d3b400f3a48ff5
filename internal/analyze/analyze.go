// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

// Package analyze implements the consumes-input analysis of spec.md
// §4.5 and the "safe rule" classification §4.6 depends on. Grounded
// on original_source/compile.c's consumesInput, with the note that
// this port does not reproduce that function's "Sequence walks its
// alternate.next chain" structural quirk: the ast package threads
// Sequence children through a Go slice (internal/ast's node.go doc
// comment), so the quirk simply does not arise here.
package analyze

import (
	"github.com/pegc/pegc/internal/ast"
)

// Warn reports a non-fatal diagnostic at loc.
type Warn func(loc ast.Loc, format string, args ...interface{})

// Analyze computes, for every rule in g, whether it is guaranteed to
// consume at least one byte of input on success (memoized on the Rule
// via SetConsumes), and which rules are "safe" — top-level Query or
// Star expressions that the code generator can emit without a
// failure path, per spec.md §4.6.
func Analyze(g *ast.Grammar, warn Warn) {
	for _, r := range g.Rules {
		consumesRule(r, warn)
	}
	for _, r := range g.Rules {
		switch r.Expr.(type) {
		case *ast.Query, *ast.Star:
			r.Safe = true
		}
	}
}

func consumesRule(r *ast.Rule, warn Warn) bool {
	if v, known := r.Consumes(); known {
		return v
	}
	if r.Reached {
		warn(r.Begin(), "rule %q may be left-recursive", r.RuleName)
		return false
	}
	r.Reached = true
	v := false
	if r.Expr != nil {
		v = consumesNode(r.Expr, warn)
	}
	r.Reached = false
	r.SetConsumes(v)
	return v
}

func consumesNode(n ast.Node, warn Warn) bool {
	switch v := n.(type) {
	case *ast.Dot, *ast.Character:
		return true
	case *ast.Literal:
		return len(v.Value.Bytes) > 0
	case *ast.CharClass:
		return true
	case *ast.Name:
		return consumesRule(v.Rule, warn)
	case *ast.Action, *ast.Predicate:
		return false
	case *ast.Alternate:
		for _, c := range v.Children {
			if !consumesNode(c, warn) {
				return false
			}
		}
		return len(v.Children) > 0
	case *ast.Sequence:
		for _, c := range v.Children {
			if consumesNode(c, warn) {
				return true
			}
		}
		return false
	case *ast.PeekFor, *ast.PeekNot:
		return false
	case *ast.Query, *ast.Star:
		return false
	case *ast.Plus:
		return consumesNode(v.Element, warn)
	case *ast.StringTable:
		return !v.EmptyString
	default:
		return false
	}
}
