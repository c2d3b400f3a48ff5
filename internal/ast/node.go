// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

// Package ast is the grammar middle-end's expression tree: the tagged
// node variants of spec.md §3, their construction API (§6.1, "the
// grammar-tree constructor contract"), and pretty-printing.
//
// Every PEG operator is its own Go type implementing Node, dispatched
// by ordinary interface method calls rather than a discriminant field
// plus switch — the same "one type per variant, single visitor
// interface" discipline the teacher (eaburns/peggy, rule.go) uses for
// its own Expr hierarchy. Where the original peg/leg C implementation
// threads sibling lists through an intrusive `next` pointer so an
// Alternate/Sequence node can be spliced in place, this tree uses a Go
// slice of children instead — exactly how the teacher itself already
// generalized the same C lineage (rule.go's Choice and Sequence are
// `[]Expr`), and it lets optimizer edits rebuild a child slice
// without manual pointer bookkeeping.
package ast

// Node is a node in a grammar expression tree: one of the variants
// in spec.md §3 (Dot, Character, String/Literal, Class/CharClass,
// Name, Action, Predicate, Alternate, Sequence, PeekFor, PeekNot,
// Query, Star, Plus, StringTable).
type Node interface {
	Located

	// String returns the natural-precedence PEG source for the node.
	String() string

	// fullString returns the fully parenthesized form, used by
	// diagnostics and tests that must disambiguate precedence.
	fullString() string

	// Walk calls f for the node and then, if f returns true, for
	// every child in the tree. Walk stops early if f returns false.
	Walk(f func(Node) bool) bool
}

// FullString returns the fully parenthesized string form of n. It is
// exported for use outside the package (tests, diagnostics) since
// Node.fullString is not.
func FullString(n Node) string { return n.fullString() }
