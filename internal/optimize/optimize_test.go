// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

package optimize

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pegc/pegc/internal/ast"
	"github.com/pegc/pegc/internal/charset"
)

func TestCoalesceAlternateClasses(t *testing.T) {
	alt := &ast.Alternate{Children: []ast.Node{
		&ast.Character{Value: 'a'},
		&ast.Character{Value: 'b'},
		&ast.Name{Rule: &ast.Rule{RuleName: "foo"}},
		&ast.Character{Value: 'c'},
	}}
	CoalesceAlternateClasses(alt)
	if len(alt.Children) != 3 {
		t.Fatalf("got %d children, want 3: %v", len(alt.Children), alt.Children)
	}
	cc, ok := alt.Children[0].(*ast.CharClass)
	if !ok {
		t.Fatalf("first child is %T, want *ast.CharClass", alt.Children[0])
	}
	if !cc.Bits.Test('a') || !cc.Bits.Test('b') || cc.Bits.Test('c') {
		t.Errorf("coalesced class missing expected bits: %v", cc.Bits)
	}
}

func TestCoalesceSingletonLeftAlone(t *testing.T) {
	alt := &ast.Alternate{Children: []ast.Node{
		&ast.Character{Value: 'a'},
		&ast.Name{Rule: &ast.Rule{RuleName: "foo"}},
	}}
	CoalesceAlternateClasses(alt)
	if _, ok := alt.Children[0].(*ast.Character); !ok {
		t.Errorf("singleton Character was coalesced into %T", alt.Children[0])
	}
}

func TestFilterUnreachable(t *testing.T) {
	var warnings []string
	warn := func(loc ast.Loc, format string, args ...interface{}) {
		warnings = append(warnings, format)
	}
	alt := &ast.Alternate{Children: []ast.Node{
		&ast.Character{Value: 'a'},
		&ast.Dot{},
		&ast.Character{Value: 'b'},
	}}
	FilterUnreachable(alt, warn)
	if len(alt.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(alt.Children))
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
}

func TestSynthesizeStringTables(t *testing.T) {
	alt := &ast.Alternate{Children: []ast.Node{
		&ast.Literal{Value: &ast.RawString{Bytes: []byte("bb")}},
		&ast.Literal{Value: &ast.RawString{Bytes: []byte("aa")}},
	}}
	SynthesizeStringTables(alt)
	if len(alt.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(alt.Children))
	}
	st, ok := alt.Children[0].(*ast.StringTable)
	if !ok {
		t.Fatalf("first child is %T, want *ast.StringTable", alt.Children[0])
	}
	want := []*ast.RawString{{Bytes: []byte("aa")}, {Bytes: []byte("bb")}}
	if diff := cmp.Diff(want, st.Value.Strings); diff != "" {
		t.Errorf("Strings mismatch (-want +got):\n%s", diff)
	}
	if st.Bits != nil {
		t.Errorf("Bits = %v, want nil: no Character/Class/Dot child was present", st.Bits)
	}
}

// TestSynthesizeStringTablesFoldsClassBits confirms a Character mixed
// in among qualifying Literals folds into the table's head Bits
// instead of being dropped, per spec.md §4.3's "bits = union of all
// Class/Character/Dot bit contributions".
func TestSynthesizeStringTablesFoldsClassBits(t *testing.T) {
	alt := &ast.Alternate{Children: []ast.Node{
		&ast.Literal{Value: &ast.RawString{Bytes: []byte("bb")}},
		&ast.Literal{Value: &ast.RawString{Bytes: []byte("aa")}},
		&ast.Character{Value: 'x'},
	}}
	SynthesizeStringTables(alt)
	if len(alt.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(alt.Children))
	}
	st, ok := alt.Children[0].(*ast.StringTable)
	if !ok {
		t.Fatalf("first child is %T, want *ast.StringTable", alt.Children[0])
	}
	if st.Bits == nil || !st.Bits.Test('x') {
		t.Fatalf("Bits = %v, want a set bit for 'x'", st.Bits)
	}
}

// TestSynthesizeStringTablesLeavesMixedAlternateUntouched confirms a
// single non-qualifying child (here a rule reference) blocks synthesis
// entirely rather than producing a partial run beside it, preserving
// spec.md §3's "exactly one child" StringTable invariant.
func TestSynthesizeStringTablesLeavesMixedAlternateUntouched(t *testing.T) {
	alt := &ast.Alternate{Children: []ast.Node{
		&ast.Literal{Value: &ast.RawString{Bytes: []byte("bb")}},
		&ast.Literal{Value: &ast.RawString{Bytes: []byte("aa")}},
		&ast.Name{Rule: &ast.Rule{RuleName: "foo"}},
	}}
	SynthesizeStringTables(alt)
	if len(alt.Children) != 3 {
		t.Fatalf("got %d children, want 3 (untouched)", len(alt.Children))
	}
	if _, ok := alt.Children[0].(*ast.Literal); !ok {
		t.Errorf("first child is %T, want *ast.Literal (untouched)", alt.Children[0])
	}
}

// TestSynthesizeStringTablesSkipsLoneSurvivor confirms a single
// qualifying child is left as-is: synthesizing a one-entry table would
// only replace a plain match with a costlier dispatch node.
func TestSynthesizeStringTablesSkipsLoneSurvivor(t *testing.T) {
	alt := &ast.Alternate{Children: []ast.Node{
		&ast.Literal{Value: &ast.RawString{Bytes: []byte("aa")}},
	}}
	SynthesizeStringTables(alt)
	if _, ok := alt.Children[0].(*ast.Literal); !ok {
		t.Errorf("child is %T, want *ast.Literal (untouched)", alt.Children[0])
	}
}

// TestFilterUnreachableDominatedString exercises spec.md §8.2 scenario
// 2 at the FilterUnreachable level: a longer string dominated by a
// shorter, earlier-registered prefix is dropped with a warning, so
// `start = "foo" | "foobar"` only ever accepts "foo".
func TestFilterUnreachableDominatedString(t *testing.T) {
	var warnings []string
	warn := func(loc ast.Loc, format string, args ...interface{}) {
		warnings = append(warnings, format)
	}
	alt := &ast.Alternate{Children: []ast.Node{
		&ast.Literal{Value: &ast.RawString{Bytes: []byte("foo")}},
		&ast.Literal{Value: &ast.RawString{Bytes: []byte("foobar")}},
	}}
	FilterUnreachable(alt, warn)
	if len(alt.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(alt.Children))
	}
	lit, ok := alt.Children[0].(*ast.Literal)
	if !ok || string(lit.Value.Bytes) != "foo" {
		t.Fatalf("surviving child = %v, want literal \"foo\"", alt.Children[0])
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
}

// TestFilterUnreachableCharacterDominatedByClass confirms a Character
// whose byte is already covered by an earlier CharClass is dropped.
func TestFilterUnreachableCharacterDominatedByClass(t *testing.T) {
	var warnings []string
	warn := func(loc ast.Loc, format string, args ...interface{}) {
		warnings = append(warnings, format)
	}
	var bits charset.Set
	bits.Set('x')
	alt := &ast.Alternate{Children: []ast.Node{
		&ast.CharClass{Bits: bits},
		&ast.Character{Value: 'x'},
	}}
	FilterUnreachable(alt, warn)
	if len(alt.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(alt.Children))
	}
	if _, ok := alt.Children[0].(*ast.CharClass); !ok {
		t.Errorf("surviving child is %T, want *ast.CharClass", alt.Children[0])
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
}

// TestFilterUnreachableDuplicateEmptyString confirms a second
// zero-length alternative is dropped as an unreachable duplicate.
func TestFilterUnreachableDuplicateEmptyString(t *testing.T) {
	var warnings []string
	warn := func(loc ast.Loc, format string, args ...interface{}) {
		warnings = append(warnings, format)
	}
	alt := &ast.Alternate{Children: []ast.Node{
		&ast.Literal{Value: &ast.RawString{Bytes: nil}},
		&ast.Literal{Value: &ast.RawString{Bytes: nil}},
	}}
	FilterUnreachable(alt, warn)
	if len(alt.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(alt.Children))
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
}

func TestOptimizeRecursesIntoSubtrees(t *testing.T) {
	inner := &ast.Alternate{Children: []ast.Node{
		&ast.Character{Value: 'x'},
		&ast.Character{Value: 'y'},
	}}
	g := &ast.Grammar{Rules: []*ast.Rule{
		{RuleName: "r", Expr: &ast.Star{Element: inner}},
	}}
	Optimize(g, func(ast.Loc, string, ...interface{}) {})
	star := g.Rules[0].Expr.(*ast.Star)
	if _, ok := star.Element.(*ast.CharClass); !ok {
		t.Errorf("nested Alternate was not coalesced: %T", star.Element)
	}
}
