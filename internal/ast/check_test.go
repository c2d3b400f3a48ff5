// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

package ast

import "testing"

func TestCheckUsedButUndefinedIsWarningNotError(t *testing.T) {
	b := NewBuilder()
	start := b.MakeRule("start", Loc{})
	missing := b.FindRule("missing", Loc{})
	b.BeginRule(start)
	b.SetExpression(start, b.MakeName(missing, Loc{}))

	var warnings []string
	warn := func(loc Loc, format string, args ...interface{}) { warnings = append(warnings, format) }
	if err := Check(b.Grammar, warn); err != nil {
		t.Fatalf("Check: %v, want nil (used-but-undefined is a warning)", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
}

func TestCheckUnusedRuleWarns(t *testing.T) {
	b := NewBuilder()
	start := b.MakeRule("start", Loc{})
	b.BeginRule(start)
	b.SetExpression(start, b.MakeDot(Loc{}))
	unused := b.MakeRule("unused", Loc{})
	b.BeginRule(unused)
	b.SetExpression(unused, b.MakeDot(Loc{}))

	var warnings []string
	warn := func(loc Loc, format string, args ...interface{}) { warnings = append(warnings, format) }
	if err := Check(b.Grammar, warn); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
}

func TestCheckStartRuleExemptFromUnusedWarning(t *testing.T) {
	b := NewBuilder()
	start := b.MakeRule("start", Loc{})
	b.BeginRule(start)
	b.SetExpression(start, b.MakeDot(Loc{}))

	var warnings []string
	warn := func(loc Loc, format string, args ...interface{}) { warnings = append(warnings, format) }
	if err := Check(b.Grammar, warn); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("got %d warnings, want 0 (start rule is never unused): %v", len(warnings), warnings)
	}
}

func TestCheckNoRulesIsFatal(t *testing.T) {
	g := &Grammar{}
	if err := Check(g, func(Loc, string, ...interface{}) {}); err == nil {
		t.Fatal("Check: got nil error, want a fatal error for a grammar with no rules")
	}
}
