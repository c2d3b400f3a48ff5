// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

package frontend

import (
	"testing"

	"github.com/eaburns/pretty"

	"github.com/pegc/pegc/internal/ast"
)

func TestParseSimpleGrammar(t *testing.T) {
	src := []byte(`
start <- 'a' 'b'+ rest
rest  <- [0-9]* / .
`)
	g, err := Parse("t.peg", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := ast.Check(g, func(ast.Loc, string, ...interface{}) {}); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if g.Start == nil || g.Start.RuleName != "start" {
		t.Fatalf("Start = %v, want rule \"start\"\n%s", g.Start, pretty.String(g.Rules))
	}
	if len(g.Rules) != 2 {
		t.Fatalf("got %d rules, want 2\n%s", len(g.Rules), pretty.String(g.Rules))
	}
}

func TestParseActionAndBinding(t *testing.T) {
	src := []byte(`
start <- n:num { $$ = n }
num   <- [0-9]+
`)
	g, err := Parse("t.peg", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(g.Actions) != 1 {
		t.Fatalf("got %d actions, want 1", len(g.Actions))
	}
	if g.Actions[0].Code != " yy = n " {
		t.Errorf("action code = %q, want the $$->yy rewrite applied", g.Actions[0].Code)
	}
}

func TestParsePredicateAndLookahead(t *testing.T) {
	src := []byte(`
start <- &{ true } !'x' .
`)
	g, err := Parse("t.peg", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	seq, ok := g.Start.Expr.(*ast.Sequence)
	if !ok {
		t.Fatalf("Expr is %T, want *ast.Sequence", g.Start.Expr)
	}
	if len(seq.Children) != 3 {
		t.Fatalf("got %d children, want 3", len(seq.Children))
	}
	if _, ok := seq.Children[0].(*ast.Predicate); !ok {
		t.Errorf("first child is %T, want *ast.Predicate", seq.Children[0])
	}
	if _, ok := seq.Children[1].(*ast.PeekNot); !ok {
		t.Errorf("second child is %T, want *ast.PeekNot", seq.Children[1])
	}
}

func TestParsePrelude(t *testing.T) {
	src := []byte(`%{
import "fmt"
%}
start <- .
`)
	g, err := Parse("t.peg", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.Prelude == "" {
		t.Error("expected a non-empty Prelude")
	}
}
