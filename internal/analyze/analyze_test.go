// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

package analyze

import (
	"testing"

	"github.com/pegc/pegc/internal/ast"
)

func TestConsumesSimpleCharacter(t *testing.T) {
	g := &ast.Grammar{Rules: []*ast.Rule{
		{RuleName: "r", Expr: &ast.Character{Value: 'a'}},
	}}
	Analyze(g, func(ast.Loc, string, ...interface{}) {})
	v, known := g.Rules[0].Consumes()
	if !known || !v {
		t.Fatalf("Consumes() = %v, %v; want true, true", v, known)
	}
}

func TestConsumesStarNeverConsumes(t *testing.T) {
	g := &ast.Grammar{Rules: []*ast.Rule{
		{RuleName: "r", Expr: &ast.Star{Element: &ast.Character{Value: 'a'}}},
	}}
	Analyze(g, func(ast.Loc, string, ...interface{}) {})
	v, known := g.Rules[0].Consumes()
	if !known || v {
		t.Fatalf("Consumes() = %v, %v; want false, true", v, known)
	}
	if !g.Rules[0].Safe {
		t.Error("Star rule should be marked Safe")
	}
}

func TestConsumesDetectsLeftRecursion(t *testing.T) {
	r := &ast.Rule{RuleName: "r"}
	r.Expr = &ast.Sequence{Children: []ast.Node{&ast.Name{Rule: r}, &ast.Character{Value: 'a'}}}
	g := &ast.Grammar{Rules: []*ast.Rule{r}}

	var warned bool
	Analyze(g, func(ast.Loc, string, ...interface{}) { warned = true })
	if !warned {
		t.Error("expected a left-recursion warning")
	}
}
