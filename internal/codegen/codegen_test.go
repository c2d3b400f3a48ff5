// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

package codegen

import (
	"bytes"
	"go/parser"
	"go/token"
	"testing"

	"github.com/pegc/pegc/internal/analyze"
	"github.com/pegc/pegc/internal/ast"
	"github.com/pegc/pegc/internal/frontend"
	"github.com/pegc/pegc/internal/optimize"
)

func build(t *testing.T, src string) *ast.Grammar {
	t.Helper()
	g, err := frontend.Parse("t.peg", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := ast.Check(g, func(ast.Loc, string, ...interface{}) {}); err != nil {
		t.Fatalf("Check: %v", err)
	}
	optimize.Optimize(g, func(ast.Loc, string, ...interface{}) {})
	analyze.Analyze(g, func(ast.Loc, string, ...interface{}) {})
	return g
}

// parseGo confirms src is syntactically valid Go, the minimal bar a
// generated file must clear; the Go toolchain itself is never invoked.
func parseGo(t *testing.T, src string) {
	t.Helper()
	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "generated.go", src, 0); err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, src)
	}
}

func TestGenerateSimpleRule(t *testing.T) {
	g := build(t, `
start <- 'a' 'b'+ rest
rest  <- [0-9]* / .
`)
	var buf bytes.Buffer
	if err := Generate(&buf, g); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	parseGo(t, buf.String())
}

// TestGenerateVariableCapture exercises the vals-array lowering of a
// bound Name and an action that reads it back: the exact path a prior
// revision of this package left referencing an undeclared identifier.
func TestGenerateVariableCapture(t *testing.T) {
	g := build(t, `
start <- n:num { yy = n }
num   <- [0-9]+
`)
	var buf bytes.Buffer
	if err := Generate(&buf, g); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	parseGo(t, buf.String())
}

// TestGeneratePredicateWithVariable exercises a predicate guard that
// runs alongside a captured variable in the same rule.
func TestGeneratePredicateWithVariable(t *testing.T) {
	g := build(t, `
start <- n:num &{ len(n) > 0 } .
num   <- [0-9]+
`)
	var buf bytes.Buffer
	if err := Generate(&buf, g); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	parseGo(t, buf.String())
}

// TestGenerateStringTableWithClass exercises a StringTable whose head
// entry folds in a CharClass contribution (spec.md §4.3's bits).
func TestGenerateStringTableWithClass(t *testing.T) {
	g := build(t, `
start <- "go" / "good" / [x]
`)
	var buf bytes.Buffer
	if err := Generate(&buf, g); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	parseGo(t, buf.String())
}

func TestGenerateUndefinedRuleBodyIsSkipped(t *testing.T) {
	g := build(t, `
start <- missing
`)
	if g.RuleByName("missing") == nil {
		t.Fatalf("expected a forward-declared rule for %q", "missing")
	}
	var buf bytes.Buffer
	if err := Generate(&buf, g); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	parseGo(t, buf.String())
}
