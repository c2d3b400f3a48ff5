// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

package ast

// Warn reports a non-fatal diagnostic at loc. Defined locally (rather
// than imported from package diag) so ast, the lowest package in the
// dependency order, never depends on anything above it; diag.Warn and
// optimize.Warn and analyze.Warn share the identical underlying
// function type, so callers pass a diag.Sink's Warn method through a
// plain conversion.
type Warn func(loc Loc, format string, args ...interface{})

// Check does semantic analysis of a built Grammar, returning every
// fatal error found (in source-location order) or nil if the grammar
// is well formed, and reporting every non-fatal diagnostic to warn.
// Grounded on the teacher's own check.go, adapted to this package's
// construction model: where the teacher's Check resolves Ident->Rule
// references during the check pass itself (its front end builds an
// untyped Ident node first), this package's Builder.FindRule resolves
// or forward-declares the target rule immediately at construction
// time, so Check's job narrows to confirming the grammar has a start
// rule and reporting the two rule-level diagnostics spec.md §4.9/§7
// classify as warnings rather than errors:
//   - a rule referenced but never defined (its body is simply skipped
//     by the code generator, which already omits any Rule with a nil
//     Expr);
//   - a rule defined but never referenced, and not the start rule.
func Check(g *Grammar, warn Warn) error {
	var errs Errors
	for _, r := range g.Rules {
		switch {
		case r.Used && r.Expr == nil:
			warn(r.NameLoc, "rule %q is used but never defined", r.RuleName)
		case !r.Used && r != g.Start:
			warn(r.NameLoc, "rule %q is defined but never referenced", r.RuleName)
		}
	}
	if g.Start == nil {
		errs.Add(Loc{}, "grammar has no rules")
	}
	return errs.Ret()
}
