// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

package ast

// Grammar is a parsed and (after Check) linked PEG grammar: the root
// forest of spec.md §3, a Rules list plus the global Actions list that
// threads every Action across every rule.
type Grammar struct {
	// Prelude is user code copied verbatim to the top of the
	// generated output.
	Prelude string

	// Rules are the rules of the grammar, in creation order: a rule
	// is appended when it is first defined or first referenced,
	// whichever comes first.
	Rules []*Rule

	// Start is the rule named "start", or else the first rule whose
	// body was set. Set automatically as rule bodies are set; see
	// Builder.SetExpression.
	Start *Rule

	// Actions threads every Action node across every rule, in the
	// order the actions were constructed.
	Actions []*Action
}

// RuleByName returns the named rule, or nil if none exists.
func (g *Grammar) RuleByName(name string) *Rule {
	for _, r := range g.Rules {
		if r.RuleName == name {
			return r
		}
	}
	return nil
}

// A Rule defines a production in a PEG grammar: spec.md §3's Rule
// variant (name, id, Used/Reached flags, variables, body, and —
// unlike the C original's intrusive `next` pointer — membership in
// Grammar.Rules instead of a manual linked list).
type Rule struct {
	// RuleName is the rule's name, with any '-' translated to '_'
	// (spec.md §4.1, FindRule).
	RuleName string

	// NameLoc is the location of the rule's name.
	NameLoc Loc

	// ErrorName is an optional display name for the rule, kept from
	// the teacher's Rule.ErrorName. Nothing in this module sets or
	// reads it; diagnostics are reported at their own locations.
	ErrorName string

	// ID is the rule's unique integer, assigned in creation order
	// (see Grammar.Rules) starting at 0. It may be used as an array index.
	ID int

	// Used indicates some Name node references this rule.
	Used bool

	// Reached guards consumes-input's cycle detection (spec.md
	// §4.5); true while the analyzer is inside this rule's call
	// stack.
	Reached bool

	// Variables are the rule's captured slots, in the order their
	// bindings first appear in the body.
	Variables []*Variable

	// Expr is the rule's body. Nil if the rule was forward
	// referenced (FindRule) but never defined.
	Expr Node

	// Safe is true when the rule's top-level expression is a Query
	// or Star and therefore cannot fail (spec.md §4.5/§4.6); set by
	// analyze.Analyze and read by the code generator.
	Safe bool

	consumes      bool
	consumesKnown bool
}

func (r *Rule) Begin() Loc { return r.NameLoc }

func (r *Rule) End() Loc {
	if r.Expr != nil {
		return r.Expr.End()
	}
	return r.NameLoc
}

// Consumes returns the memoized consumes-input result for r, and
// whether the analyzer has computed it yet.
func (r *Rule) Consumes() (value, known bool) { return r.consumes, r.consumesKnown }

// SetConsumes memoizes the consumes-input result for r.
func (r *Rule) SetConsumes(v bool) {
	r.consumes = v
	r.consumesKnown = true
}

// A Variable is a captured slot within a rule's value-stack frame
// (spec.md §3's Variable variant), bound by a Name node's optional
// variable.
type Variable struct {
	// Name is the variable's identifier text.
	Name string

	// Offset is the variable's index into its owning rule's vals
	// array, assigned at code-gen time. spec.md §3 describes offsets
	// as descending from 0 into a single process-wide growing value
	// stack; this package instead gives each rule its own fixed-size
	// vals array sized to len(Rule.Variables) (codegen.writeRule), so
	// offsets are assigned ascending from 0 — the per-variable,
	// assigned-at-code-gen-time property spec.md requires is
	// preserved, only the shared-growing-stack layout is not.
	Offset int
}

// An Action is a semantic action: a synthesized callback name, the
// opaque host-language code fragment it runs (with every "$$"
// rewritten to "yy" at construction time), and the rule that owns it
// (spec.md §3's Action variant). Action is itself an expression node:
// it fires a thunk but never fails.
type Action struct {
	// Name is the synthesized callback name, "_<n>_<rule>".
	Name string

	// Code is the opaque action body, exactly as pasted by the
	// front end except for the "$$" -> "yy" rewrite.
	Code string

	// Rule is the owning rule.
	Rule *Rule

	Loc Loc
}

func (e *Action) Begin() Loc { return e.Loc }
func (e *Action) End() Loc   { return e.Loc }

// A Predicate is a guard expression evaluated at match time (not
// deferred as a thunk): spec.md §3's Predicate variant. Neg selects
// between the two surface forms: `&{code}` succeeds when code is
// true, `!{code}` succeeds when code is false.
type Predicate struct {
	// Code is the opaque boolean guard expression.
	Code string
	Neg  bool
	Loc  Loc
}

func (e *Predicate) Begin() Loc { return e.Loc }
func (e *Predicate) End() Loc   { return e.Loc }
