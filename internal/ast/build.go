// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

package ast

import (
	"fmt"
	"strings"

	"github.com/pegc/pegc/internal/charset"
)

// Builder is the grammar-tree constructor contract of spec.md §6.1:
// the front end calls its methods to build a Grammar one node at a
// time. Builder carries the state the C original kept in process-wide
// statics (the rule currently being built, the per-rule action
// counter) as explicit fields instead, per spec.md §9's "explicit
// emitter context" guidance applied to construction as well as
// code generation.
type Builder struct {
	Grammar     *Grammar
	thisRule    *Rule
	actionCount int
}

// NewBuilder returns a Builder for a fresh Grammar.
func NewBuilder() *Builder {
	return &Builder{Grammar: &Grammar{}}
}

// MakeRule appends a new, empty rule named name to the grammar,
// assigning it the next rule ID.
func (b *Builder) MakeRule(name string, loc Loc) *Rule {
	r := &Rule{RuleName: name, NameLoc: loc, ID: len(b.Grammar.Rules)}
	b.Grammar.Rules = append(b.Grammar.Rules, r)
	return r
}

// FindRule translates any '-' in name to '_' and returns the existing
// rule by that name, or else creates a forward-declared rule (Expr
// nil until a later SetExpression call fills it in).
func (b *Builder) FindRule(name string, loc Loc) *Rule {
	name = strings.ReplaceAll(name, "-", "_")
	if r := b.Grammar.RuleByName(name); r != nil {
		return r
	}
	return b.MakeRule(name, loc)
}

// BeginRule resets the per-rule action counter and marks r as the
// rule currently under construction; MakeAction and MakeVariable
// operate against it.
func (b *Builder) BeginRule(r *Rule) *Rule {
	b.actionCount = 0
	b.thisRule = r
	return r
}

// SetExpression sets rule's body. The first rule created, or any
// rule named "start", becomes the Grammar's Start rule.
func (b *Builder) SetExpression(rule *Rule, expr Node) {
	rule.Expr = expr
	if b.Grammar.Start == nil || rule.RuleName == "start" {
		b.Grammar.Start = rule
	}
}

// MakeVariable returns the named variable within the rule currently
// under construction, creating it (and appending it to the rule's
// Variables) the first time that name is seen.
func (b *Builder) MakeVariable(name string) *Variable {
	if b.thisRule == nil {
		panic("ast: MakeVariable called outside BeginRule")
	}
	for _, v := range b.thisRule.Variables {
		if v.Name == name {
			return v
		}
	}
	v := &Variable{Name: name}
	b.thisRule.Variables = append(b.thisRule.Variables, v)
	return v
}

// MakeName returns a Name node referencing rule, marking it Used.
func (b *Builder) MakeName(rule *Rule, loc Loc) *Name {
	rule.Used = true
	return &Name{Rule: rule, Loc: loc}
}

// MakeDot returns a Dot node.
func (b *Builder) MakeDot(loc Loc) *Dot { return &Dot{Loc: loc} }

// MakeString decodes text's escapes and returns a Character if the
// decoded value is a single byte, else a Literal (single-byte strings
// are demoted to Character at build time, so a Literal is either
// empty or at least two bytes long).
func (b *Builder) MakeString(text string, loc Loc) Node {
	raw := Unescape(text)
	if len(raw.Bytes) == 1 {
		return &Character{Value: raw.Bytes[0], Spelling: text, Loc: loc}
	}
	return &Literal{Value: raw, Spelling: text, Loc: loc}
}

// MakeClass parses text's class syntax and returns a CharClass.
// text is the full source spelling, brackets included (e.g.
// "[a-z^\n]"); only the bracketed interior is handed to charset.Parse.
func (b *Builder) MakeClass(text string, loc Loc) *CharClass {
	inner := text
	if len(inner) >= 2 && inner[0] == '[' && inner[len(inner)-1] == ']' {
		inner = inner[1 : len(inner)-1]
	}
	return &CharClass{Bits: charset.Parse(inner), Spelling: text, Loc: loc}
}

// MakeAction assigns a synthetic callback name derived from the rule
// currently under construction, rewrites every "$$" in text to "yy",
// links the Action into Grammar.Actions, and returns it.
func (b *Builder) MakeAction(text string, loc Loc) *Action {
	if b.thisRule == nil {
		panic("ast: MakeAction called outside BeginRule")
	}
	b.actionCount++
	a := &Action{
		Name: fmt.Sprintf("_%d_%s", b.actionCount, b.thisRule.RuleName),
		Code: strings.ReplaceAll(text, "$$", "yy"),
		Rule: b.thisRule,
		Loc:  loc,
	}
	b.Grammar.Actions = append(b.Grammar.Actions, a)
	return a
}

// MakePredicate returns a Predicate guard with opaque code text. neg
// is true for the `!{code}` surface form, false for `&{code}`.
func (b *Builder) MakePredicate(text string, neg bool, loc Loc) *Predicate {
	return &Predicate{Code: text, Neg: neg, Loc: loc}
}

// MakeAlternate wraps e in a single-child Alternate, unless e is
// already an Alternate, in which case it is returned unchanged.
func MakeAlternate(e Node) *Alternate {
	if a, ok := e.(*Alternate); ok {
		return a
	}
	return &Alternate{Children: []Node{e}}
}

// AlternateAppend appends e as a new alternative of a, promoting a to
// an Alternate first if needed, and returns the (possibly new)
// Alternate.
func AlternateAppend(a Node, e Node) *Alternate {
	alt := MakeAlternate(a)
	alt.Children = append(alt.Children, e)
	return alt
}

// MakeSequence wraps e in a single-child Sequence, unless e is
// already a Sequence, in which case it is returned unchanged.
func MakeSequence(e Node) *Sequence {
	if s, ok := e.(*Sequence); ok {
		return s
	}
	return &Sequence{Children: []Node{e}}
}

// SequenceAppend appends e to a, promoting a to a Sequence first if
// needed, and returns the (possibly new) Sequence.
func SequenceAppend(a Node, e Node) *Sequence {
	seq := MakeSequence(a)
	seq.Children = append(seq.Children, e)
	return seq
}

// MakePeekFor returns a positive-lookahead node wrapping e.
func (b *Builder) MakePeekFor(e Node, loc Loc) *PeekFor { return &PeekFor{Element: e, Loc: loc} }

// MakePeekNot returns a negative-lookahead node wrapping e.
func (b *Builder) MakePeekNot(e Node, loc Loc) *PeekNot { return &PeekNot{Element: e, Loc: loc} }

// MakeQuery returns a `?` repetition node wrapping e.
func (b *Builder) MakeQuery(e Node, loc Loc) *Query { return &Query{Element: e, Loc: loc} }

// MakeStar returns a `*` repetition node wrapping e.
func (b *Builder) MakeStar(e Node, loc Loc) *Star { return &Star{Element: e, Loc: loc} }

// MakePlus returns a `+` repetition node wrapping e.
func (b *Builder) MakePlus(e Node, loc Loc) *Plus { return &Plus{Element: e, Loc: loc} }

// MakeStringTable returns an empty StringTable whose head StringArray
// has spare capacity for count strings (spec.md §4.3).
func MakeStringTable(count int, loc Loc) *StringTable {
	return &StringTable{
		Value: &StringArray{Strings: make([]*RawString, 0, count)},
		Loc:   loc,
	}
}

// Stack is the bounded explicit stack spec.md §4.1 exposes for a
// shift/reduce-style front end. Overflow is a fatal programmer error,
// matching the C original's assert(stackPointer < stack+1023): it
// indicates a malformed or adversarial grammar file deeper than any
// real PEG nests, not a recoverable parse error.
type Stack struct {
	items []Node
	max   int
}

// NewStack returns a Stack with the minimum required depth of 1024.
func NewStack() *Stack { return &Stack{max: 1024} }

// Push pushes node and returns it.
func (s *Stack) Push(node Node) Node {
	if len(s.items) >= s.max {
		panic("ast: construction stack overflow")
	}
	s.items = append(s.items, node)
	return node
}

// Top returns the top of the stack without removing it.
func (s *Stack) Top() Node {
	if len(s.items) == 0 {
		panic("ast: Top of empty construction stack")
	}
	return s.items[len(s.items)-1]
}

// Pop removes and returns the top of the stack.
func (s *Stack) Pop() Node {
	n := s.Top()
	s.items = s.items[:len(s.items)-1]
	return n
}

// Len returns the number of items currently on the stack.
func (s *Stack) Len() int { return len(s.items) }
