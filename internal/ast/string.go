// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

package ast

import "strings"

// String and fullString give each node variant PEG source text at,
// respectively, natural and fully parenthesized precedence; Walk
// gives each a pre-order traversal. Grounded on the teacher's own
// string.go, which pairs the same two forms per type.

func (e *Dot) String() string     { return "." }
func (e *Dot) fullString() string { return "." }
func (e *Dot) Walk(f func(Node) bool) bool {
	return f(e)
}

func (e *Character) String() string     { return "'" + e.Spelling + "'" }
func (e *Character) fullString() string { return e.String() }
func (e *Character) Walk(f func(Node) bool) bool {
	return f(e)
}

func (e *Literal) String() string     { return "\"" + e.Spelling + "\"" }
func (e *Literal) fullString() string { return e.String() }
func (e *Literal) Walk(f func(Node) bool) bool {
	return f(e)
}

func (e *CharClass) String() string     { return e.Spelling }
func (e *CharClass) fullString() string { return e.Spelling }
func (e *CharClass) Walk(f func(Node) bool) bool {
	return f(e)
}

func (e *Name) String() string {
	if e.Variable != nil {
		return e.Variable.Name + ":" + e.Rule.RuleName
	}
	return e.Rule.RuleName
}
func (e *Name) fullString() string { return e.String() }
func (e *Name) Walk(f func(Node) bool) bool {
	return f(e)
}

func (e *Alternate) String() string {
	parts := make([]string, len(e.Children))
	for i, c := range e.Children {
		parts[i] = maybeParenSeq(c)
	}
	return strings.Join(parts, " / ")
}
func (e *Alternate) fullString() string {
	parts := make([]string, len(e.Children))
	for i, c := range e.Children {
		parts[i] = "(" + FullString(c) + ")"
	}
	return strings.Join(parts, " / ")
}
func (e *Alternate) Walk(f func(Node) bool) bool {
	if !f(e) {
		return false
	}
	for _, c := range e.Children {
		if !c.Walk(f) {
			return false
		}
	}
	return true
}

func (e *Sequence) String() string {
	parts := make([]string, len(e.Children))
	for i, c := range e.Children {
		parts[i] = maybeParenAlt(c)
	}
	return strings.Join(parts, " ")
}
func (e *Sequence) fullString() string {
	parts := make([]string, len(e.Children))
	for i, c := range e.Children {
		parts[i] = "(" + FullString(c) + ")"
	}
	return strings.Join(parts, " ")
}
func (e *Sequence) Walk(f func(Node) bool) bool {
	if !f(e) {
		return false
	}
	for _, c := range e.Children {
		if !c.Walk(f) {
			return false
		}
	}
	return true
}

func (e *PeekFor) String() string     { return "&" + maybeParenPrefixArg(e.Element) }
func (e *PeekFor) fullString() string { return "&(" + FullString(e.Element) + ")" }
func (e *PeekFor) Walk(f func(Node) bool) bool {
	return f(e) && e.Element.Walk(f)
}

func (e *PeekNot) String() string     { return "!" + maybeParenPrefixArg(e.Element) }
func (e *PeekNot) fullString() string { return "!(" + FullString(e.Element) + ")" }
func (e *PeekNot) Walk(f func(Node) bool) bool {
	return f(e) && e.Element.Walk(f)
}

func (e *Query) String() string     { return maybeParenPrefixArg(e.Element) + "?" }
func (e *Query) fullString() string { return "(" + FullString(e.Element) + ")?" }
func (e *Query) Walk(f func(Node) bool) bool {
	return f(e) && e.Element.Walk(f)
}

func (e *Star) String() string     { return maybeParenPrefixArg(e.Element) + "*" }
func (e *Star) fullString() string { return "(" + FullString(e.Element) + ")*" }
func (e *Star) Walk(f func(Node) bool) bool {
	return f(e) && e.Element.Walk(f)
}

func (e *Plus) String() string     { return maybeParenPrefixArg(e.Element) + "+" }
func (e *Plus) fullString() string { return "(" + FullString(e.Element) + ")+" }
func (e *Plus) Walk(f func(Node) bool) bool {
	return f(e) && e.Element.Walk(f)
}

func (e *StringTable) String() string     { return "<stringtable>" }
func (e *StringTable) fullString() string { return "<stringtable>" }
func (e *StringTable) Walk(f func(Node) bool) bool {
	return f(e)
}

func (e *Action) String() string     { return "{" + e.Code + "}" }
func (e *Action) fullString() string { return e.String() }
func (e *Action) Walk(f func(Node) bool) bool {
	return f(e)
}

func (e *Predicate) String() string {
	if e.Neg {
		return "!{" + e.Code + "}"
	}
	return "&{" + e.Code + "}"
}
func (e *Predicate) fullString() string { return e.String() }
func (e *Predicate) Walk(f func(Node) bool) bool {
	return f(e)
}

// maybeParenSeq parenthesizes c when printed as an Alternate child,
// i.e. when c is itself a Sequence (lower precedence than juxtaposition
// would otherwise suggest is unnecessary, but matches the teacher's
// convention of always showing Sequence boundaries within a Choice).
func maybeParenSeq(c Node) string {
	if _, ok := c.(*Sequence); ok {
		return "(" + c.String() + ")"
	}
	return c.String()
}

// maybeParenAlt parenthesizes c when printed as a Sequence child and c
// is itself an Alternate, since "/" binds looser than concatenation.
func maybeParenAlt(c Node) string {
	if _, ok := c.(*Alternate); ok {
		return "(" + c.String() + ")"
	}
	return c.String()
}

// maybeParenPrefixArg parenthesizes c when printed as the operand of a
// prefix/postfix operator (&, !, ?, *, +) and c is itself a compound
// node whose own precedence is lower.
func maybeParenPrefixArg(c Node) string {
	switch c.(type) {
	case *Alternate, *Sequence:
		return "(" + c.String() + ")"
	default:
		return c.String()
	}
}
