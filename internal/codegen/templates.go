// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

package codegen

// runtimeTemplate is the emitted parser runtime (spec.md §6.3): the
// input/position/thunk-stack state every rule function closes over,
// plus the matchString/matchClass primitives the leaf templates call.
// Grounded on original_source/compile.c's preamble constant, adapted
// from C macros operating on globals into Go methods on a *parser
// receiver, and on spec.md §3's thunk discipline: a (begin, end, run)
// triple recorded on success, fired only once the whole parse
// commits, discarded on backtrack.
var runtimeTemplate = `
type {{.Prefix}}thunk struct {
	begin, end int
	run        func(text []byte)
}

type {{.Prefix}}parser struct {
	input  []byte
	pos    int
	thunks []{{.Prefix}}thunk
}

func {{.Prefix}}NewParser(input []byte) *{{.Prefix}}parser {
	return &{{.Prefix}}parser{input: input}
}

// text returns the matched bytes between begin and end.
func (p *{{.Prefix}}parser) text(begin, end int) []byte { return p.input[begin:end] }

// commit fires every recorded thunk in order and clears the stack. It
// must only be called once the top-level rule has fully matched.
func (p *{{.Prefix}}parser) commit() {
	for _, t := range p.thunks {
		t.run(p.text(t.begin, t.end))
	}
	p.thunks = nil
}

func (p *{{.Prefix}}parser) matchString(s string) bool {
	if p.pos+len(s) > len(p.input) || string(p.input[p.pos:p.pos+len(s)]) != s {
		return false
	}
	p.pos += len(s)
	return true
}

func (p *{{.Prefix}}parser) matchClass(bits [32]byte, c byte) bool {
	return bits[c>>3]&(1<<(c&7)) != 0
}

// hasPrefix reports whether s occurs at the current position, without
// advancing it. Used by the stringtable dispatch to probe every
// candidate before committing to the longest match.
func (p *{{.Prefix}}parser) hasPrefix(s string) bool {
	return p.pos+len(s) <= len(p.input) && string(p.input[p.pos:p.pos+len(s)]) == s
}
`

// ruleTemplate wraps a rule's generated body in its function, with
// the save/restore/fail-label prologue omitted for "safe" rules whose
// top-level expression is a Query or Star and so can never fail
// (spec.md §4.6's safe-rule optimization, grounded on
// original_source/compile.c's Rule_compile_c2).
var ruleTemplate = `
func (p *{{.State.Prefix}}parser) {{.State.Prefix}}rule_{{.State.Rule.RuleName}}() bool {
	{{if not .State.Rule.Safe -}}
	save0 := p.pos
	nthunk0 := len(p.thunks)
	{{end -}}
	{{if .State.Rule.Variables -}}
	var vals [{{len .State.Rule.Variables}}][]byte
	{{end -}}
	{{.Body}}
	return true
	{{if not .State.Rule.Safe -}}
fail0:
	p.pos = save0
	p.thunks = p.thunks[:nthunk0]
	return false
	{{end -}}
}
`

var dotTemplate = `// .
if p.pos >= len(p.input) {
	goto {{.Fail}}
}
p.pos++
`

var characterTemplate = `// {{.Node.String}}
if p.pos >= len(p.input) || p.input[p.pos] != {{byteLit .Node.Value}} {
	goto {{.Fail}}
}
p.pos++
`

var literalTemplate = `// {{.Node.String}}
if !p.matchString({{quote .Node.Value.String}}) {
	goto {{.Fail}}
}
`

var charClassTemplate = `// {{.Node.String}}
if p.pos >= len(p.input) || !p.matchClass({{bitsLit .Node.Bits}}, p.input[p.pos]) {
	goto {{.Fail}}
}
p.pos++
`

// nameTemplate calls the referenced rule; if it has a bound Variable,
// a thunk records the matched text into that variable's slot in the
// owning rule's vals array, fired only once the enclosing rule's
// whole parse commits.
var nameTemplate = `// {{.Node.String}}
{{if .Node.Variable -}}
{{$begin := id "begin" -}}
{{$begin}} := p.pos
if !p.{{.State.Prefix}}rule_{{.Node.Rule.RuleName}}() {
	goto {{.Fail}}
}
p.thunks = append(p.thunks, {{.State.Prefix}}thunk{begin: {{$begin}}, end: p.pos, run: func(text []byte) { vals[{{.Node.Variable.Offset}}] = text }})
{{else -}}
if !p.{{.State.Prefix}}rule_{{.Node.Rule.RuleName}}() {
	goto {{.Fail}}
}
{{end -}}
`

// alternateTemplate is ordered choice: try each child in order,
// restoring position (and discarding any thunks recorded by the
// failed attempt) before falling through to the next; only the final
// child's failure reaches the Alternate's own fail label.
var alternateTemplate = `// {{.Node.String}}
{{$pos0 := id "pos" -}}
{{$nthunk0 := id "nthunk" -}}
{{$ok := id "ok" -}}
{{$pos0}} := p.pos
{{$nthunk0}} := len(p.thunks)
{{range $i, $child := .Node.Children -}}
{{$fail := id "fail" -}}
{{gen $.State $child $fail}}
goto {{$ok}}
{{$fail}}:
p.pos = {{$pos0}}
p.thunks = p.thunks[:{{$nthunk0}}]
{{if last $i $.Node.Children -}}
goto {{$.Fail}}
{{end -}}
{{end -}}
{{$ok}}:
`

var sequenceTemplate = `// {{.Node.String}}
{{range .Node.Children -}}
{{gen $.State . $.Fail}}
{{end -}}
`

var peekForTemplate = `// {{.Node.String}}
{{$pos0 := id "pos" -}}
{{$nthunk0 := id "nthunk" -}}
{{$pos0}} := p.pos
{{$nthunk0}} := len(p.thunks)
{{gen .State .Node.Element $.Fail}}
p.pos = {{$pos0}}
p.thunks = p.thunks[:{{$nthunk0}}]
`

var peekNotTemplate = `// {{.Node.String}}
{{$pos0 := id "pos" -}}
{{$nthunk0 := id "nthunk" -}}
{{$ok := id "ok" -}}
{{$pos0}} := p.pos
{{$nthunk0}} := len(p.thunks)
{{gen .State .Node.Element $ok}}
p.pos = {{$pos0}}
p.thunks = p.thunks[:{{$nthunk0}}]
goto {{.Fail}}
{{$ok}}:
p.pos = {{$pos0}}
p.thunks = p.thunks[:{{$nthunk0}}]
`

var queryTemplate = `// {{.Node.String}}
{{$pos0 := id "pos" -}}
{{$nthunk0 := id "nthunk" -}}
{{$skip := id "skip" -}}
{{$pos0}} := p.pos
{{$nthunk0}} := len(p.thunks)
{{gen .State .Node.Element $skip}}
goto {{$skip}}done
{{$skip}}:
p.pos = {{$pos0}}
p.thunks = p.thunks[:{{$nthunk0}}]
{{$skip}}done:
`

var starTemplate = `// {{.Node.String}}
{{$loop := id "loop" -}}
{{$pos0 := id "pos" -}}
{{$nthunk0 := id "nthunk" -}}
{{$done := id "done" -}}
{{$loop}}:
{{$pos0}} := p.pos
{{$nthunk0}} := len(p.thunks)
{{gen .State .Node.Element $done}}
goto {{$loop}}
{{$done}}:
p.pos = {{$pos0}}
p.thunks = p.thunks[:{{$nthunk0}}]
`

var plusTemplate = `// {{.Node.String}}
{{gen .State .Node.Element $.Fail}}
{{$loop := id "loop" -}}
{{$pos0 := id "pos" -}}
{{$nthunk0 := id "nthunk" -}}
{{$done := id "done" -}}
{{$loop}}:
{{$pos0}} := p.pos
{{$nthunk0}} := len(p.thunks)
{{gen .State .Node.Element $done}}
goto {{$loop}}
{{$done}}:
p.pos = {{$pos0}}
p.thunks = p.thunks[:{{$nthunk0}}]
`

// actionTemplate records a thunk that runs the opaque action code
// over the span the action node was reached at (an Action never
// fails). spec.md §3: "an Action binds no new span of its own; $$ (if
// present) refers to the rule's own eventual return span", so begin
// and end are both the current position. Every variable captured
// anywhere in the owning rule is passed into the code as a named
// parameter of an immediately-invoked func literal, grounded on the
// teacher's own actionTemplate (gen.go), which passes every rule
// label the same way rather than relying on free variables in scope —
// this also sidesteps Go's "declared and not used" check for a
// variable binding the action body never happens to reference.
var actionTemplate = `// action {{.Node.Name}}
p.thunks = append(p.thunks, {{.State.Prefix}}thunk{begin: p.pos, end: p.pos, run: func(text []byte) {
	func(
		{{range .State.Rule.Variables -}}
		{{.Name}} []byte,
		{{end -}}
	) {
		{{.Node.Code}}
	}(
		{{range .State.Rule.Variables -}}
		vals[{{.Offset}}],
		{{end -}}
	)
}})
`

// predicateTemplate evaluates its guard immediately, not as a thunk:
// spec.md §3 distinguishes Predicate from Action precisely because a
// predicate's truth value can gate whether the surrounding match
// succeeds at all. Variables are passed in the same way actionTemplate
// passes them, grounded on the teacher's predCodeTemplate (gen.go).
var predicateTemplate = `// predicate
if {{if not .Node.Neg}}!{{end}}func(
	{{range .State.Rule.Variables -}}
	{{.Name}} []byte,
	{{end -}}
) bool {
	return {{.Node.Code}}
}(
	{{range .State.Rule.Variables -}}
	vals[{{.Offset}}],
	{{end -}}
) {
	goto {{.Fail}}
}
`

// stringTableTemplate lowers a synthesized run of string alternatives
// to a longest-match probe (spec.md §4.7), simplified from the C
// original's recursive per-offset StringArray/raccept/rmarker trie
// (which dispatches on successive bytes via nested labels) to a
// single flat scan: every candidate is probed non-destructively via
// hasPrefix, the longest that matches wins, and position only
// advances once, after the winner is chosen. This preserves the
// original's longest-match-wins semantics (the reason peg/leg
// introduced StringTable in the first place: a set of literal
// alternatives like "if"/"ifdef" must accept the longest one that
// fits, not simply the first declared) without needing its
// byte-at-a-time label dispatch. A folded-in Class/Character/Dot
// contribution (Node.Bits, spec.md §4.3) is tested the same way a
// one-byte String would be: it only ever wins when no longer string
// also matches at this position.
var stringTableTemplate = `// stringtable
{
	{{$best := id "best" -}}
	{{$best}} := -1
	{{if .Node.Bits -}}
	if p.pos < len(p.input) && p.matchClass({{bitsLit (deref .Node.Bits)}}, p.input[p.pos]) {
		{{$best}} = 1
	}
	{{end -}}
	{{range .Node.Value.Strings -}}
	if n := {{len .Bytes}}; n > {{$best}} && p.hasPrefix({{quote .String}}) {
		{{$best}} = n
	}
	{{end -}}
	{{if .Node.EmptyString -}}
	if {{$best}} < 0 {
		{{$best}} = 0
	}
	{{end -}}
	if {{$best}} < 0 {
		goto {{.Fail}}
	}
	p.pos += {{$best}}
}
`
