// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

package frontend

import (
	"fmt"

	"github.com/pegc/pegc/internal/ast"
)

// Parse parses a `.peg` grammar from src (attributed to file in
// diagnostics) and returns its *ast.Grammar, built through
// ast.Builder exactly as spec.md §6.1 describes: one Make* call per
// recognized construct, Stack-free here since recursive descent's own
// call stack plays that role.
//
// Grammar syntax, classic peg/leg style:
//
//	Grammar  <- Prelude? Rule+
//	Rule     <- Ident '<-' Alternate
//	Alternate<- Sequence ('/' Sequence)*
//	Sequence <- Prefix*
//	Prefix   <- ('&' | '!') Suffix | '&{' Code '}' | '!{' Code '}' | Suffix
//	Suffix   <- Primary ('?' | '*' | '+')?
//	Primary  <- (Ident ':')? Ident !'<-'
//	          | '(' Alternate ')'
//	          | String | Class | '.' | Action
func Parse(file string, src []byte) (*ast.Grammar, error) {
	p := &parser{lex: newLexer(file, src), b: ast.NewBuilder()}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tPrelude {
		p.b.Grammar.Prelude = p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	for p.tok.kind != tEOF {
		if err := p.parseRule(); err != nil {
			return nil, err
		}
	}
	return p.b.Grammar, nil
}

type parser struct {
	lex *lexer
	tok token
	b   *ast.Builder
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func toASTLoc(l loc) ast.Loc { return ast.Loc{File: l.File, Line: l.Line, Col: l.Col} }

func (p *parser) expect(k tokenKind, what string) (token, error) {
	if p.tok.kind != k {
		return token{}, fmt.Errorf("%s: expected %s", toASTLoc(p.tok.loc), what)
	}
	t := p.tok
	return t, p.advance()
}

func (p *parser) parseRule() error {
	name, err := p.expect(tIdent, "rule name")
	if err != nil {
		return err
	}
	if _, err := p.expect(tArrow, `"<-"`); err != nil {
		return err
	}
	r := p.b.FindRule(name.text, toASTLoc(name.loc))
	p.b.BeginRule(r)
	expr, err := p.parseAlternate()
	if err != nil {
		return err
	}
	p.b.SetExpression(r, expr)
	return nil
}

func (p *parser) parseAlternate() (ast.Node, error) {
	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tSlash {
		return first, nil
	}
	alt := ast.MakeAlternate(first)
	for p.tok.kind == tSlash {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		alt = ast.AlternateAppend(alt, next)
	}
	return alt, nil
}

func (p *parser) parseSequence() (ast.Node, error) {
	var seq ast.Node
	for isPrefixStart(p.tok.kind) {
		if p.tok.kind == tIdent {
			// Primary's !'<-': an Ident followed by "<-" starts the next rule.
			saved := *p.lex
			t, err := p.lex.next()
			*p.lex = saved
			if err == nil && t.kind == tArrow {
				break
			}
		}
		e, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		if seq == nil {
			seq = e
		} else {
			seq = ast.SequenceAppend(seq, e)
		}
	}
	if seq == nil {
		return nil, fmt.Errorf("%s: expected an expression", toASTLoc(p.tok.loc))
	}
	return seq, nil
}

func isPrefixStart(k tokenKind) bool {
	switch k {
	case tIdent, tLParen, tString, tClass, tDot, tAction, tAmp, tBang, tPredCode:
		return true
	default:
		return false
	}
}

func (p *parser) parsePrefix() (ast.Node, error) {
	switch p.tok.kind {
	case tPredCode:
		t := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.b.MakePredicate(t.text, t.neg, toASTLoc(t.loc)), nil
	case tAmp:
		l := toASTLoc(p.tok.loc)
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseSuffix()
		if err != nil {
			return nil, err
		}
		return p.b.MakePeekFor(e, l), nil
	case tBang:
		l := toASTLoc(p.tok.loc)
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseSuffix()
		if err != nil {
			return nil, err
		}
		return p.b.MakePeekNot(e, l), nil
	default:
		return p.parseSuffix()
	}
}

func (p *parser) parseSuffix() (ast.Node, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	l := toASTLoc(p.tok.loc)
	switch p.tok.kind {
	case tQuestion:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.b.MakeQuery(e, l), nil
	case tStar:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.b.MakeStar(e, l), nil
	case tPlus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.b.MakePlus(e, l), nil
	default:
		return e, nil
	}
}

func (p *parser) parsePrimary() (ast.Node, error) {
	l := toASTLoc(p.tok.loc)
	switch p.tok.kind {
	case tLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseAlternate()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tRParen, `")"`); err != nil {
			return nil, err
		}
		return e, nil
	case tString:
		t := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.b.MakeString(t.text, l), nil
	case tClass:
		t := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.b.MakeClass("["+t.text+"]", l), nil
	case tDot:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.b.MakeDot(l), nil
	case tAction:
		t := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.b.MakeAction(t.text, l), nil
	case tIdent:
		return p.parseIdentOrBinding(l)
	default:
		return nil, fmt.Errorf("%s: expected an expression", l)
	}
}

// parseIdentOrBinding parses either a bare rule reference or a
// "var:rule" binding (spec.md §3: variable capture is a property of
// the Name node referencing the bound rule).
func (p *parser) parseIdentOrBinding(l ast.Loc) (ast.Node, error) {
	first := p.tok.text
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tColon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		ruleTok, err := p.expect(tIdent, "rule name after ':'")
		if err != nil {
			return nil, err
		}
		r := p.b.FindRule(ruleTok.text, l)
		v := p.b.MakeVariable(first)
		n := p.b.MakeName(r, l)
		n.Variable = v
		return n, nil
	}
	r := p.b.FindRule(first, l)
	return p.b.MakeName(r, l), nil
}
