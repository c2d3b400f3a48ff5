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

// Unescape decodes a raw-string de-escape pass over text (spec.md §3):
// \a \b \e \f \n \r \t \v name a control byte, \0 through \7 begin up
// to three octal digits, \x begins two hex digits, and \<anything
// else> decodes to that literal byte. A lone backslash at the end of
// text decodes to itself. Grounded on original_source/tree.c's
// unescape and mirrored by Escape below, its inverse.
func Unescape(text string) *RawString {
	out := make([]byte, 0, len(text))
	i := 0
	for i < len(text) {
		c := text[i]
		if c != '\\' || i+1 >= len(text) {
			out = append(out, c)
			i++
			continue
		}
		i++ // skip backslash
		e := text[i]
		switch {
		case e >= '0' && e <= '7':
			n := 0
			v := 0
			for n < 3 && i < len(text) && text[i] >= '0' && text[i] <= '7' {
				v = v*8 + int(text[i]-'0')
				i++
				n++
			}
			out = append(out, byte(v))
		case e == 'x' && i+1 < len(text) && isHex(text[i+1]):
			i++
			n := 0
			v := 0
			for n < 2 && i < len(text) && isHex(text[i]) {
				v = v*16 + hexVal(text[i])
				i++
				n++
			}
			out = append(out, byte(v))
		default:
			out = append(out, charset.ResolveEscape(e))
			i++
		}
	}
	return &RawString{Bytes: out}
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// Escape is Unescape's inverse: it renders raw as grammar source text,
// backslash-escaping the bytes that Unescape's named-escape table
// covers plus backslash, single and double quotes, and any
// non-printable byte (as \xHH), leaving every other byte literal.
func Escape(raw *RawString) string {
	var b strings.Builder
	for _, c := range raw.Bytes {
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == '\'':
			b.WriteString(`\'`)
		case c == '"':
			b.WriteString(`\"`)
		default:
			if name, ok := charset.EscapeName(c); ok {
				b.WriteByte('\\')
				b.WriteByte(name)
			} else if c < 0x20 || c >= 0x7f {
				fmt.Fprintf(&b, `\x%02x`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}
