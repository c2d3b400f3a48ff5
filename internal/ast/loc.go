// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

package ast

import "fmt"

// Loc identifies a location in a file by its line and column numbers.
type Loc struct {
	// File is the name of the input file.
	File string
	// Line is the line number of the location. The first line is 1.
	Line int
	// Col is the 1-based byte column within the line: the first
	// byte on the line is at Col 1.
	Col int
}

// Less returns whether l is earlier in the input than o.
func (l Loc) Less(o Loc) bool {
	if l.Line == o.Line {
		return l.Col < o.Col
	}
	return l.Line < o.Line
}

func (l Loc) String() string { return fmt.Sprintf("%s:%d.%d", l.File, l.Line, l.Col) }

// Located is anything located within the input stream.
type Located interface {
	Begin() Loc
	End() Loc
}
