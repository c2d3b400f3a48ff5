// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

package ast

import (
	"fmt"
	"sort"
)

// Error is an error tied to a location in the grammar source.
type Error struct {
	Loc Loc
	Msg string
}

func (e Error) Error() string { return fmt.Sprintf("%s: %s", e.Loc, e.Msg) }

// Err builds an Error at loc with a formatted message.
func Err(loc Loc, format string, args ...interface{}) Error {
	return Error{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

// Errors implements error, aggregating every Error encountered while
// building or checking a Grammar.
type Errors struct {
	Errs []Error
}

// Add appends a formatted Error at loc.
func (e *Errors) Add(loc Loc, format string, args ...interface{}) {
	e.Errs = append(e.Errs, Err(loc, format, args...))
}

// Ret returns e as an error sorted by source location, or nil if e
// contains no errors.
func (e *Errors) Ret() error {
	if len(e.Errs) == 0 {
		return nil
	}
	sort.Slice(e.Errs, func(i, j int) bool { return e.Errs[i].Loc.Less(e.Errs[j].Loc) })
	return e
}

func (e *Errors) Error() string {
	var s string
	for i, err := range e.Errs {
		if i > 0 {
			s += "\n"
		}
		s += err.Error()
	}
	return s
}
