// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

// Package diag collects non-fatal warnings produced while checking or
// optimizing a grammar (spec.md §7's diagnostics channel, distinct
// from the hard ast.Errors aggregate returned by Check): unreachable
// alternatives, possible left recursion, unused rules.
package diag

import (
	"fmt"
	"io"

	"github.com/pegc/pegc/internal/ast"
)

// Warn reports a non-fatal diagnostic at loc. It is the common
// signature package optimize and package analyze both accept as their
// warn callback, so a single diag.Sink can collect warnings from
// every pass that produces them.
type Warn func(loc ast.Loc, format string, args ...interface{})

// Warning is one diagnostic tied to a source location.
type Warning struct {
	Loc     ast.Loc
	Message string
}

func (w Warning) String() string { return fmt.Sprintf("%s: warning: %s", w.Loc, w.Message) }

// Sink accumulates Warnings in the order they are reported. The zero
// Sink is ready to use.
type Sink struct {
	Warnings []Warning
}

// Warnf appends a formatted warning at loc.
func (s *Sink) Warnf(loc ast.Loc, format string, args ...interface{}) {
	s.Warnings = append(s.Warnings, Warning{Loc: loc, Message: fmt.Sprintf(format, args...)})
}

// Warn is Warnf's signature as a plain func value, for passing to
// package optimize/analyze as their warn callback.
func (s *Sink) Warn(loc ast.Loc, format string, args ...interface{}) { s.Warnf(loc, format, args...) }

// Empty reports whether no warnings were recorded.
func (s *Sink) Empty() bool { return len(s.Warnings) == 0 }

// Flush writes every warning to w, one per line, in report order.
func (s *Sink) Flush(w io.Writer) error {
	for _, warning := range s.Warnings {
		if _, err := fmt.Fprintln(w, warning.String()); err != nil {
			return err
		}
	}
	return nil
}
