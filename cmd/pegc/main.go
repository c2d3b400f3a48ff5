// Copyright 2017 The Peggy Authors
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd.

// Command pegc reads a `.peg` grammar and generates a Go parser for
// it, or checks a grammar for errors, or pretty-prints it back out.
// Grounded on the teacher's main.go, with its flag-package CLI
// replaced by cobra subcommands per the ambient-stack expansion
// (SPEC_FULL.md): generate/check/print instead of one flag-selected
// mode.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pegc/pegc/internal/analyze"
	"github.com/pegc/pegc/internal/ast"
	"github.com/pegc/pegc/internal/codegen"
	"github.com/pegc/pegc/internal/diag"
	"github.com/pegc/pegc/internal/frontend"
	"github.com/pegc/pegc/internal/optimize"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pegc",
		Short: "pegc compiles PEG grammars to Go parsers",
	}
	root.AddCommand(newGenerateCmd(), newCheckCmd(), newPrintCmd())
	return root
}

func readGrammar(args []string) (string, []byte, error) {
	file := "<stdin>"
	if len(args) > 0 {
		file = args[0]
		b, err := os.ReadFile(file)
		return file, b, err
	}
	b, err := io.ReadAll(os.Stdin)
	return file, b, err
}

func loadAndCheck(args []string, warn diag.Warn) (*ast.Grammar, error) {
	file, src, err := readGrammar(args)
	if err != nil {
		return nil, err
	}
	g, err := frontend.Parse(file, src)
	if err != nil {
		return nil, err
	}
	if err := ast.Check(g, ast.Warn(warn)); err != nil {
		return nil, err
	}
	optimize.Optimize(g, optimize.Warn(warn))
	analyze.Analyze(g, analyze.Warn(warn))
	return g, nil
}

func newGenerateCmd() *cobra.Command {
	var out, prefix, pkg string
	var emitRuntime bool
	cmd := &cobra.Command{
		Use:   "generate [grammar.peg]",
		Short: "generate a Go parser from a grammar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sink diag.Sink
			g, err := loadAndCheck(args, sink.Warn)
			if err != nil {
				return err
			}
			sink.Flush(os.Stderr)

			w := io.Writer(os.Stdout)
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			cfg := codegen.Config{Prefix: prefix, PackageName: pkg, EmitRuntime: emitRuntime}
			return cfg.Generate(w, g)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file path (default stdout)")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "_", "identifier prefix for generated names")
	cmd.Flags().StringVar(&pkg, "package", "main", "package clause for the generated file")
	cmd.Flags().BoolVar(&emitRuntime, "runtime", true, "emit the parser runtime alongside the rule functions")
	return cmd
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [grammar.peg]",
		Short: "check a grammar for errors, reporting warnings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sink diag.Sink
			_, err := loadAndCheck(args, sink.Warn)
			sink.Flush(os.Stderr)
			return err
		},
	}
	return cmd
}

func newPrintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print [grammar.peg]",
		Short: "parse a grammar and print it back out, unoptimized",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, src, err := readGrammar(args)
			if err != nil {
				return err
			}
			g, err := frontend.Parse(file, src)
			if err != nil {
				return err
			}
			for _, r := range g.Rules {
				if r.Expr == nil {
					continue
				}
				fmt.Printf("%s <- %s\n", r.RuleName, r.Expr.String())
			}
			return nil
		},
	}
	return cmd
}
