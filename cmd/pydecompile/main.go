package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/go-python/gpython/ast"
	"github.com/peterh/liner"

	"github.com/agenthands/decompyle/pkg/bytecode"
	"github.com/agenthands/decompyle/pkg/compiler/python"
	"github.com/agenthands/decompyle/pkg/decompiler"
)

const historyFile = ".pydecompile_history"

var (
	red   = color.New(color.FgRed, color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: pydecompile [expr|repl] ...")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "expr":
		os.Exit(runExpr(os.Args[2:], os.Stdout, os.Stderr))
	case "repl":
		os.Exit(runRepl())
	default:
		fmt.Println("Unknown command:", os.Args[1])
		os.Exit(1)
	}
}

func runExpr(args []string, stdout, stderr io.Writer) int {
	exprCmd := flag.NewFlagSet("expr", flag.ContinueOnError)
	exprCmd.SetOutput(stderr)
	dis := exprCmd.Bool("dis", false, "Print the instruction listing before the tree")
	if err := exprCmd.Parse(args); err != nil {
		return 1
	}

	if exprCmd.NArg() < 1 {
		fmt.Fprintln(stderr, "Usage: pydecompile expr [-dis] <source>")
		return 1
	}

	if err := process(stdout, strings.Join(exprCmd.Args(), " "), *dis); err != nil {
		fmt.Fprintln(stderr, red(err.Error()))
		return 1
	}
	return 0
}

// process compiles src, optionally lists the instructions, and writes the
// rebuilt tree to w.
func process(w io.Writer, src string, dis bool) error {
	code, err := python.NewCompiler().Compile(src)
	if err != nil {
		return fmt.Errorf("compilation error: %w", err)
	}

	if dis {
		ins, err := bytecode.Disassemble(code.Instructions)
		if err != nil {
			return err
		}
		for _, in := range ins {
			fmt.Fprintln(w, faint(in.String()))
		}
	}

	expr, err := decompiler.Expression(code)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, green(ast.Dump(expr)))
	return nil
}

// historyPath returns the REPL history file, or false when there is no home
// directory to keep it in.
func historyPath() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", false
	}
	return filepath.Join(home, historyFile), true
}

func runRepl() int {
	fmt.Println("pydecompile repl. Type :dis to toggle listings, :quit to exit.")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath, ok := historyPath(); ok {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	dis := false
	for {
		line, err := ln.Prompt(">>> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ":quit":
			return 0
		case ":dis":
			dis = !dis
			fmt.Printf("listings %s\n", map[bool]string{true: "on", false: "off"}[dis])
			continue
		}

		ln.AppendHistory(line)
		if err := process(os.Stdout, line, dis); err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
		}
	}
}
