package python

import (
	"errors"
	"testing"

	"github.com/go-python/gpython/py"

	"github.com/agenthands/decompyle/pkg/bytecode"
	"github.com/agenthands/decompyle/pkg/opcode"
)

func ops(t *testing.T, code *bytecode.Code) []bytecode.Instruction {
	t.Helper()
	ins, err := bytecode.Disassemble(code.Instructions)
	if err != nil {
		t.Fatalf("Disassemble failed: %v", err)
	}
	return ins
}

func expectOps(t *testing.T, code *bytecode.Code, want ...bytecode.Instruction) {
	t.Helper()
	got := ops(t, code)
	if len(got) != len(want) {
		t.Fatalf("expected %d instructions, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i].Op != want[i].Op || got[i].Arg != want[i].Arg {
			t.Errorf("instr %d: expected %s %d, got %s %d", i, want[i].Op, want[i].Arg, got[i].Op, got[i].Arg)
		}
	}
}

func TestCompilerComprehensive(t *testing.T) {
	c := NewCompiler()

	t.Run("BasicArithmetic", func(t *testing.T) {
		code, err := c.Compile("a + 2 * a")
		if err != nil {
			t.Fatal(err)
		}
		expectOps(t, code,
			bytecode.Instruction{Op: opcode.LOAD_NAME, Arg: 0},
			bytecode.Instruction{Op: opcode.LOAD_CONST, Arg: 0},
			bytecode.Instruction{Op: opcode.LOAD_NAME, Arg: 0},
			bytecode.Instruction{Op: opcode.BINARY_MULTIPLY},
			bytecode.Instruction{Op: opcode.BINARY_ADD},
			bytecode.Instruction{Op: opcode.RETURN_VALUE},
		)
		if len(code.Names) != 1 || code.Names[0] != "a" {
			t.Errorf("expected names [a], got %v", code.Names)
		}
	})

	t.Run("TrueDivision", func(t *testing.T) {
		code, err := c.Compile("a / b")
		if err != nil {
			t.Fatal(err)
		}
		if got := ops(t, code)[2].Op; got != opcode.BINARY_TRUE_DIVIDE {
			t.Errorf("expected BINARY_TRUE_DIVIDE, got %s", got)
		}
	})

	t.Run("Slices", func(t *testing.T) {
		tests := map[string]opcode.OpCode{
			"s[:]":   opcode.SLICE_0,
			"s[1:]":  opcode.SLICE_1,
			"s[:2]":  opcode.SLICE_2,
			"s[1:2]": opcode.SLICE_3,
			"s[i]":   opcode.BINARY_SUBSCR,
		}
		for src, want := range tests {
			code, err := c.Compile(src)
			if err != nil {
				t.Fatalf("%s: %v", src, err)
			}
			ins := ops(t, code)
			if got := ins[len(ins)-2].Op; got != want {
				t.Errorf("%s: expected %s, got %s", src, want, got)
			}
		}
	})

	t.Run("Dict", func(t *testing.T) {
		code, err := c.Compile("{'k': v}")
		if err != nil {
			t.Fatal(err)
		}
		expectOps(t, code,
			bytecode.Instruction{Op: opcode.BUILD_MAP, Arg: 1},
			bytecode.Instruction{Op: opcode.LOAD_NAME, Arg: 0},
			bytecode.Instruction{Op: opcode.LOAD_CONST, Arg: 0},
			bytecode.Instruction{Op: opcode.STORE_MAP},
			bytecode.Instruction{Op: opcode.RETURN_VALUE},
		)
	})

	t.Run("CallArgc", func(t *testing.T) {
		code, err := c.Compile("f(a, b, k=1, *rest)")
		if err != nil {
			t.Fatal(err)
		}
		ins := ops(t, code)
		call := ins[len(ins)-2]
		if call.Op != opcode.CALL_FUNCTION_VAR || call.Arg != 2|1<<8 {
			t.Errorf("expected CALL_FUNCTION_VAR %d, got %v", 2|1<<8, call)
		}
		if code.Consts[0] != py.String("k") {
			t.Errorf("keyword name should be a string constant, got %v", code.Consts[0])
		}
	})

	t.Run("Deduplication", func(t *testing.T) {
		code, err := c.Compile("('hello', 'hello', x, x, 1, 1.0, True)")
		if err != nil {
			t.Fatal(err)
		}
		if len(code.Consts) != 4 {
			t.Errorf("expected 4 constants, got %v", code.Consts)
		}
		if len(code.Names) != 1 {
			t.Errorf("expected 1 name, got %v", code.Names)
		}
	})

	t.Run("Reset", func(t *testing.T) {
		if _, err := c.Compile("a + b + c"); err != nil {
			t.Fatal(err)
		}
		code, err := c.Compile("z")
		if err != nil {
			t.Fatal(err)
		}
		if len(code.Names) != 1 || len(code.Consts) != 0 {
			t.Errorf("tables leaked from previous compile: %v %v", code.Names, code.Consts)
		}
	})

	t.Run("Errors", func(t *testing.T) {
		badSrcs := []string{
			"a < b",
			"a and b",
			"lambda: 1",
			"[x for x in y]",
			"s[1:2:3]",
			"a if b else c",
		}
		for _, s := range badSrcs {
			_, err := c.Compile(s)
			if !errors.Is(err, ErrUnsupported) {
				t.Errorf("expected ErrUnsupported for %s, got %v", s, err)
			}
		}
	})

	t.Run("ParseError", func(t *testing.T) {
		if _, err := c.Compile("1 +"); err == nil || errors.Is(err, ErrUnsupported) {
			t.Errorf("expected a parse error, got %v", err)
		}
	})
}
