package decompiler_test

import (
	"errors"
	"testing"

	"github.com/go-python/gpython/py"

	"github.com/agenthands/decompyle/pkg/bytecode"
	"github.com/agenthands/decompyle/pkg/decompiler"
	"github.com/agenthands/decompyle/pkg/opcode"
)

func FuzzDecompile(f *testing.F) {
	f.Add(assemble(
		instr{opcode.LOAD_CONST, 0},
		instr{opcode.LOAD_CONST, 1},
		instr{op: opcode.BINARY_ADD},
		instr{op: opcode.RETURN_VALUE},
	))
	f.Add(assemble(
		instr{opcode.BUILD_MAP, 1},
		instr{opcode.LOAD_NAME, 0},
		instr{opcode.LOAD_CONST, 1},
		instr{op: opcode.STORE_MAP},
		instr{op: opcode.RETURN_VALUE},
	))
	f.Add([]byte{byte(opcode.EXTENDED_ARG), 1, 0, byte(opcode.LOAD_CONST), 0, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		code := &bytecode.Code{
			Instructions: data,
			Consts:       []py.Object{py.Int(42), py.String("k"), py.None},
			Names:        []string{"a", "b"},
			Varnames:     []string{"x"},
			Cellvars:     []string{"c"},
			Freevars:     []string{"f"},
		}

		// Malformed streams must come back as errors, never panics.
		nodes, err := decompiler.New(code).Decompile()
		if err != nil {
			if nodes != nil {
				t.Fatalf("nodes returned alongside error: %v", err)
			}
			if !errors.Is(err, decompiler.ErrDecode) && !errors.Is(err, decompiler.ErrUnsupported) {
				t.Fatalf("unclassified error: %v", err)
			}
		}
	})
}
