package decompiler

import (
	"testing"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/py"

	"github.com/agenthands/decompyle/pkg/bytecode"
	"github.com/agenthands/decompyle/pkg/opcode"
)

func num(i int) *ast.Num { return &ast.Num{N: py.Int(i)} }

func TestStackPopOrder(t *testing.T) {
	var s Stack
	for i := 0; i < 5; i++ {
		s.Push(num(i))
	}

	got := s.Pop(3)
	if len(got) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(got))
	}
	for i, n := range got {
		if n.(*ast.Num).N != py.Int(i+2) {
			t.Errorf("position %d: expected %d, got %v", i, i+2, n.(*ast.Num).N)
		}
	}
	if s.Len() != 2 {
		t.Errorf("expected depth 2, got %d", s.Len())
	}

	if got := s.Pop(0); len(got) != 0 || s.Len() != 2 {
		t.Errorf("Pop(0) should be a no-op, got %v (depth %d)", got, s.Len())
	}

	items := s.Items()
	items[0] = nil
	if s.Items()[0] == nil {
		t.Errorf("Items should return a copy")
	}
}

func TestStackUnderflow(t *testing.T) {
	tests := []struct {
		depth, count int
	}{
		{0, 1},
		{2, 3},
		{2, -1},
	}

	for _, tt := range tests {
		func() {
			defer func() {
				if r := recover(); r != ErrStackUnderflow {
					t.Errorf("Pop(%d) at depth %d: expected ErrStackUnderflow panic, got %v", tt.count, tt.depth, r)
				}
			}()

			var s Stack
			for i := 0; i < tt.depth; i++ {
				s.Push(num(i))
			}
			s.Pop(tt.count)
		}()
	}
}

func TestPassExhaustsStream(t *testing.T) {
	var a bytecode.Assembler
	a.OpArg(opcode.LOAD_CONST, 0)
	a.OpArg(opcode.LOAD_CONST, 1)
	a.Op(opcode.BINARY_ADD)
	a.Op(opcode.RETURN_VALUE)

	d := New(&bytecode.Code{Instructions: a.Bytes(), Consts: []py.Object{py.Int(2), py.Int(3)}})
	nodes, err := d.Decompile()
	if err != nil {
		t.Fatalf("Decompile failed: %v", err)
	}
	if d.r.HasMore() {
		t.Errorf("reader should be exhausted after the pass")
	}
	if d.stack.Len() != 1 {
		t.Errorf("only the return statement should remain, depth %d", d.stack.Len())
	}
	if _, ok := nodes[0].(*ast.Return); !ok {
		t.Errorf("expected *ast.Return, got %T", nodes[0])
	}
}

func TestResolveOperands(t *testing.T) {
	d := New(&bytecode.Code{
		Consts:   []py.Object{py.String("c")},
		Names:    []string{"n"},
		Varnames: []string{"v"},
		Cellvars: []string{"cell"},
		Freevars: []string{"free"},
	})

	tests := []struct {
		op   opcode.OpCode
		arg  uint32
		want Operand
	}{
		{opcode.LOAD_CONST, 0, Operand{Class: opcode.Const, Const: py.String("c")}},
		{opcode.LOAD_NAME, 0, Operand{Class: opcode.Name, Name: "n"}},
		{opcode.LOAD_FAST, 0, Operand{Class: opcode.Local, Name: "v"}},
		{opcode.LOAD_DEREF, 0, Operand{Class: opcode.Free, Name: "cell"}},
		{opcode.LOAD_DEREF, 1, Operand{Class: opcode.Free, Arg: 1, Name: "free"}},
		{opcode.JUMP_FORWARD, 4, Operand{Class: opcode.JumpRel, Arg: 4, Target: 14}},
		{opcode.COMPARE_OP, 2, Operand{Class: opcode.Compare, Arg: 2}},
		{opcode.BUILD_LIST, 3, Operand{Class: opcode.Raw, Arg: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.op.Name(), func(t *testing.T) {
			in := bytecode.Instruction{Offset: 7, Op: tt.op, Arg: tt.arg}
			got, err := d.resolve(in, 10)
			if err != nil {
				t.Fatalf("resolve failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
