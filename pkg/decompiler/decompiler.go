// Package decompiler rebuilds a syntax tree from the instruction stream of a
// compiled expression. It walks the stream once, simulating the evaluation
// stack with tree nodes, and fails on the first instruction it does not model.
//
// A Decompiler owns its cursor and stack, so separate code units can be
// decoded concurrently by separate Decompilers.
package decompiler

import (
	"errors"

	"github.com/go-python/gpython/ast"

	"github.com/agenthands/decompyle/pkg/bytecode"
	"github.com/agenthands/decompyle/pkg/opcode"
)

// Decompiler decodes one code unit.
type Decompiler struct {
	code  *bytecode.Code
	r     *bytecode.Reader
	stack Stack
	cur   bytecode.Instruction
}

// New creates a decompiler for code.
func New(code *bytecode.Code) *Decompiler {
	return &Decompiler{code: code}
}

// Decompile runs a decode pass over the whole instruction stream and returns
// the final stack contents, bottom first. A well formed expression yields a
// single *ast.Return. Any error discards the partial tree.
func (d *Decompiler) Decompile() (nodes []ast.Ast, err error) {
	d.r = bytecode.NewReader(d.code.Instructions)
	d.stack = Stack{}
	d.cur = bytecode.Instruction{}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, ErrStackUnderflow) {
				nodes, err = nil, d.fail(e)
				return
			}
			panic(r)
		}
	}()

	for d.r.HasMore() {
		if err := d.step(); err != nil {
			return nil, err
		}
		d.r.Advance()
	}
	return d.stack.Items(), nil
}

// Expression decodes code and returns the expression its trailing return
// yields.
func Expression(code *bytecode.Code) (ast.Expr, error) {
	nodes, err := New(code).Decompile()
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, ErrIncomplete
	}
	ret, ok := nodes[0].(*ast.Return)
	if !ok {
		return nil, ErrIncomplete
	}
	return ret.Value, nil
}

// step decodes the instruction under the cursor and applies its stack effect.
func (d *Decompiler) step() error {
	in, err := d.r.Decode()
	d.cur = in
	if err != nil {
		return d.fail(err)
	}

	var arg Operand
	if in.Op.HasArg() {
		arg, err = d.resolve(in, d.r.Pos()+1)
		if err != nil {
			return d.fail(err)
		}
	}

	node, err := d.dispatch(in.Op, arg)
	if err != nil {
		return err
	}
	if node != nil {
		d.stack.Push(node)
	}
	return nil
}

// dispatch runs the handler for op. Opcodes without a handler are rejected
// with an *UnsupportedError.
func (d *Decompiler) dispatch(op opcode.OpCode, arg Operand) (ast.Ast, error) {
	switch op {
	case opcode.BINARY_POWER:
		return d.binary(ast.Pow)
	case opcode.BINARY_MULTIPLY:
		return d.binary(ast.Mult)
	case opcode.BINARY_DIVIDE, opcode.BINARY_TRUE_DIVIDE:
		return d.binary(ast.Div)
	case opcode.BINARY_FLOOR_DIVIDE:
		return d.binary(ast.FloorDiv)
	case opcode.BINARY_MODULO:
		return d.binary(ast.Modulo)
	case opcode.BINARY_ADD:
		return d.binary(ast.Add)
	case opcode.BINARY_SUBTRACT:
		return d.binary(ast.Sub)
	case opcode.BINARY_LSHIFT:
		return d.binary(ast.LShift)
	case opcode.BINARY_RSHIFT:
		return d.binary(ast.RShift)
	case opcode.BINARY_AND:
		return d.binary(ast.BitAnd)
	case opcode.BINARY_XOR:
		return d.binary(ast.BitXor)
	case opcode.BINARY_OR:
		return d.binary(ast.BitOr)

	case opcode.UNARY_POSITIVE:
		return d.unary(ast.UAdd)
	case opcode.UNARY_NEGATIVE:
		return d.unary(ast.USub)
	case opcode.UNARY_NOT:
		return d.unary(ast.Not)
	case opcode.UNARY_INVERT:
		return d.unary(ast.Invert)

	case opcode.BINARY_SUBSCR:
		return d.subscript()
	case opcode.SLICE_0:
		return d.slice(false, false)
	case opcode.SLICE_1:
		return d.slice(true, false)
	case opcode.SLICE_2:
		return d.slice(false, true)
	case opcode.SLICE_3:
		return d.slice(true, true)

	case opcode.LOAD_CONST:
		return d.literal(arg.Const)
	case opcode.LOAD_NAME, opcode.LOAD_GLOBAL, opcode.LOAD_FAST, opcode.LOAD_DEREF:
		return &ast.Name{Id: ast.Identifier(arg.Name), Ctx: ast.Load}, nil
	case opcode.LOAD_ATTR:
		return d.attribute(arg.Name)

	case opcode.BUILD_TUPLE:
		elts, err := d.popExprs(int(arg.Arg))
		if err != nil {
			return nil, err
		}
		return &ast.Tuple{Elts: elts, Ctx: ast.Load}, nil
	case opcode.BUILD_LIST:
		elts, err := d.popExprs(int(arg.Arg))
		if err != nil {
			return nil, err
		}
		return &ast.List{Elts: elts, Ctx: ast.Load}, nil
	case opcode.BUILD_SET:
		elts, err := d.popExprs(int(arg.Arg))
		if err != nil {
			return nil, err
		}
		return &ast.Set{Elts: elts}, nil
	case opcode.BUILD_MAP:
		// The operand is only a size hint; entries arrive via STORE_MAP.
		return &ast.Dict{}, nil
	case opcode.STORE_MAP:
		return d.storeMap()

	case opcode.CALL_FUNCTION:
		return d.call(arg.Arg, false, false)
	case opcode.CALL_FUNCTION_VAR:
		return d.call(arg.Arg, true, false)
	case opcode.CALL_FUNCTION_KW:
		return d.call(arg.Arg, false, true)
	case opcode.CALL_FUNCTION_VAR_KW:
		return d.call(arg.Arg, true, true)

	case opcode.RETURN_VALUE:
		return d.ret()

	default:
		return nil, &UnsupportedError{Offset: d.cur.Offset, Op: op}
	}
}

func (d *Decompiler) fail(err error) error {
	return &DecodeError{Offset: d.cur.Offset, Op: d.cur.Op, Err: err}
}
