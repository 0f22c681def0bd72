// Package python compiles Python expressions into the instruction set read by
// the decompiler. It covers exactly the constructs the decompiler rebuilds.
package python

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"

	"github.com/agenthands/decompyle/pkg/bytecode"
	"github.com/agenthands/decompyle/pkg/opcode"
)

var ErrUnsupported = errors.New("python: unsupported expression")

var binaryOps = map[ast.OperatorNumber]opcode.OpCode{
	ast.Add:      opcode.BINARY_ADD,
	ast.Sub:      opcode.BINARY_SUBTRACT,
	ast.Mult:     opcode.BINARY_MULTIPLY,
	ast.Div:      opcode.BINARY_TRUE_DIVIDE,
	ast.FloorDiv: opcode.BINARY_FLOOR_DIVIDE,
	ast.Modulo:   opcode.BINARY_MODULO,
	ast.Pow:      opcode.BINARY_POWER,
	ast.LShift:   opcode.BINARY_LSHIFT,
	ast.RShift:   opcode.BINARY_RSHIFT,
	ast.BitAnd:   opcode.BINARY_AND,
	ast.BitXor:   opcode.BINARY_XOR,
	ast.BitOr:    opcode.BINARY_OR,
}

var unaryOps = map[ast.UnaryOpNumber]opcode.OpCode{
	ast.UAdd:   opcode.UNARY_POSITIVE,
	ast.USub:   opcode.UNARY_NEGATIVE,
	ast.Not:    opcode.UNARY_NOT,
	ast.Invert: opcode.UNARY_INVERT,
}

var sliceOps = [2][2]opcode.OpCode{
	{opcode.SLICE_0, opcode.SLICE_2},
	{opcode.SLICE_1, opcode.SLICE_3},
}

type Compiler struct {
	asm       bytecode.Assembler
	consts    []py.Object
	names     []string
	nameIndex map[string]uint32
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile parses src as a single expression and compiles it into a code unit
// that evaluates the expression and returns it.
func (c *Compiler) Compile(src string) (*bytecode.Code, error) {
	mod, err := parser.Parse(strings.NewReader(src), "<string>", py.EvalMode)
	if err != nil {
		return nil, fmt.Errorf("python parse error: %w", err)
	}

	expr, ok := mod.(*ast.Expression)
	if !ok {
		return nil, fmt.Errorf("expected *ast.Expression, got %T", mod)
	}
	return c.CompileExpr(expr.Body)
}

// CompileExpr compiles an already parsed expression.
func (c *Compiler) CompileExpr(expr ast.Expr) (*bytecode.Code, error) {
	c.asm.Reset()
	c.consts = nil
	c.names = nil
	c.nameIndex = make(map[string]uint32)

	if err := c.emitExpr(expr); err != nil {
		return nil, err
	}
	c.asm.Op(opcode.RETURN_VALUE)

	return &bytecode.Code{
		Instructions: append([]byte(nil), c.asm.Bytes()...),
		Consts:       c.consts,
		Names:        c.names,
	}, nil
}

func (c *Compiler) addConstant(v py.Object) uint32 {
	// Bytes are not comparable; every bytes literal gets its own slot.
	if _, ok := v.(py.Bytes); !ok {
		for i, existing := range c.consts {
			if existing == v {
				return uint32(i)
			}
		}
	}
	c.consts = append(c.consts, v)
	return uint32(len(c.consts) - 1)
}

func (c *Compiler) addName(name ast.Identifier) uint32 {
	if idx, ok := c.nameIndex[string(name)]; ok {
		return idx
	}
	idx := uint32(len(c.names))
	c.names = append(c.names, string(name))
	c.nameIndex[string(name)] = idx
	return idx
}

func (c *Compiler) emitExprs(exprs []ast.Expr) error {
	for _, e := range exprs {
		if err := c.emitExpr(e); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) emitExpr(expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.Num:
		c.asm.OpArg(opcode.LOAD_CONST, c.addConstant(e.N))
	case *ast.Str:
		c.asm.OpArg(opcode.LOAD_CONST, c.addConstant(e.S))
	case *ast.Bytes:
		c.asm.OpArg(opcode.LOAD_CONST, c.addConstant(e.S))
	case *ast.NameConstant:
		c.asm.OpArg(opcode.LOAD_CONST, c.addConstant(e.Value))
	case *ast.Name:
		c.asm.OpArg(opcode.LOAD_NAME, c.addName(e.Id))
	case *ast.Attribute:
		if err := c.emitExpr(e.Value); err != nil {
			return err
		}
		c.asm.OpArg(opcode.LOAD_ATTR, c.addName(e.Attr))
	case *ast.BinOp:
		op, ok := binaryOps[e.Op]
		if !ok {
			return fmt.Errorf("%w: binary operator %v", ErrUnsupported, e.Op)
		}
		if err := c.emitExpr(e.Left); err != nil {
			return err
		}
		if err := c.emitExpr(e.Right); err != nil {
			return err
		}
		c.asm.Op(op)
	case *ast.UnaryOp:
		op, ok := unaryOps[e.Op]
		if !ok {
			return fmt.Errorf("%w: unary operator %v", ErrUnsupported, e.Op)
		}
		if err := c.emitExpr(e.Operand); err != nil {
			return err
		}
		c.asm.Op(op)
	case *ast.Subscript:
		return c.emitSubscript(e)
	case *ast.Tuple:
		if err := c.emitExprs(e.Elts); err != nil {
			return err
		}
		c.asm.OpArg(opcode.BUILD_TUPLE, uint32(len(e.Elts)))
	case *ast.List:
		if err := c.emitExprs(e.Elts); err != nil {
			return err
		}
		c.asm.OpArg(opcode.BUILD_LIST, uint32(len(e.Elts)))
	case *ast.Set:
		if err := c.emitExprs(e.Elts); err != nil {
			return err
		}
		c.asm.OpArg(opcode.BUILD_SET, uint32(len(e.Elts)))
	case *ast.Dict:
		c.asm.OpArg(opcode.BUILD_MAP, uint32(len(e.Keys)))
		for i := range e.Keys {
			if err := c.emitExpr(e.Values[i]); err != nil {
				return err
			}
			if err := c.emitExpr(e.Keys[i]); err != nil {
				return err
			}
			c.asm.Op(opcode.STORE_MAP)
		}
	case *ast.Call:
		return c.emitCall(e)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupported, expr)
	}
	return nil
}

func (c *Compiler) emitSubscript(e *ast.Subscript) error {
	if err := c.emitExpr(e.Value); err != nil {
		return err
	}

	switch sl := e.Slice.(type) {
	case *ast.Index:
		if err := c.emitExpr(sl.Value); err != nil {
			return err
		}
		c.asm.Op(opcode.BINARY_SUBSCR)
	case *ast.Slice:
		if sl.Step != nil {
			return fmt.Errorf("%w: extended slice", ErrUnsupported)
		}
		lower, upper := 0, 0
		if sl.Lower != nil {
			if err := c.emitExpr(sl.Lower); err != nil {
				return err
			}
			lower = 1
		}
		if sl.Upper != nil {
			if err := c.emitExpr(sl.Upper); err != nil {
				return err
			}
			upper = 1
		}
		c.asm.Op(sliceOps[lower][upper])
	default:
		return fmt.Errorf("%w: %T", ErrUnsupported, e.Slice)
	}
	return nil
}

func (c *Compiler) emitCall(e *ast.Call) error {
	if len(e.Args) > 0xff || len(e.Keywords) > 0xff {
		return fmt.Errorf("%w: more than 255 arguments", ErrUnsupported)
	}

	if err := c.emitExpr(e.Func); err != nil {
		return err
	}
	if err := c.emitExprs(e.Args); err != nil {
		return err
	}
	for _, kw := range e.Keywords {
		c.asm.OpArg(opcode.LOAD_CONST, c.addConstant(py.String(kw.Arg)))
		if err := c.emitExpr(kw.Value); err != nil {
			return err
		}
	}

	op := opcode.CALL_FUNCTION
	if e.Starargs != nil {
		if err := c.emitExpr(e.Starargs); err != nil {
			return err
		}
		op = opcode.CALL_FUNCTION_VAR
	}
	if e.Kwargs != nil {
		if err := c.emitExpr(e.Kwargs); err != nil {
			return err
		}
		if op == opcode.CALL_FUNCTION_VAR {
			op = opcode.CALL_FUNCTION_VAR_KW
		} else {
			op = opcode.CALL_FUNCTION_KW
		}
	}

	c.asm.OpArg(op, uint32(len(e.Args))|uint32(len(e.Keywords))<<8)
	return nil
}
