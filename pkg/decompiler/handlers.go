package decompiler

import (
	"fmt"
	"slices"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/py"
)

// popExprs pops count nodes, all of which must be expressions. Popping zero
// nodes yields nil, matching the empty lists a parser leaves unset.
func (d *Decompiler) popExprs(count int) ([]ast.Expr, error) {
	nodes := d.stack.Pop(count)
	if len(nodes) == 0 {
		return nil, nil
	}
	exprs := make([]ast.Expr, len(nodes))
	for i, n := range nodes {
		e, ok := n.(ast.Expr)
		if !ok {
			return nil, d.fail(fmt.Errorf("%w: %T", ErrNotExpression, n))
		}
		exprs[i] = e
	}
	return exprs, nil
}

func (d *Decompiler) popExpr() (ast.Expr, error) {
	exprs, err := d.popExprs(1)
	if err != nil {
		return nil, err
	}
	return exprs[0], nil
}

// binary builds TOS1 op TOS. The top of the stack is the right operand.
func (d *Decompiler) binary(op ast.OperatorNumber) (ast.Ast, error) {
	operands, err := d.popExprs(2)
	if err != nil {
		return nil, err
	}
	return &ast.BinOp{Left: operands[0], Op: op, Right: operands[1]}, nil
}

func (d *Decompiler) unary(op ast.UnaryOpNumber) (ast.Ast, error) {
	operand, err := d.popExpr()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{Op: op, Operand: operand}, nil
}

// subscript builds TOS1[TOS].
func (d *Decompiler) subscript() (ast.Ast, error) {
	operands, err := d.popExprs(2)
	if err != nil {
		return nil, err
	}
	return &ast.Subscript{
		Value: operands[0],
		Slice: &ast.Index{Value: operands[1]},
		Ctx:   ast.Load,
	}, nil
}

// slice builds obj[lower:upper]. Bounds that were not pushed stay nil.
func (d *Decompiler) slice(lower, upper bool) (ast.Ast, error) {
	count := 1
	if lower {
		count++
	}
	if upper {
		count++
	}
	operands, err := d.popExprs(count)
	if err != nil {
		return nil, err
	}

	sl := &ast.Slice{}
	i := 1
	if lower {
		sl.Lower = operands[i]
		i++
	}
	if upper {
		sl.Upper = operands[i]
	}
	return &ast.Subscript{Value: operands[0], Slice: sl, Ctx: ast.Load}, nil
}

func (d *Decompiler) literal(obj py.Object) (ast.Ast, error) {
	expr, err := literal(obj)
	if err != nil {
		return nil, d.fail(err)
	}
	return expr, nil
}

// literal converts a constant pool entry into the node a parser would have
// produced for it. Folded tuple constants expand element by element.
func literal(obj py.Object) (ast.Expr, error) {
	switch obj {
	case py.None, py.True, py.False:
		return &ast.NameConstant{Value: obj}, nil
	}

	switch v := obj.(type) {
	case py.Int, py.Float, py.Complex, *py.BigInt:
		return &ast.Num{N: obj}, nil
	case py.String:
		return &ast.Str{S: v}, nil
	case py.Bytes:
		return &ast.Bytes{S: v}, nil
	case py.Tuple:
		elts := make([]ast.Expr, len(v))
		for i, item := range v {
			e, err := literal(item)
			if err != nil {
				return nil, err
			}
			elts[i] = e
		}
		return &ast.Tuple{Elts: elts, Ctx: ast.Load}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrConstant, obj)
}

func (d *Decompiler) attribute(name string) (ast.Ast, error) {
	value, err := d.popExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Attribute{Value: value, Attr: ast.Identifier(name), Ctx: ast.Load}, nil
}

// storeMap pops dict, value and key and pushes the dict with the entry added.
// Entries keep the order the stores were executed in.
func (d *Decompiler) storeMap() (ast.Ast, error) {
	operands, err := d.popExprs(3)
	if err != nil {
		return nil, err
	}
	dict, ok := operands[0].(*ast.Dict)
	if !ok {
		return nil, d.fail(fmt.Errorf("%w: %T", ErrNotDict, operands[0]))
	}
	return &ast.Dict{
		Keys:   append(slices.Clone(dict.Keys), operands[2]),
		Values: append(slices.Clone(dict.Values), operands[1]),
	}, nil
}

// call builds a function call. The low byte of argc counts positional
// arguments and the high byte counts keyword name/value pairs; *args and
// **kwargs, when present, sit above them on the stack.
func (d *Decompiler) call(argc uint32, varargs, kwargs bool) (ast.Ast, error) {
	positional := int(argc & 0xff)
	keywords := int(argc >> 8 & 0xff)

	count := 1 + positional + 2*keywords
	if varargs {
		count++
	}
	if kwargs {
		count++
	}
	operands, err := d.popExprs(count)
	if err != nil {
		return nil, err
	}

	call := &ast.Call{Func: operands[0]}
	if positional > 0 {
		call.Args = operands[1 : 1+positional]
	}
	rest := operands[1+positional:]
	for i := 0; i < keywords; i++ {
		name, ok := rest[2*i].(*ast.Str)
		if !ok {
			return nil, d.fail(fmt.Errorf("%w: %T", ErrKeywordName, rest[2*i]))
		}
		call.Keywords = append(call.Keywords, &ast.Keyword{
			Arg:   ast.Identifier(name.S),
			Value: rest[2*i+1],
		})
	}
	rest = rest[2*keywords:]
	if varargs {
		call.Starargs = rest[0]
		rest = rest[1:]
	}
	if kwargs {
		call.Kwargs = rest[0]
	}
	return call, nil
}

// ret wraps the last value in a return statement. Only a trailing return is
// accepted.
func (d *Decompiler) ret() (ast.Ast, error) {
	if d.r.Pos()+1 < len(d.code.Instructions) {
		return nil, d.fail(ErrUnexpectedReturn)
	}
	value, err := d.popExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Value: value}, nil
}
