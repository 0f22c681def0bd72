package decompiler

import (
	"fmt"

	"github.com/go-python/gpython/py"

	"github.com/agenthands/decompyle/pkg/bytecode"
	"github.com/agenthands/decompyle/pkg/opcode"
)

// Operand is an instruction operand resolved against the code tables.
// Which field is meaningful depends on Class.
type Operand struct {
	Class  opcode.Class
	Arg    uint32    // raw operand, after EXTENDED_ARG widening
	Const  py.Object // Const
	Name   string    // Name, Local, Free
	Target int       // JumpRel
}

// resolve interprets the operand of in. next is the offset of the
// instruction that follows it.
//
// Free-class operands index the cell variables first and the free variables
// after them: arg < len(Cellvars) names Cellvars[arg], otherwise the name is
// Freevars[arg-len(Cellvars)]. This is the closure layout of the interpreter
// that produced the stream.
func (d *Decompiler) resolve(in bytecode.Instruction, next int) (Operand, error) {
	o := Operand{Class: in.Op.Class(), Arg: in.Arg}
	arg := int(in.Arg)

	switch o.Class {
	case opcode.Const:
		if arg >= len(d.code.Consts) {
			return o, badIndex("constant", arg, len(d.code.Consts))
		}
		o.Const = d.code.Consts[arg]
	case opcode.Name:
		if arg >= len(d.code.Names) {
			return o, badIndex("name", arg, len(d.code.Names))
		}
		o.Name = d.code.Names[arg]
	case opcode.JumpRel:
		o.Target = next + arg
	case opcode.JumpAbs:
		return o, ErrAbsoluteJump
	case opcode.Local:
		if arg >= len(d.code.Varnames) {
			return o, badIndex("local", arg, len(d.code.Varnames))
		}
		o.Name = d.code.Varnames[arg]
	case opcode.Free:
		cells := len(d.code.Cellvars)
		switch {
		case arg < cells:
			o.Name = d.code.Cellvars[arg]
		case arg-cells < len(d.code.Freevars):
			o.Name = d.code.Freevars[arg-cells]
		default:
			return o, badIndex("cell/free", arg, cells+len(d.code.Freevars))
		}
	}
	return o, nil
}

func badIndex(table string, arg, size int) error {
	return fmt.Errorf("%w: %s index %d, table size %d", ErrBadIndex, table, arg, size)
}
