// Package bytecode holds a compiled code unit and the cursor used to walk its
// instruction stream.
package bytecode

import (
	"errors"
	"fmt"

	"github.com/go-python/gpython/py"

	"github.com/agenthands/decompyle/pkg/opcode"
)

var (
	ErrTruncated   = errors.New("bytecode: instruction stream truncated")
	ErrExtendedArg = errors.New("bytecode: extended argument not followed by an opcode taking an operand")
)

// Code represents one compiled unit: the instruction bytes and the tables
// their operands index into. It is not modified while being decoded.
type Code struct {
	Instructions []byte
	Consts       []py.Object
	Names        []string
	Varnames     []string
	Freevars     []string
	Cellvars     []string
}

// Instruction is a decoded opcode with its operand. An EXTENDED_ARG prefix is
// folded into the instruction it widens; Offset then points at the prefix.
type Instruction struct {
	Offset int
	Op     opcode.OpCode
	Arg    uint32
}

func (in Instruction) String() string {
	if !in.Op.HasArg() {
		return fmt.Sprintf("%4d %s", in.Offset, in.Op)
	}
	return fmt.Sprintf("%4d %-20s %d", in.Offset, in.Op, in.Arg)
}

// Disassemble lists the instructions of code in order.
func Disassemble(code []byte) ([]Instruction, error) {
	var out []Instruction
	r := NewReader(code)
	for r.HasMore() {
		in, err := r.Decode()
		if err != nil {
			return nil, err
		}
		out = append(out, in)
		r.Advance()
	}
	return out, nil
}
