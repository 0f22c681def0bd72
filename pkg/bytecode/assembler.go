package bytecode

import "github.com/agenthands/decompyle/pkg/opcode"

// Assembler appends encoded instructions to a buffer.
type Assembler struct {
	buf []byte
}

// Op emits an opcode that takes no operand.
func (a *Assembler) Op(op opcode.OpCode) {
	a.buf = append(a.buf, byte(op))
}

// OpArg emits op with its operand. Operands wider than 16 bits get an
// EXTENDED_ARG prefix carrying the low half, mirroring Reader.Decode.
func (a *Assembler) OpArg(op opcode.OpCode, arg uint32) {
	if arg > 0xFFFF {
		a.buf = append(a.buf, byte(opcode.ExtendedArg), byte(arg), byte(arg>>8))
		arg >>= 16
	}
	a.buf = append(a.buf, byte(op), byte(arg), byte(arg>>8))
}

// Len returns the number of bytes emitted so far.
func (a *Assembler) Len() int { return len(a.buf) }

// Bytes returns the emitted instruction stream.
func (a *Assembler) Bytes() []byte { return a.buf }

// Reset discards everything emitted so far.
func (a *Assembler) Reset() { a.buf = a.buf[:0] }
