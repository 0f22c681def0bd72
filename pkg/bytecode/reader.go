package bytecode

import (
	"encoding/binary"
	"fmt"

	"github.com/agenthands/decompyle/pkg/opcode"
)

// Reader is a cursor over an instruction stream. The cursor always rests on
// the byte last consumed; callers call Advance to step onto the next opcode.
type Reader struct {
	code []byte
	pos  int
}

// NewReader creates a reader positioned on the first opcode of code.
func NewReader(code []byte) *Reader {
	return &Reader{code: code}
}

// Pos returns the cursor offset.
func (r *Reader) Pos() int { return r.pos }

// HasMore reports whether the cursor is still inside the stream.
func (r *Reader) HasMore() bool { return r.pos < len(r.code) }

// Current returns the byte under the cursor as an opcode. Past the end of
// the stream it returns STOP_CODE.
func (r *Reader) Current() opcode.OpCode {
	if !r.HasMore() {
		return opcode.STOP_CODE
	}
	return opcode.OpCode(r.code[r.pos])
}

// Advance moves the cursor one byte forward and returns the new current
// opcode.
func (r *Reader) Advance() opcode.OpCode {
	r.pos++
	return r.Current()
}

// ReadOperand consumes the two operand bytes following the cursor, low byte
// first, and leaves the cursor on the high byte.
func (r *Reader) ReadOperand() (uint16, error) {
	if r.pos+2 >= len(r.code) {
		return 0, fmt.Errorf("%w: operand of %s at offset %d", ErrTruncated, r.Current(), r.pos)
	}
	arg := binary.LittleEndian.Uint16(r.code[r.pos+1:])
	r.pos += 2
	return arg, nil
}

// Decode reads the instruction under the cursor together with its operand.
// An EXTENDED_ARG prefix is consumed along with the opcode it widens: the
// prefix operand is the low half and the widened opcode's operand is added
// as the high half. The cursor is left on the last byte consumed.
func (r *Reader) Decode() (Instruction, error) {
	in := Instruction{Offset: r.pos, Op: r.Current()}
	if !in.Op.HasArg() {
		return in, nil
	}

	arg, err := r.ReadOperand()
	if err != nil {
		return in, err
	}
	in.Arg = uint32(arg)

	if in.Op != opcode.ExtendedArg {
		return in, nil
	}
	if r.pos+1 >= len(r.code) {
		return in, fmt.Errorf("%w: dangling %s at offset %d", ErrTruncated, in.Op, in.Offset)
	}
	in.Op = r.Advance()
	if !in.Op.HasArg() {
		return in, fmt.Errorf("%w: %s at offset %d", ErrExtendedArg, in.Op, r.pos)
	}
	ext, err := r.ReadOperand()
	if err != nil {
		return in, err
	}
	in.Arg += 65536 * uint32(ext)
	return in, nil
}
