package decompiler

import (
	"errors"
	"fmt"

	"github.com/agenthands/decompyle/pkg/opcode"
)

var (
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("decompiler: decode error")
	// ErrUnsupported matches every *UnsupportedError.
	ErrUnsupported = errors.New("decompiler: unsupported operation")

	ErrStackUnderflow   = errors.New("decompiler: stack underflow")
	ErrUnexpectedReturn = errors.New("decompiler: unexpected return statement")
	ErrAbsoluteJump     = errors.New("decompiler: absolute jump operands are not resolved")
	ErrBadIndex         = errors.New("decompiler: operand index out of range")
	ErrNotExpression    = errors.New("decompiler: stack value is not an expression")
	ErrNotDict          = errors.New("decompiler: map store target is not a dict")
	ErrKeywordName      = errors.New("decompiler: keyword argument name is not a string")
	ErrConstant         = errors.New("decompiler: constant has no literal form")
	ErrIncomplete       = errors.New("decompiler: code does not end in a single return")
)

// UnsupportedError reports an opcode the decompiler has no handler for.
type UnsupportedError struct {
	Offset int
	Op     opcode.OpCode
}

// Mnemonic returns the symbolic name of the rejected opcode.
func (e *UnsupportedError) Mnemonic() string { return e.Op.Name() }

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("decompiler: unsupported operation %s at offset %d", e.Op.Name(), e.Offset)
}

func (e *UnsupportedError) Is(target error) bool { return target == ErrUnsupported }

// DecodeError reports a malformed instruction stream.
type DecodeError struct {
	Offset int
	Op     opcode.OpCode
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decompiler: %s at offset %d: %v", e.Op.Name(), e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
