// Package opcode defines the instruction set the decompiler reads: one byte
// per opcode, optionally followed by a two byte little-endian operand.
// Numbering follows the CPython 2.7 interpreter.
package opcode

import "strconv"

// OpCode is a single instruction tag.
type OpCode byte

const (
	STOP_CODE            OpCode = 0
	POP_TOP              OpCode = 1
	ROT_TWO              OpCode = 2
	ROT_THREE            OpCode = 3
	DUP_TOP              OpCode = 4
	ROT_FOUR             OpCode = 5
	NOP                  OpCode = 9
	UNARY_POSITIVE       OpCode = 10
	UNARY_NEGATIVE       OpCode = 11
	UNARY_NOT            OpCode = 12
	UNARY_CONVERT        OpCode = 13
	UNARY_INVERT         OpCode = 15
	BINARY_POWER         OpCode = 19
	BINARY_MULTIPLY      OpCode = 20
	BINARY_DIVIDE        OpCode = 21
	BINARY_MODULO        OpCode = 22
	BINARY_ADD           OpCode = 23
	BINARY_SUBTRACT      OpCode = 24
	BINARY_SUBSCR        OpCode = 25
	BINARY_FLOOR_DIVIDE  OpCode = 26
	BINARY_TRUE_DIVIDE   OpCode = 27
	INPLACE_FLOOR_DIVIDE OpCode = 28
	INPLACE_TRUE_DIVIDE  OpCode = 29
	SLICE_0              OpCode = 30
	SLICE_1              OpCode = 31
	SLICE_2              OpCode = 32
	SLICE_3              OpCode = 33
	STORE_SLICE_0        OpCode = 40
	STORE_SLICE_1        OpCode = 41
	STORE_SLICE_2        OpCode = 42
	STORE_SLICE_3        OpCode = 43
	DELETE_SLICE_0       OpCode = 50
	DELETE_SLICE_1       OpCode = 51
	DELETE_SLICE_2       OpCode = 52
	DELETE_SLICE_3       OpCode = 53
	STORE_MAP            OpCode = 54
	INPLACE_ADD          OpCode = 55
	INPLACE_SUBTRACT     OpCode = 56
	INPLACE_MULTIPLY     OpCode = 57
	INPLACE_DIVIDE       OpCode = 58
	INPLACE_MODULO       OpCode = 59
	STORE_SUBSCR         OpCode = 60
	DELETE_SUBSCR        OpCode = 61
	BINARY_LSHIFT        OpCode = 62
	BINARY_RSHIFT        OpCode = 63
	BINARY_AND           OpCode = 64
	BINARY_XOR           OpCode = 65
	BINARY_OR            OpCode = 66
	INPLACE_POWER        OpCode = 67
	GET_ITER             OpCode = 68
	PRINT_EXPR           OpCode = 70
	PRINT_ITEM           OpCode = 71
	PRINT_NEWLINE        OpCode = 72
	PRINT_ITEM_TO        OpCode = 73
	PRINT_NEWLINE_TO     OpCode = 74
	INPLACE_LSHIFT       OpCode = 75
	INPLACE_RSHIFT       OpCode = 76
	INPLACE_AND          OpCode = 77
	INPLACE_XOR          OpCode = 78
	INPLACE_OR           OpCode = 79
	BREAK_LOOP           OpCode = 80
	WITH_CLEANUP         OpCode = 81
	LOAD_LOCALS          OpCode = 82
	RETURN_VALUE         OpCode = 83
	IMPORT_STAR          OpCode = 84
	EXEC_STMT            OpCode = 85
	YIELD_VALUE          OpCode = 86
	POP_BLOCK            OpCode = 87
	END_FINALLY          OpCode = 88
	BUILD_CLASS          OpCode = 89
	STORE_NAME           OpCode = 90 // Opcodes from here on take an operand.
	DELETE_NAME          OpCode = 91
	UNPACK_SEQUENCE      OpCode = 92
	FOR_ITER             OpCode = 93
	LIST_APPEND          OpCode = 94
	STORE_ATTR           OpCode = 95
	DELETE_ATTR          OpCode = 96
	STORE_GLOBAL         OpCode = 97
	DELETE_GLOBAL        OpCode = 98
	DUP_TOPX             OpCode = 99
	LOAD_CONST           OpCode = 100
	LOAD_NAME            OpCode = 101
	BUILD_TUPLE          OpCode = 102
	BUILD_LIST           OpCode = 103
	BUILD_SET            OpCode = 104
	BUILD_MAP            OpCode = 105
	LOAD_ATTR            OpCode = 106
	COMPARE_OP           OpCode = 107
	IMPORT_NAME          OpCode = 108
	IMPORT_FROM          OpCode = 109
	JUMP_FORWARD         OpCode = 110
	JUMP_IF_FALSE_OR_POP OpCode = 111
	JUMP_IF_TRUE_OR_POP  OpCode = 112
	JUMP_ABSOLUTE        OpCode = 113
	POP_JUMP_IF_FALSE    OpCode = 114
	POP_JUMP_IF_TRUE     OpCode = 115
	LOAD_GLOBAL          OpCode = 116
	CONTINUE_LOOP        OpCode = 119
	SETUP_LOOP           OpCode = 120
	SETUP_EXCEPT         OpCode = 121
	SETUP_FINALLY        OpCode = 122
	LOAD_FAST            OpCode = 124
	STORE_FAST           OpCode = 125
	DELETE_FAST          OpCode = 126
	RAISE_VARARGS        OpCode = 130
	CALL_FUNCTION        OpCode = 131
	MAKE_FUNCTION        OpCode = 132
	BUILD_SLICE          OpCode = 133
	MAKE_CLOSURE         OpCode = 134
	LOAD_CLOSURE         OpCode = 135
	LOAD_DEREF           OpCode = 136
	STORE_DEREF          OpCode = 137
	CALL_FUNCTION_VAR    OpCode = 140
	CALL_FUNCTION_KW     OpCode = 141
	CALL_FUNCTION_VAR_KW OpCode = 142
	SETUP_WITH           OpCode = 143
	EXTENDED_ARG         OpCode = 145
	SET_ADD              OpCode = 146
	MAP_ADD              OpCode = 147
)

const (
	// HaveArgument is the first opcode that is followed by an operand.
	HaveArgument = STORE_NAME
	// ExtendedArg widens the operand of the instruction that follows it.
	ExtendedArg = EXTENDED_ARG
)

// Class says how the raw operand of an opcode is interpreted.
type Class uint8

const (
	None    Class = iota // no operand
	Raw                  // immediate count or flag, used as is
	Const                // index into the constant pool
	Name                 // index into the name table
	JumpRel              // offset relative to the next instruction
	JumpAbs              // absolute offset
	Local                // index into the local variable names
	Compare              // comparison operator code
	Free                 // index into cell variables, then free variables
)

var classNames = [...]string{
	None:    "none",
	Raw:     "raw",
	Const:   "const",
	Name:    "name",
	JumpRel: "jrel",
	JumpAbs: "jabs",
	Local:   "local",
	Compare: "compare",
	Free:    "free",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "class(" + strconv.Itoa(int(c)) + ")"
}

// Name returns the mnemonic of op, or "<n>" for an unassigned byte.
func (op OpCode) Name() string {
	if n := table[op].name; n != "" {
		return n
	}
	return "<" + strconv.Itoa(int(op)) + ">"
}

func (op OpCode) String() string { return op.Name() }

// Class returns the operand class of op. Opcodes below HaveArgument are
// always None.
func (op OpCode) Class() Class {
	if !op.HasArg() {
		return None
	}
	return table[op].class
}

// HasArg reports whether op is followed by a two byte operand.
func (op OpCode) HasArg() bool { return op >= HaveArgument }

// Defined reports whether op is assigned in the instruction set.
func (op OpCode) Defined() bool { return table[op].name != "" }

// Lookup returns the opcode with the given mnemonic.
func Lookup(name string) (OpCode, bool) {
	op, ok := byName[name]
	return op, ok
}
