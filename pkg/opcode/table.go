package opcode

type info struct {
	name  string
	class Class
}

var table = [256]info{
	STOP_CODE:            {"STOP_CODE", None},
	POP_TOP:              {"POP_TOP", None},
	ROT_TWO:              {"ROT_TWO", None},
	ROT_THREE:            {"ROT_THREE", None},
	DUP_TOP:              {"DUP_TOP", None},
	ROT_FOUR:             {"ROT_FOUR", None},
	NOP:                  {"NOP", None},
	UNARY_POSITIVE:       {"UNARY_POSITIVE", None},
	UNARY_NEGATIVE:       {"UNARY_NEGATIVE", None},
	UNARY_NOT:            {"UNARY_NOT", None},
	UNARY_CONVERT:        {"UNARY_CONVERT", None},
	UNARY_INVERT:         {"UNARY_INVERT", None},
	BINARY_POWER:         {"BINARY_POWER", None},
	BINARY_MULTIPLY:      {"BINARY_MULTIPLY", None},
	BINARY_DIVIDE:        {"BINARY_DIVIDE", None},
	BINARY_MODULO:        {"BINARY_MODULO", None},
	BINARY_ADD:           {"BINARY_ADD", None},
	BINARY_SUBTRACT:      {"BINARY_SUBTRACT", None},
	BINARY_SUBSCR:        {"BINARY_SUBSCR", None},
	BINARY_FLOOR_DIVIDE:  {"BINARY_FLOOR_DIVIDE", None},
	BINARY_TRUE_DIVIDE:   {"BINARY_TRUE_DIVIDE", None},
	INPLACE_FLOOR_DIVIDE: {"INPLACE_FLOOR_DIVIDE", None},
	INPLACE_TRUE_DIVIDE:  {"INPLACE_TRUE_DIVIDE", None},
	SLICE_0:              {"SLICE+0", None},
	SLICE_1:              {"SLICE+1", None},
	SLICE_2:              {"SLICE+2", None},
	SLICE_3:              {"SLICE+3", None},
	STORE_SLICE_0:        {"STORE_SLICE+0", None},
	STORE_SLICE_1:        {"STORE_SLICE+1", None},
	STORE_SLICE_2:        {"STORE_SLICE+2", None},
	STORE_SLICE_3:        {"STORE_SLICE+3", None},
	DELETE_SLICE_0:       {"DELETE_SLICE+0", None},
	DELETE_SLICE_1:       {"DELETE_SLICE+1", None},
	DELETE_SLICE_2:       {"DELETE_SLICE+2", None},
	DELETE_SLICE_3:       {"DELETE_SLICE+3", None},
	STORE_MAP:            {"STORE_MAP", None},
	INPLACE_ADD:          {"INPLACE_ADD", None},
	INPLACE_SUBTRACT:     {"INPLACE_SUBTRACT", None},
	INPLACE_MULTIPLY:     {"INPLACE_MULTIPLY", None},
	INPLACE_DIVIDE:       {"INPLACE_DIVIDE", None},
	INPLACE_MODULO:       {"INPLACE_MODULO", None},
	STORE_SUBSCR:         {"STORE_SUBSCR", None},
	DELETE_SUBSCR:        {"DELETE_SUBSCR", None},
	BINARY_LSHIFT:        {"BINARY_LSHIFT", None},
	BINARY_RSHIFT:        {"BINARY_RSHIFT", None},
	BINARY_AND:           {"BINARY_AND", None},
	BINARY_XOR:           {"BINARY_XOR", None},
	BINARY_OR:            {"BINARY_OR", None},
	INPLACE_POWER:        {"INPLACE_POWER", None},
	GET_ITER:             {"GET_ITER", None},
	PRINT_EXPR:           {"PRINT_EXPR", None},
	PRINT_ITEM:           {"PRINT_ITEM", None},
	PRINT_NEWLINE:        {"PRINT_NEWLINE", None},
	PRINT_ITEM_TO:        {"PRINT_ITEM_TO", None},
	PRINT_NEWLINE_TO:     {"PRINT_NEWLINE_TO", None},
	INPLACE_LSHIFT:       {"INPLACE_LSHIFT", None},
	INPLACE_RSHIFT:       {"INPLACE_RSHIFT", None},
	INPLACE_AND:          {"INPLACE_AND", None},
	INPLACE_XOR:          {"INPLACE_XOR", None},
	INPLACE_OR:           {"INPLACE_OR", None},
	BREAK_LOOP:           {"BREAK_LOOP", None},
	WITH_CLEANUP:         {"WITH_CLEANUP", None},
	LOAD_LOCALS:          {"LOAD_LOCALS", None},
	RETURN_VALUE:         {"RETURN_VALUE", None},
	IMPORT_STAR:          {"IMPORT_STAR", None},
	EXEC_STMT:            {"EXEC_STMT", None},
	YIELD_VALUE:          {"YIELD_VALUE", None},
	POP_BLOCK:            {"POP_BLOCK", None},
	END_FINALLY:          {"END_FINALLY", None},
	BUILD_CLASS:          {"BUILD_CLASS", None},

	STORE_NAME:           {"STORE_NAME", Name},
	DELETE_NAME:          {"DELETE_NAME", Name},
	UNPACK_SEQUENCE:      {"UNPACK_SEQUENCE", Raw},
	FOR_ITER:             {"FOR_ITER", JumpRel},
	LIST_APPEND:          {"LIST_APPEND", Raw},
	STORE_ATTR:           {"STORE_ATTR", Name},
	DELETE_ATTR:          {"DELETE_ATTR", Name},
	STORE_GLOBAL:         {"STORE_GLOBAL", Name},
	DELETE_GLOBAL:        {"DELETE_GLOBAL", Name},
	DUP_TOPX:             {"DUP_TOPX", Raw},
	LOAD_CONST:           {"LOAD_CONST", Const},
	LOAD_NAME:            {"LOAD_NAME", Name},
	BUILD_TUPLE:          {"BUILD_TUPLE", Raw},
	BUILD_LIST:           {"BUILD_LIST", Raw},
	BUILD_SET:            {"BUILD_SET", Raw},
	BUILD_MAP:            {"BUILD_MAP", Raw},
	LOAD_ATTR:            {"LOAD_ATTR", Name},
	COMPARE_OP:           {"COMPARE_OP", Compare},
	IMPORT_NAME:          {"IMPORT_NAME", Name},
	IMPORT_FROM:          {"IMPORT_FROM", Name},
	JUMP_FORWARD:         {"JUMP_FORWARD", JumpRel},
	JUMP_IF_FALSE_OR_POP: {"JUMP_IF_FALSE_OR_POP", JumpAbs},
	JUMP_IF_TRUE_OR_POP:  {"JUMP_IF_TRUE_OR_POP", JumpAbs},
	JUMP_ABSOLUTE:        {"JUMP_ABSOLUTE", JumpAbs},
	POP_JUMP_IF_FALSE:    {"POP_JUMP_IF_FALSE", JumpAbs},
	POP_JUMP_IF_TRUE:     {"POP_JUMP_IF_TRUE", JumpAbs},
	LOAD_GLOBAL:          {"LOAD_GLOBAL", Name},
	CONTINUE_LOOP:        {"CONTINUE_LOOP", JumpAbs},
	SETUP_LOOP:           {"SETUP_LOOP", JumpRel},
	SETUP_EXCEPT:         {"SETUP_EXCEPT", JumpRel},
	SETUP_FINALLY:        {"SETUP_FINALLY", JumpRel},
	LOAD_FAST:            {"LOAD_FAST", Local},
	STORE_FAST:           {"STORE_FAST", Local},
	DELETE_FAST:          {"DELETE_FAST", Local},
	RAISE_VARARGS:        {"RAISE_VARARGS", Raw},
	CALL_FUNCTION:        {"CALL_FUNCTION", Raw},
	MAKE_FUNCTION:        {"MAKE_FUNCTION", Raw},
	BUILD_SLICE:          {"BUILD_SLICE", Raw},
	MAKE_CLOSURE:         {"MAKE_CLOSURE", Raw},
	LOAD_CLOSURE:         {"LOAD_CLOSURE", Free},
	LOAD_DEREF:           {"LOAD_DEREF", Free},
	STORE_DEREF:          {"STORE_DEREF", Free},
	CALL_FUNCTION_VAR:    {"CALL_FUNCTION_VAR", Raw},
	CALL_FUNCTION_KW:     {"CALL_FUNCTION_KW", Raw},
	CALL_FUNCTION_VAR_KW: {"CALL_FUNCTION_VAR_KW", Raw},
	SETUP_WITH:           {"SETUP_WITH", JumpRel},
	EXTENDED_ARG:         {"EXTENDED_ARG", Raw},
	SET_ADD:              {"SET_ADD", Raw},
	MAP_ADD:              {"MAP_ADD", Raw},
}

var byName = func() map[string]OpCode {
	m := make(map[string]OpCode)
	for i, in := range table {
		if in.name != "" {
			m[in.name] = OpCode(i)
		}
	}
	return m
}()
