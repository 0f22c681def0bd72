package decompiler

import "github.com/go-python/gpython/ast"

// Stack simulates the evaluation stack with tree nodes in place of values.
type Stack struct {
	items []ast.Ast
}

// Push adds a node to the top of the stack.
func (s *Stack) Push(n ast.Ast) {
	s.items = append(s.items, n)
}

// Pop removes the top count nodes and returns them bottom first, the order
// they were pushed in. Panics with ErrStackUnderflow if fewer are present.
func (s *Stack) Pop(count int) []ast.Ast {
	if count < 0 || count > len(s.items) {
		panic(ErrStackUnderflow)
	}
	base := len(s.items) - count
	out := make([]ast.Ast, count)
	copy(out, s.items[base:])
	clear(s.items[base:])
	s.items = s.items[:base]
	return out
}

// Len returns the stack depth.
func (s *Stack) Len() int { return len(s.items) }

// Items returns a copy of the stack contents, bottom first.
func (s *Stack) Items() []ast.Ast {
	out := make([]ast.Ast, len(s.items))
	copy(out, s.items)
	return out
}
