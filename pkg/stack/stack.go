package stack

import "github.com/pkg/errors"

var ErrEmptyStack = errors.New("empty stack")

type stack[T interface{}] struct {
	s []T
}

// Stack is a LIFO used to keep explicit traversal paths. It is not safe
// for concurrent use; every path belongs to a single iteration.
type Stack[T interface{}] interface {
	Push(v T)
	Pop() T
	Top() T
	Size() int
	Empty() bool
	Reset()
}

func New[T interface{}](initialSize int) Stack[T] {
	return &stack[T]{make([]T, 0, initialSize)}
}

func (s *stack[T]) Push(value T) {
	s.s = append(s.s, value)
}

func (s *stack[T]) Pop() T {
	l := len(s.s)
	if l == 0 {
		panic(ErrEmptyStack)
	}

	var zero T
	value := s.s[l-1]
	s.s[l-1] = zero
	s.s = s.s[:l-1]
	return value
}

func (s *stack[T]) Top() T {
	l := len(s.s)
	if l == 0 {
		panic(ErrEmptyStack)
	}

	return s.s[l-1]
}

func (s *stack[T]) Size() int {
	return len(s.s)
}

func (s *stack[T]) Empty() bool {
	return len(s.s) == 0
}

// Reset drops every element but keeps the allocated capacity.
func (s *stack[T]) Reset() {
	var zero T
	for i := range s.s {
		s.s[i] = zero
	}
	s.s = s.s[:0]
}
