// Package mstack provides a classic matrix stack for scoped projection and
// modelview changes: push, mutate the top, render, pop.
package mstack

import "github.com/go-gl/mathgl/mgl32"

type Stack struct {
	mats []mgl32.Mat4
}

// New returns a stack seeded with a single identity matrix. The bottom
// matrix can be replaced but never popped.
func New() *Stack {
	return &Stack{mats: []mgl32.Mat4{mgl32.Ident4()}}
}

func (s *Stack) Top() mgl32.Mat4 {
	return s.mats[len(s.mats)-1]
}

func (s *Stack) SetTop(m mgl32.Mat4) {
	s.mats[len(s.mats)-1] = m
}

// Push duplicates the top matrix and returns the stack for chaining, so a
// scoped change reads `st.Push(); defer st.Pop()`.
func (s *Stack) Push() *Stack {
	s.mats = append(s.mats, s.Top())
	return s
}

func (s *Stack) Pop() {
	if len(s.mats) == 1 {
		panic("mstack: pop of the bottom matrix")
	}
	s.mats = s.mats[:len(s.mats)-1]
}

// Identity replaces the top matrix with identity.
func (s *Stack) Identity() *Stack {
	s.SetTop(mgl32.Ident4())
	return s
}

func (s *Stack) Depth() int {
	return len(s.mats)
}
