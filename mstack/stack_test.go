package mstack

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartsWithIdentity(t *testing.T) {
	s := New()
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, mgl32.Ident4(), s.Top())
}

func TestPushDuplicatesTop(t *testing.T) {
	s := New()
	m := mgl32.Translate3D(1, 2, 3)
	s.SetTop(m)

	s.Push()
	require.Equal(t, 2, s.Depth())
	assert.Equal(t, m, s.Top())

	// mutating the new top must not touch the saved matrix
	s.SetTop(mgl32.Scale3D(2, 2, 2))
	s.Pop()
	assert.Equal(t, m, s.Top())
}

func TestPopRestoresPreviousTop(t *testing.T) {
	s := New()
	s.Push()
	s.SetTop(mgl32.Ortho(-1, 1, -1, 1, -100, 100))
	s.Pop()

	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, mgl32.Ident4(), s.Top())
}

func TestPopOfBottomPanics(t *testing.T) {
	s := New()
	assert.Panics(t, func() { s.Pop() })
}

func TestIdentityReplacesTop(t *testing.T) {
	s := New()
	s.SetTop(mgl32.Translate3D(4, 5, 6))
	s.Identity()
	assert.Equal(t, mgl32.Ident4(), s.Top())
}
