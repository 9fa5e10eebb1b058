package hpgl

import "golang.org/x/image/math/f64"

// DefaultStackDepth is the number of outstanding Push calls a
// TransformStack allows unless configured otherwise.
const DefaultStackDepth = 32

// TransformStack is a bounded stack of transform levels.
//
// Level 0 is the base transform. Push opens a new identity level which
// receives every subsequent Apply until the matching Pop discards it.
// The current matrix is always the ordered composition of all levels,
// so Push, any transform, Pop yields a bit-identical current matrix.
//
// Levels are kept in the golang.org/x/image affine layout.
//
// The zero value is not usable; create stacks with NewTransformStack.
type TransformStack struct {
	levels   []f64.Aff3
	capacity int
	current  Matrix
}

// NewTransformStack creates a stack allowing depth nested pushes.
// A non-positive depth selects DefaultStackDepth.
func NewTransformStack(depth int) *TransformStack {
	if depth <= 0 {
		depth = DefaultStackDepth
	}
	levels := make([]f64.Aff3, 1, depth+1)
	levels[0] = Identity().Aff3()
	return &TransformStack{
		levels:   levels,
		capacity: depth,
		current:  Identity(),
	}
}

// Current returns the composed transformation.
func (s *TransformStack) Current() Matrix {
	return s.current
}

// Depth returns the number of outstanding pushes.
func (s *TransformStack) Depth() int {
	return len(s.levels) - 1
}

// Capacity returns the maximum depth.
func (s *TransformStack) Capacity() int {
	return s.capacity
}

// Push saves the current transform.
func (s *TransformStack) Push() error {
	if s.Depth() == s.capacity {
		return ErrStackOverflow
	}
	s.levels = append(s.levels, Identity().Aff3())
	return nil
}

// Pop discards every transform applied since the matching Push.
func (s *TransformStack) Pop() error {
	if s.Depth() == 0 {
		return ErrStackUnderflow
	}
	s.levels = s.levels[:len(s.levels)-1]
	s.recompose()
	return nil
}

// Apply post-multiplies m into the innermost level, so m acts on
// coordinates before any transform applied earlier.
func (s *TransformStack) Apply(m Matrix) {
	top := len(s.levels) - 1
	s.levels[top] = MatrixFromAff3(s.levels[top]).Multiply(m).Aff3()
	s.recompose()
}

// Reset drops all levels and restores the identity.
func (s *TransformStack) Reset() {
	s.levels = s.levels[:1]
	s.levels[0] = Identity().Aff3()
	s.current = Identity()
}

// Level returns the transform applied at nesting level i, where 0 is
// the base level and Depth is the innermost.
func (s *TransformStack) Level(i int) f64.Aff3 {
	return s.levels[i]
}

func (s *TransformStack) recompose() {
	m := Identity()
	for _, l := range s.levels {
		m = m.Multiply(MatrixFromAff3(l))
	}
	s.current = m
}
