package hpgl

// DefaultShapeCapacity is the initial capacity of a shape's vertex buffer.
const DefaultShapeCapacity = 512

// VertexBuffer accumulates the vertices of one shape in emission order.
// When full, the backing array doubles, preserving order and values.
// No deduplication is performed.
type VertexBuffer struct {
	points []Point
	n      int
}

// NewVertexBuffer returns a buffer ready for a shape.
func NewVertexBuffer(capacity int) *VertexBuffer {
	b := &VertexBuffer{}
	b.Begin(capacity)
	return b
}

// Begin allocates storage for a new shape and resets the count.
func (b *VertexBuffer) Begin(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	b.points = make([]Point, capacity)
	b.n = 0
}

// Append adds p after the last vertex.
func (b *VertexBuffer) Append(p Point) {
	if b.n == len(b.points) {
		b.grow()
	}
	b.points[b.n] = p
	b.n++
}

func (b *VertexBuffer) grow() {
	size := 2 * len(b.points)
	if size == 0 {
		size = DefaultShapeCapacity
	}
	grown := make([]Point, size)
	copy(grown, b.points[:b.n])
	b.points = grown
}

// Len returns the number of vertices.
func (b *VertexBuffer) Len() int { return b.n }

// Cap returns the current capacity.
func (b *VertexBuffer) Cap() int { return len(b.points) }

// At returns the i'th vertex.
func (b *VertexBuffer) At(i int) Point { return b.points[i] }

// Last returns the most recent vertex and whether one exists.
func (b *VertexBuffer) Last() (Point, bool) {
	if b.n == 0 {
		return Point{}, false
	}
	return b.points[b.n-1], true
}

// Points returns the vertices. The slice aliases the buffer until the
// next Append or Begin.
func (b *VertexBuffer) Points() []Point {
	return b.points[:b.n]
}

// End returns the vertices and releases the storage.
func (b *VertexBuffer) End() []Point {
	pts := b.points[:b.n:b.n]
	b.points = nil
	b.n = 0
	return pts
}
