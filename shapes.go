package hpgl

// ShapeKind selects how EndShape interprets the buffered vertices.
type ShapeKind int

const (
	// ShapePolygon draws one polyline through all vertices.
	ShapePolygon ShapeKind = iota

	// ShapePoints draws every vertex as a single point.
	ShapePoints

	// ShapeLines draws a line for every pair of vertices. An unpaired
	// trailing vertex is ignored.
	ShapeLines
)

// String returns the name of the shape kind.
func (k ShapeKind) String() string {
	switch k {
	case ShapePolygon:
		return "Polygon"
	case ShapePoints:
		return "Points"
	case ShapeLines:
		return "Lines"
	default:
		return "Unknown"
	}
}

// ShapeMode tells EndShape whether to close the outline.
type ShapeMode int

const (
	// ModeOpen leaves the last vertex unconnected.
	ModeOpen ShapeMode = iota

	// ModeClose draws a final segment back to the first vertex.
	ModeClose
)

// ArcMode selects the outline drawn around an arc.
type ArcMode int

const (
	// ArcOpen draws only the curved part.
	ArcOpen ArcMode = iota

	// ArcChord closes the arc with a straight line between its ends.
	ArcChord

	// ArcPie closes the arc through its center, drawing a wedge.
	ArcPie
)

// String returns the name of the arc mode.
func (m ArcMode) String() string {
	switch m {
	case ArcOpen:
		return "Open"
	case ArcChord:
		return "Chord"
	case ArcPie:
		return "Pie"
	default:
		return "Unknown"
	}
}
