package hpgl

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/image/math/f64"
)

// Surface is the main drawing surface.
// It owns the transform stack, the shape being built and the emitter,
// and turns drawing calls into HPGL instructions.
//
// Coordinates are host coordinates: origin at the top-left, Y growing
// downwards, angles in radians. Vertices are transformed when they are
// added, so transform changes in the middle of a shape only affect the
// vertices that follow.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	width  float64
	height float64

	stack   *TransformStack
	mapper  *Mapper
	emitter *Emitter
	curves  *CurveFlattener

	// shape is nil outside BeginShape/EndShape.
	shape         *VertexBuffer
	kind          ShapeKind
	shapeCapacity int

	paperSet bool
	file     *os.File // owned sink opened by BeginFile
}

// NewSurface creates a surface for a host canvas of the given size.
// Optional SurfaceOption arguments configure paper, mapping and
// tessellation:
//
//	s := hpgl.NewSurface(800, 600, hpgl.WithPaper(hpgl.PaperA3))
//	if err := s.BeginFile("out.hpgl"); err != nil {
//	    return err
//	}
//	s.DrawLine(0, 0, 800, 600)
//	return s.End()
func NewSurface(width, height float64, opts ...SurfaceOption) *Surface {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	stack := NewTransformStack(options.stackDepth)
	mapper := NewMapper(DefaultPaper, width, height, stack)
	mapper.SetPaperScaling(options.paperScaling)
	mapper.SetQuantize(options.quantize)

	emitter := NewEmitter(mapper)
	emitter.SetChordAngle(options.chordAngle)
	if options.hasTerminator {
		emitter.SetTerminator(options.terminator)
	}

	curves := NewCurveFlattener(options.curveDetail, options.bezierDetail)
	if options.tightness != 0 {
		curves.SetTightness(options.tightness)
	}

	s := &Surface{
		width:         width,
		height:        height,
		stack:         stack,
		mapper:        mapper,
		emitter:       emitter,
		curves:        curves,
		shapeCapacity: options.shapeCapacity,
	}
	if options.paper != nil {
		mapper.SetPaper(*options.paper)
		s.paperSet = true
	}
	return s
}

// Width returns the canvas width.
func (s *Surface) Width() float64 { return s.width }

// Height returns the canvas height.
func (s *Surface) Height() float64 { return s.height }

// SetPaperSize selects a registered paper profile by name, e.g. "A4".
// The paper cannot change while a session is open.
func (s *Surface) SetPaperSize(name string) error {
	p, err := LookupPaper(name)
	if err != nil {
		return err
	}
	return s.SetPaper(p)
}

// SetPaper selects the paper profile.
// The paper cannot change while a session is open.
func (s *Surface) SetPaper(p Paper) error {
	if s.emitter.IsOpen() {
		return ErrSessionOpen
	}
	s.mapper.SetPaper(p)
	s.paperSet = true
	return nil
}

// Paper returns the active paper profile.
func (s *Surface) Paper() Paper { return s.mapper.Paper() }

// Begin starts a session writing to w. The writer is borrowed: End
// flushes it but does not close it.
func (s *Surface) Begin(w io.Writer) error {
	if s.emitter.IsOpen() {
		return ErrSessionOpen
	}
	if !s.paperSet {
		Logger().Warn("hpgl: paper size not set, using default", "paper", DefaultPaper.Name)
		s.mapper.SetPaper(DefaultPaper)
		s.paperSet = true
	}
	return s.emitter.Open(w)
}

// BeginFile creates the file at path and starts a session writing to
// it. End closes the file.
func (s *Surface) BeginFile(path string) error {
	if s.emitter.IsOpen() {
		return ErrSessionOpen
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrSinkCreate, path, err)
	}
	if err := s.Begin(f); err != nil {
		_ = f.Close()
		return err
	}
	s.file = f
	return nil
}

// End writes the footer and finishes the session. An unfinished shape
// is discarded.
func (s *Surface) End() error {
	if s.shape != nil {
		Logger().Warn("hpgl: session ended inside BeginShape, shape discarded",
			"vertices", s.shape.Len())
		s.shape = nil
		s.curves.Reset()
	}
	err := s.emitter.Close()
	if s.file != nil {
		if cerr := s.file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("hpgl: close output: %w", cerr)
		}
		s.file = nil
	}
	return err
}

// Push saves the current transform.
// It returns ErrStackOverflow when the stack is full.
func (s *Surface) Push() error {
	return s.stack.Push()
}

// Pop restores the transform saved by the matching Push.
// It returns ErrStackUnderflow when no Push is outstanding.
func (s *Surface) Pop() error {
	return s.stack.Pop()
}

// Translate applies a translation to the transformation matrix.
func (s *Surface) Translate(x, y float64) {
	s.stack.Apply(Translate(x, y))
}

// Scale applies a scaling to the transformation matrix.
func (s *Surface) Scale(x, y float64) {
	s.stack.Apply(Scale(x, y))
}

// ScaleUniform scales both axes by f.
func (s *Surface) ScaleUniform(f float64) {
	s.stack.Apply(Scale(f, f))
}

// Rotate applies a rotation (angle in radians) to the transformation matrix.
func (s *Surface) Rotate(angle float64) {
	s.stack.Apply(Rotate(angle))
}

// Shear applies a shear to the transformation matrix.
func (s *Surface) Shear(x, y float64) {
	s.stack.Apply(Shear(x, y))
}

// Transform multiplies m into the transformation matrix.
func (s *Surface) Transform(m Matrix) {
	s.stack.Apply(m)
}

// TransformAff3 multiplies an x/image affine matrix into the
// transformation matrix.
func (s *Surface) TransformAff3(a f64.Aff3) {
	s.stack.Apply(MatrixFromAff3(a))
}

// Matrix returns the current transformation matrix.
func (s *Surface) Matrix() Matrix {
	return s.stack.Current()
}

// DeviceCoords returns where the host point (x, y) lands on the plotter
// under the current transform.
func (s *Surface) DeviceCoords(x, y float64) Point {
	return s.mapper.Map(Pt(x, y))
}

// SelectPen selects plotter pen n.
func (s *Surface) SelectPen(n int) { s.emitter.SelectPen(n) }

// SetSpeed sets the pen-down velocity, typically 0 to 127.
func (s *Surface) SetSpeed(v int) { s.emitter.SetSpeed(v) }

// SetChordAngle sets the chord angle in degrees for circles, ellipses
// and arcs.
func (s *Surface) SetChordAngle(deg float64) { s.emitter.SetChordAngle(deg) }

// SetCurveDetail sets the number of segments per CurveVertex span.
func (s *Surface) SetCurveDetail(n int) { s.curves.SetCurveDetail(n) }

// SetBezierDetail sets the number of segments per BezierVertex call.
func (s *Surface) SetBezierDetail(n int) { s.curves.SetBezierDetail(n) }

// SetCurveTightness sets the cardinal spline tightness for CurveVertex.
func (s *Surface) SetCurveTightness(t float64) { s.curves.SetTightness(t) }

// WriteCommand writes a raw instruction line, for plotter features the
// surface does not model.
func (s *Surface) WriteCommand(cmd string) { s.emitter.WriteCommand(cmd) }

// DrawPoint marks a dot at (x, y).
func (s *Surface) DrawPoint(x, y float64) {
	s.emitter.Point(Pt(x, y))
}

// DrawLine draws a line from (x1, y1) to (x2, y2).
func (s *Surface) DrawLine(x1, y1, x2, y2 float64) {
	s.emitter.Line(Pt(x1, y1), Pt(x2, y2))
}

// DrawRectangle draws a rectangle with its top-left corner at (x, y).
func (s *Surface) DrawRectangle(x, y, w, h float64) {
	s.emitter.Rect(x, y, x+w, y+h)
}

// DrawCircle draws a circle of radius r centered at (x, y).
func (s *Surface) DrawCircle(x, y, r float64) {
	s.emitter.Circle(Pt(x, y), r)
}

// DrawEllipse draws an ellipse of width w and height h centered at (x, y).
func (s *Surface) DrawEllipse(x, y, w, h float64) {
	s.emitter.Ellipse(Pt(x, y), w, h)
}

// DrawArc draws the arc of the ellipse centered at (x, y) with width w
// and height h from angle start to stop. Only circular arcs (w == h)
// are drawn; elliptical arcs are skipped.
func (s *Surface) DrawArc(x, y, w, h, start, stop float64, mode ArcMode) {
	s.emitter.Arc(Pt(x, y), w, h, start, stop, mode)
}

// DrawString places text with its origin at (x, y).
func (s *Surface) DrawString(text string, x, y float64) {
	s.emitter.Text(text, Pt(x, y))
}

// SetTextSize sets the character size for text px host units high.
func (s *Surface) SetTextSize(px float64) {
	s.emitter.TextSize(px)
}

// BeginShape starts collecting vertices for a shape of the given kind.
// A shape already in progress is discarded.
func (s *Surface) BeginShape(kind ShapeKind) {
	if s.shape != nil {
		Logger().Debug("hpgl: BeginShape discards unfinished shape", "vertices", s.shape.Len())
	}
	s.shape = NewVertexBuffer(s.shapeCapacity)
	s.kind = kind
	s.curves.Reset()
}

// building reports whether a shape is in progress, warning otherwise.
func (s *Surface) building(op string) bool {
	if s.shape == nil {
		Logger().Warn("hpgl: vertex outside BeginShape/EndShape ignored", "op", op)
		return false
	}
	return true
}

// vertex appends an already transformed point. A plain vertex ends any
// run of curve vertices.
func (s *Surface) vertex(p Point) {
	s.curves.Reset()
	s.shape.Append(p)
}

// Vertex adds a corner at (x, y).
func (s *Surface) Vertex(x, y float64) {
	if !s.building("Vertex") {
		return
	}
	s.vertex(s.stack.Current().TransformPoint(Pt(x, y)))
}

// CurveVertex adds a Catmull-Rom control point. The curve is drawn
// between the second and the second to last of consecutive curve
// vertices, so at least four are needed before anything appears.
func (s *Surface) CurveVertex(x, y float64) {
	if !s.building("CurveVertex") {
		return
	}
	s.curves.CurveVertex(s.stack.Current().TransformPoint(Pt(x, y)), s.vertex)
}

// BezierVertex adds a cubic Bezier curve from the previous vertex
// through the control points (x2, y2) and (x3, y3) to (x4, y4).
// It is ignored when the shape has no vertex yet.
func (s *Surface) BezierVertex(x2, y2, x3, y3, x4, y4 float64) {
	if !s.building("BezierVertex") {
		return
	}
	anchor, ok := s.shape.Last()
	if !ok {
		Logger().Warn("hpgl: BezierVertex needs a preceding vertex")
		return
	}
	m := s.stack.Current()
	s.curves.BezierVertex(anchor,
		m.TransformPoint(Pt(x2, y2)),
		m.TransformPoint(Pt(x3, y3)),
		m.TransformPoint(Pt(x4, y4)),
		s.vertex)
}

// EndShape draws the collected vertices. ModeClose connects the last
// vertex of a polygon back to the first. A shape without vertices
// draws nothing.
func (s *Surface) EndShape(mode ShapeMode) {
	if s.shape == nil {
		Logger().Warn("hpgl: EndShape without BeginShape")
		return
	}
	if s.shape.Len() == 0 {
		Logger().Debug("hpgl: empty shape skipped")
	}
	switch s.kind {
	case ShapePoints:
		s.emitter.FlushPoints(s.shape)
	case ShapeLines:
		s.emitter.FlushLines(s.shape)
	default:
		s.emitter.FlushShape(s.shape, mode == ModeClose)
	}
	s.shape = nil
	s.curves.Reset()
}
