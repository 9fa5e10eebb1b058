package hpgl

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/gogpu/gg-hpgl/internal/label"
)

// DefaultChordAngle is the HPGL default chord angle in degrees.
const DefaultChordAngle = 5.0

// circleTolerance is the width/height difference below which an
// ellipse or arc is treated as circular.
const circleTolerance = 0.1

// axisEpsilon is the magnitude below which sampled ellipse coordinates
// are pushed away from zero. Some plotters misread a bare 0.
const axisEpsilon = 0.01

// Header and footer instruction lines framing every session.
const (
	sessionHeader = "IN;SP1;"
	sessionFooter = "PA0,0;SP;"
)

// Emitter writes HPGL instructions for drawing primitives.
//
// A session starts with Open and ends with Close. Outside a session
// every drawing call logs a warning and writes nothing. The sink is
// borrowed: Close flushes it but never closes it.
//
// Write errors are sticky. After the first failure nothing else is
// written and Close reports the error.
type Emitter struct {
	w      *bufio.Writer
	mapper *Mapper
	open   bool
	err    error

	chordAngle float64
	terminator byte
	pen        int

	line []byte
}

// NewEmitter creates a closed emitter mapping coordinates through m.
func NewEmitter(m *Mapper) *Emitter {
	return &Emitter{
		mapper:     m,
		chordAngle: DefaultChordAngle,
		terminator: label.ETX,
		pen:        1,
	}
}

// Open starts a session on w and writes the header.
func (e *Emitter) Open(w io.Writer) error {
	if e.open {
		return ErrSessionOpen
	}
	if w == nil {
		return ErrNilWriter
	}
	e.w = bufio.NewWriter(w)
	e.open = true
	e.err = nil
	e.pen = 1
	e.writeLine(sessionHeader)
	Logger().Debug("hpgl: session opened", "paper", e.mapper.Paper().Name)
	return e.err
}

// Close writes the footer, flushes the sink and ends the session.
func (e *Emitter) Close() error {
	if !e.open {
		return ErrSessionClosed
	}
	e.writeLine(sessionFooter)
	if e.err == nil {
		e.err = e.w.Flush()
	}
	err := e.err
	e.open = false
	e.w = nil
	e.err = nil
	Logger().Debug("hpgl: session closed")
	if err != nil {
		return fmt.Errorf("hpgl: write output: %w", err)
	}
	return nil
}

// IsOpen reports whether a session is active.
func (e *Emitter) IsOpen() bool { return e.open }

// Err returns the first write error of the current session.
func (e *Emitter) Err() error { return e.err }

// ChordAngle returns the chord angle in degrees.
func (e *Emitter) ChordAngle() float64 { return e.chordAngle }

// SetChordAngle sets the angular step, in degrees, used to approximate
// circles, ellipses and arcs. Non-positive angles are ignored.
func (e *Emitter) SetChordAngle(deg float64) {
	if deg <= 0 || math.IsNaN(deg) {
		Logger().Warn("hpgl: ignoring non-positive chord angle", "angle", deg)
		return
	}
	e.chordAngle = deg
}

// SetTerminator sets the character ending label text.
func (e *Emitter) SetTerminator(b byte) { e.terminator = b }

// ready reports whether op may write. It warns when no session is open.
func (e *Emitter) ready(op string) bool {
	if !e.open {
		Logger().Warn("hpgl: call outside an open session has no effect", "op", op)
		return false
	}
	return e.err == nil
}

// SelectPen selects plotter pen n.
func (e *Emitter) SelectPen(n int) {
	if !e.ready("SelectPen") {
		return
	}
	e.pen = n
	e.writeLine("SP" + strconv.Itoa(n) + ";")
}

// SetSpeed sets the pen-down velocity.
func (e *Emitter) SetSpeed(v int) {
	if !e.ready("SetSpeed") {
		return
	}
	e.writeLine("VS" + strconv.Itoa(v) + ";")
}

// WriteCommand writes s as one raw line.
func (e *Emitter) WriteCommand(s string) {
	if !e.ready("WriteCommand") {
		return
	}
	e.writeLine(s)
}

// MoveTo lifts the pen and moves to p.
func (e *Emitter) MoveTo(p Point) {
	if !e.ready("MoveTo") {
		return
	}
	e.penUp(e.mapper.Map(p))
}

// LineTo draws from the current position to p.
func (e *Emitter) LineTo(p Point) {
	if !e.ready("LineTo") {
		return
	}
	e.penDown(e.mapper.Map(p))
}

// PenUp lifts the pen without moving.
func (e *Emitter) PenUp() {
	if !e.ready("PenUp") {
		return
	}
	e.penUp()
}

// Point marks a single dot at p.
func (e *Emitter) Point(p Point) {
	if !e.ready("Point") {
		return
	}
	e.dot(e.mapper.Map(p))
}

// Line draws a segment from a to b.
func (e *Emitter) Line(a, b Point) {
	if !e.ready("Line") {
		return
	}
	e.segment(e.mapper.Map(a), e.mapper.Map(b))
}

// Rect draws the rectangle with opposite corners (x1,y1) and (x2,y2).
func (e *Emitter) Rect(x1, y1, x2, y2 float64) {
	if !e.ready("Rect") {
		return
	}
	m := e.mapper
	c1 := m.Map(Pt(x1, y1))
	e.penUp(c1)
	e.penDown(m.Map(Pt(x2, y1)), m.Map(Pt(x2, y2)), m.Map(Pt(x1, y2)), c1)
	e.penUp()
}

// Circle draws a circle of radius r around c using the plotter's
// circle instruction.
func (e *Emitter) Circle(c Point, r float64) {
	if !e.ready("Circle") {
		return
	}
	e.circle(c, r)
}

func (e *Emitter) circle(c Point, r float64) {
	rd, _ := e.mapper.Extent(r, r)
	e.penUp(e.mapper.Map(c))
	e.writeInstr("CI", rd, e.chordAngle)
	e.penUp()
}

// Ellipse draws an ellipse of width w and height h centered at c. Near
// circular ellipses use the circle instruction; others are traced with
// one chord per chord angle step.
func (e *Emitter) Ellipse(c Point, w, h float64) {
	if !e.ready("Ellipse") {
		return
	}
	if math.Abs(w-h) < circleTolerance {
		e.circle(c, w/2)
		return
	}

	start := e.mapper.Map(Pt(c.X+w/2, c.Y))
	e.penUp(start)
	n := int(math.Ceil(360 / e.chordAngle))
	for i := 1; i < n; i++ {
		t := float64(i) * e.chordAngle * math.Pi / 180
		sin, cos := math.Sincos(t)
		x := c.X + w/2*cos
		y := c.Y + h/2*sin
		if math.Abs(x) < axisEpsilon {
			x = axisEpsilon
		}
		if math.Abs(y) < axisEpsilon {
			y = axisEpsilon
		}
		e.penDown(e.mapper.Map(Pt(x, y)))
	}
	e.penDown(start)
	e.penUp()
}

// Arc draws the circular arc of diameter w centered at c from start to
// stop (radians, clockwise on screen). Elliptical arcs (w != h) are not
// supported by the plotter instruction and are skipped.
func (e *Emitter) Arc(c Point, w, h, start, stop float64, mode ArcMode) {
	if !e.ready("Arc") {
		return
	}
	if math.Abs(w-h) >= circleTolerance {
		Logger().Debug("hpgl: elliptical arc skipped", "w", w, "h", h)
		return
	}

	r := w / 2
	sin, cos := math.Sincos(start)
	from := e.mapper.Map(Pt(c.X+r*cos, c.Y+r*sin))
	center := e.mapper.Map(c)

	// Screen angles run clockwise; the plotter's run counter-clockwise.
	startDeg := 360 - start*180/math.Pi
	stopDeg := 360 - stop*180/math.Pi

	e.writeLine("SP" + strconv.Itoa(e.pen) + ";")
	e.penUp(from)
	e.line = e.line[:0]
	e.instr("PD")
	e.instr("AA", center.X, center.Y, stopDeg-startDeg, e.chordAngle)
	e.flushLine()

	switch mode {
	case ArcChord:
		e.penDown(from)
	case ArcPie:
		e.penDown(center)
		e.penDown(from)
	}
	e.penUp()
}

// Text places s with its origin at p. The label is folded to the
// plotter's character set.
func (e *Emitter) Text(s string, p Point) {
	if !e.ready("Text") {
		return
	}
	e.penUp(e.mapper.Map(p))
	term := string([]byte{e.terminator})
	e.writeLine("DT" + term + ";")
	e.writeLine("LB" + label.Sanitize(s, e.terminator) + term + ";")
}

// Character cell proportions of the plotter's stroke font, in cm.
const (
	charWidthCM  = 0.19
	charHeightCM = 0.27
)

// TextSize sets the character size for text px host units high.
func (e *Emitter) TextSize(px float64) {
	if !e.ready("TextSize") {
		return
	}
	_, canvasHeight := e.mapper.CanvasSize()
	if canvasHeight == 0 {
		Logger().Warn("hpgl: text size needs a canvas height")
		return
	}
	h := px * e.mapper.Paper().HeightMM / canvasHeight / 10 / 2
	w := h * (charWidthCM / charHeightCM)
	e.writeInstr("SI", w, h)
}

// FlushShape ends buf and draws its vertices as a polyline. The
// vertices must already be transformed; only the device mapping is
// applied. When closed is set a final segment returns to the first
// vertex.
func (e *Emitter) FlushShape(buf *VertexBuffer, closed bool) {
	pts := buf.End()
	if !e.ready("FlushShape") || len(pts) == 0 {
		return
	}
	first := e.mapper.Device(pts[0])
	e.penUp(first)
	for _, p := range pts[1:] {
		e.penDown(e.mapper.Device(p))
	}
	if closed {
		e.penDown(first)
	}
	e.penUp()
}

// FlushPoints ends buf and draws every vertex as a dot.
func (e *Emitter) FlushPoints(buf *VertexBuffer) {
	pts := buf.End()
	if !e.ready("FlushPoints") {
		return
	}
	for _, p := range pts {
		e.dot(e.mapper.Device(p))
	}
}

// FlushLines ends buf and draws a segment for each vertex pair.
func (e *Emitter) FlushLines(buf *VertexBuffer) {
	pts := buf.End()
	if !e.ready("FlushLines") {
		return
	}
	for i := 0; i+1 < len(pts); i += 2 {
		e.segment(e.mapper.Device(pts[i]), e.mapper.Device(pts[i+1]))
	}
}

// dot and segment take device coordinates.

func (e *Emitter) dot(p Point) {
	e.penUp(p)
	e.writeLine("PD;")
	e.penUp()
}

func (e *Emitter) segment(a, b Point) {
	e.penUp(a)
	e.penDown(b)
	e.penUp()
}

func (e *Emitter) penUp(pts ...Point) {
	e.writeInstr("PU", coords(pts)...)
}

func (e *Emitter) penDown(pts ...Point) {
	e.writeInstr("PD", coords(pts)...)
}

func coords(pts []Point) []float64 {
	if len(pts) == 0 {
		return nil
	}
	v := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		v = append(v, p.X, p.Y)
	}
	return v
}

// writeInstr writes a line holding a single instruction.
func (e *Emitter) writeInstr(op string, args ...float64) {
	e.line = e.line[:0]
	e.instr(op, args...)
	e.flushLine()
}

// instr appends op with comma separated args and a ';' to the line.
func (e *Emitter) instr(op string, args ...float64) {
	e.line = append(e.line, op...)
	for i, v := range args {
		if i > 0 {
			e.line = append(e.line, ',')
		}
		e.line = appendNumber(e.line, v)
	}
	e.line = append(e.line, ';')
}

func (e *Emitter) flushLine() {
	e.line = append(e.line, '\n')
	e.write(e.line)
}

func (e *Emitter) writeLine(s string) {
	e.line = append(e.line[:0], s...)
	e.flushLine()
}

func (e *Emitter) write(b []byte) {
	if e.err != nil {
		return
	}
	if _, err := e.w.Write(b); err != nil {
		e.err = err
	}
}

// appendNumber formats v in plain decimal with '.' as the separator and
// the fewest digits that round-trip. Negative zero prints as 0.
func appendNumber(b []byte, v float64) []byte {
	if v == 0 {
		v = 0
	}
	return strconv.AppendFloat(b, v, 'f', -1, 64)
}
