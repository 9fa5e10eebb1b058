package hpgl

import "math"

// Mapper converts host coordinates into plotter units.
//
// Host space has its origin at the top-left with Y growing downwards;
// plotter space has Y growing upwards. Device flips the vertical axis
// around the output height. With paper scaling enabled the host canvas
// height is stretched onto the paper height (plots are landscape, so
// height is the limiting extent); with it disabled host units are
// plotter units and the flip happens around the canvas height.
//
// Quantization floors the final coordinates to integers. It is applied
// only after all transform and scaling math.
type Mapper struct {
	paper        Paper
	width        float64
	height       float64
	paperScaling bool
	quantize     bool
	stack        *TransformStack
}

// NewMapper creates a mapper for a host canvas of the given size that
// reads the current transform from stack. A nil stack maps through the
// identity. Paper scaling starts enabled and quantization disabled.
func NewMapper(paper Paper, width, height float64, stack *TransformStack) *Mapper {
	return &Mapper{
		paper:        paper,
		width:        width,
		height:       height,
		paperScaling: true,
		stack:        stack,
	}
}

// Paper returns the active paper profile.
func (m *Mapper) Paper() Paper { return m.paper }

// SetPaper replaces the paper profile.
func (m *Mapper) SetPaper(p Paper) { m.paper = p }

// CanvasSize returns the host canvas size.
func (m *Mapper) CanvasSize() (width, height float64) { return m.width, m.height }

// SetPaperScaling enables or disables the paper-to-device ratio.
func (m *Mapper) SetPaperScaling(enabled bool) { m.paperScaling = enabled }

// SetQuantize enables or disables integer flooring of mapped values.
func (m *Mapper) SetQuantize(enabled bool) { m.quantize = enabled }

// Ratio returns the host-to-plotter scale factor.
func (m *Mapper) Ratio() float64 {
	if !m.paperScaling || m.height == 0 {
		return 1
	}
	return m.paper.Height / m.height
}

// flipHeight is the device height the Y axis is mirrored around.
func (m *Mapper) flipHeight() float64 {
	if m.paperScaling {
		return m.paper.Height
	}
	return m.height
}

// Transform returns the current transform applied by Map.
func (m *Mapper) Transform() Matrix {
	if m.stack == nil {
		return Identity()
	}
	return m.stack.Current()
}

// Map applies the current transform to a host point and converts it to
// plotter units.
func (m *Mapper) Map(p Point) Point {
	return m.Device(m.Transform().TransformPoint(p))
}

// Device converts an already transformed point to plotter units.
func (m *Mapper) Device(p Point) Point {
	r := m.Ratio()
	d := Point{X: r * p.X, Y: m.flipHeight() - r*p.Y}
	if m.quantize {
		d = d.Floor()
	}
	return d
}

// Extent converts a width and height to plotter units. The current
// transform is not applied.
func (m *Mapper) Extent(w, h float64) (float64, float64) {
	r := m.Ratio()
	w, h = r*w, r*h
	if m.quantize {
		w, h = math.Floor(w), math.Floor(h)
	}
	return w, h
}
