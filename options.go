package hpgl

// SurfaceOption configures a Surface during creation.
// Use functional options to customize Surface behavior.
//
// Example:
//
//	// A3 paper, integer coordinates
//	s := hpgl.NewSurface(800, 600, hpgl.WithPaper(hpgl.PaperA3), hpgl.WithQuantize(true))
type SurfaceOption func(*surfaceOptions)

// surfaceOptions holds optional configuration for Surface creation.
type surfaceOptions struct {
	paper         *Paper
	paperScaling  bool
	quantize      bool
	chordAngle    float64
	curveDetail   int
	bezierDetail  int
	tightness     float64
	stackDepth    int
	shapeCapacity int
	terminator    byte
	hasTerminator bool
}

// defaultOptions returns the default surface options.
func defaultOptions() surfaceOptions {
	return surfaceOptions{
		paper:         nil, // DefaultPaper with a warning when the session starts
		paperScaling:  true,
		chordAngle:    DefaultChordAngle,
		curveDetail:   DefaultCurveDetail,
		bezierDetail:  DefaultBezierDetail,
		stackDepth:    DefaultStackDepth,
		shapeCapacity: DefaultShapeCapacity,
	}
}

// WithPaper selects the paper profile.
func WithPaper(p Paper) SurfaceOption {
	return func(o *surfaceOptions) {
		o.paper = &p
	}
}

// WithPaperScaling controls whether the canvas height is stretched onto
// the paper height. When disabled, host units are plotter units and the
// Y axis flips around the canvas height.
func WithPaperScaling(enabled bool) SurfaceOption {
	return func(o *surfaceOptions) {
		o.paperScaling = enabled
	}
}

// WithQuantize floors every emitted coordinate to an integer.
func WithQuantize(enabled bool) SurfaceOption {
	return func(o *surfaceOptions) {
		o.quantize = enabled
	}
}

// WithChordAngle sets the chord angle in degrees for circles, ellipses
// and arcs.
func WithChordAngle(deg float64) SurfaceOption {
	return func(o *surfaceOptions) {
		o.chordAngle = deg
	}
}

// WithCurveDetail sets the number of segments per CurveVertex span.
func WithCurveDetail(n int) SurfaceOption {
	return func(o *surfaceOptions) {
		o.curveDetail = n
	}
}

// WithBezierDetail sets the number of segments per BezierVertex call.
func WithBezierDetail(n int) SurfaceOption {
	return func(o *surfaceOptions) {
		o.bezierDetail = n
	}
}

// WithCurveTightness sets the cardinal spline tightness used by
// CurveVertex; 0 is Catmull-Rom.
func WithCurveTightness(s float64) SurfaceOption {
	return func(o *surfaceOptions) {
		o.tightness = s
	}
}

// WithStackDepth sets how many Push calls may be outstanding.
func WithStackDepth(n int) SurfaceOption {
	return func(o *surfaceOptions) {
		o.stackDepth = n
	}
}

// WithShapeCapacity sets the initial vertex capacity of each shape.
func WithShapeCapacity(n int) SurfaceOption {
	return func(o *surfaceOptions) {
		o.shapeCapacity = n
	}
}

// WithLabelTerminator sets the character that ends label text.
// The default is ETX (0x03).
func WithLabelTerminator(b byte) SurfaceOption {
	return func(o *surfaceOptions) {
		o.terminator = b
		o.hasTerminator = true
	}
}
