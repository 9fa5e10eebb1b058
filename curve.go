package hpgl

// Default tessellation parameters.
const (
	DefaultCurveDetail  = 20
	DefaultBezierDetail = 20
)

// basis is a 4x4 row-major matrix used for cubic spline evaluation.
type basis [4][4]float64

// mul returns a * b.
func (a basis) mul(b basis) basis {
	var r basis
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j] + a[i][3]*b[3][j]
		}
	}
	return r
}

// bezierBasis maps cubic Bezier control points to polynomial coefficients.
var bezierBasis = basis{
	{-1, 3, -3, 1},
	{3, -6, 3, 0},
	{-3, 3, 0, 0},
	{1, 0, 0, 0},
}

// catmullRomBasis returns the cardinal spline basis for the given
// tightness. Tightness 0 is the Catmull-Rom spline.
func catmullRomBasis(s float64) basis {
	return basis{
		{(s - 1) / 2, (s + 3) / 2, (-3 - s) / 2, (1 - s) / 2},
		{1 - s, (-5 - s) / 2, s + 2, (s - 1) / 2},
		{(s - 1) / 2, 0, (1 - s) / 2, 0},
		{0, 1, 0, 0},
	}
}

// forwardDifferences returns the matrix turning polynomial coefficients
// into the start value and first, second and third forward differences
// for n equal parameter steps.
func forwardDifferences(n int) basis {
	f := 1 / float64(n)
	ff := f * f
	fff := ff * f
	return basis{
		{0, 0, 0, 1},
		{fff, ff, f, 0},
		{6 * fff, 2 * ff, 0, 0},
		{6 * fff, 0, 0, 0},
	}
}

// differences holds the forward differences of one axis.
type differences struct {
	d1, d2, d3 float64
}

func (m *basis) differences(c0, c1, c2, c3 float64) differences {
	return differences{
		d1: m[1][0]*c0 + m[1][1]*c1 + m[1][2]*c2 + m[1][3]*c3,
		d2: m[2][0]*c0 + m[2][1]*c1 + m[2][2]*c2 + m[2][3]*c3,
		d3: m[3][0]*c0 + m[3][1]*c1 + m[3][2]*c2 + m[3][3]*c3,
	}
}

// step advances v by one parameter step.
func (d *differences) step(v float64) float64 {
	v += d.d1
	d.d1 += d.d2
	d.d2 += d.d3
	return v
}

// CurveFlattener turns Catmull-Rom and cubic Bezier spans into straight
// segments by forward differencing. Each span yields a fixed number of
// vertices given by the curve and bezier detail settings.
type CurveFlattener struct {
	curveDetail  int
	bezierDetail int
	tightness    float64

	curveDraw  basis
	bezierDraw basis

	window [4]Point
	count  int
}

// NewCurveFlattener creates a flattener with the given detail counts.
// Non-positive counts select the defaults.
func NewCurveFlattener(curveDetail, bezierDetail int) *CurveFlattener {
	f := &CurveFlattener{}
	f.SetCurveDetail(curveDetail)
	f.SetBezierDetail(bezierDetail)
	return f
}

// SetCurveDetail sets the number of segments per Catmull-Rom span.
func (f *CurveFlattener) SetCurveDetail(n int) {
	if n <= 0 {
		n = DefaultCurveDetail
	}
	f.curveDetail = n
	f.curveDraw = forwardDifferences(n).mul(catmullRomBasis(f.tightness))
}

// SetBezierDetail sets the number of segments per Bezier span.
func (f *CurveFlattener) SetBezierDetail(n int) {
	if n <= 0 {
		n = DefaultBezierDetail
	}
	f.bezierDetail = n
	f.bezierDraw = forwardDifferences(n).mul(bezierBasis)
}

// SetTightness sets the cardinal spline tightness; 0 is Catmull-Rom.
func (f *CurveFlattener) SetTightness(s float64) {
	f.tightness = s
	f.curveDraw = forwardDifferences(f.curveDetail).mul(catmullRomBasis(s))
}

// CurveDetail returns the number of segments per Catmull-Rom span.
func (f *CurveFlattener) CurveDetail() int { return f.curveDetail }

// BezierDetail returns the number of segments per Bezier span.
func (f *CurveFlattener) BezierDetail() int { return f.bezierDetail }

// Count returns the number of curve points accumulated since the last
// reset.
func (f *CurveFlattener) Count() int { return f.count }

// Reset forgets accumulated curve points.
func (f *CurveFlattener) Reset() { f.count = 0 }

// CurveVertex accumulates a Catmull-Rom control point. Once four points
// are present, every call emits exactly CurveDetail stepped points along
// the span between the middle two. The span's starting point is not
// emitted.
//
// emit may call Reset (a plain vertex append does); the accumulated
// count is restored afterwards so further points keep extending the curve.
func (f *CurveFlattener) CurveVertex(p Point, emit func(Point)) {
	if f.count < len(f.window) {
		f.window[f.count] = p
	} else {
		copy(f.window[:], f.window[1:])
		f.window[3] = p
	}
	f.count++
	if f.count < 4 {
		return
	}

	w := f.window
	xd := f.curveDraw.differences(w[0].X, w[1].X, w[2].X, w[3].X)
	yd := f.curveDraw.differences(w[0].Y, w[1].Y, w[2].Y, w[3].Y)

	saved := f.count
	x, y := w[1].X, w[1].Y
	for j := 0; j < f.curveDetail; j++ {
		x = xd.step(x)
		y = yd.step(y)
		emit(Point{X: x, Y: y})
	}
	f.count = saved
}

// BezierVertex emits BezierDetail points of the cubic Bezier from
// anchor through the control points c1 and c2 to end.
func (f *CurveFlattener) BezierVertex(anchor, c1, c2, end Point, emit func(Point)) {
	xd := f.bezierDraw.differences(anchor.X, c1.X, c2.X, end.X)
	yd := f.bezierDraw.differences(anchor.Y, c1.Y, c2.Y, end.Y)

	x, y := anchor.X, anchor.Y
	for j := 0; j < f.bezierDetail; j++ {
		x = xd.step(x)
		y = yd.step(y)
		emit(Point{X: x, Y: y})
	}
}
