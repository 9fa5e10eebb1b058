package hpgl

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
)

// newTestEmitter returns an open emitter on a 100x100 canvas whose
// host units are plotter units.
func newTestEmitter(t *testing.T) (*Emitter, *bytes.Buffer) {
	t.Helper()
	m := NewMapper(PaperA4, 100, 100, NewTransformStack(0))
	m.SetPaperScaling(false)
	e := NewEmitter(m)
	var buf bytes.Buffer
	if err := e.Open(&buf); err != nil {
		t.Fatal(err)
	}
	if err := e.w.Flush(); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	return e, &buf
}

// drawn flushes e and returns the lines written since the header.
func drawn(t *testing.T, e *Emitter, buf *bytes.Buffer) []string {
	t.Helper()
	if err := e.w.Flush(); err != nil {
		t.Fatal(err)
	}
	return lines(buf)
}

func TestEmitterSessionFraming(t *testing.T) {
	e := NewEmitter(NewMapper(PaperA4, 100, 100, nil))
	var buf bytes.Buffer

	if err := e.Open(&buf); err != nil {
		t.Fatal(err)
	}
	if err := e.Open(&buf); !errors.Is(err, ErrSessionOpen) {
		t.Errorf("second Open = %v, want ErrSessionOpen", err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("second Close = %v, want ErrSessionClosed", err)
	}
	diff(t, []string{"IN;SP1;", "PA0,0;SP;"}, lines(&buf))
}

func TestEmitterReopen(t *testing.T) {
	e := NewEmitter(NewMapper(PaperA4, 100, 100, nil))
	var first, second bytes.Buffer
	_ = e.Open(&first)
	_ = e.Close()
	if err := e.Open(&second); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_ = e.Close()
	diff(t, []string{"IN;SP1;", "PA0,0;SP;"}, lines(&second))
}

func TestEmitterOpenNilWriter(t *testing.T) {
	e := NewEmitter(NewMapper(PaperA4, 100, 100, nil))
	if err := e.Open(nil); !errors.Is(err, ErrNilWriter) {
		t.Errorf("Open(nil) = %v, want ErrNilWriter", err)
	}
	if e.IsOpen() {
		t.Error("emitter open after failed Open")
	}
}

func TestEmitterClosedCallsWarnWithoutOutput(t *testing.T) {
	logs := captureLog(t)
	e := NewEmitter(NewMapper(PaperA4, 100, 100, nil))

	calls := map[string]func(){
		"SelectPen":    func() { e.SelectPen(2) },
		"SetSpeed":     func() { e.SetSpeed(10) },
		"Line":         func() { e.Line(Pt(0, 0), Pt(1, 1)) },
		"Point":        func() { e.Point(Pt(0, 0)) },
		"Rect":         func() { e.Rect(0, 0, 1, 1) },
		"Ellipse":      func() { e.Ellipse(Pt(0, 0), 1, 2) },
		"Arc":          func() { e.Arc(Pt(0, 0), 1, 1, 0, 1, ArcOpen) },
		"Text":         func() { e.Text("x", Pt(0, 0)) },
		"TextSize":     func() { e.TextSize(12) },
		"WriteCommand": func() { e.WriteCommand("IN;") },
	}
	for name, call := range calls {
		logs.Reset()
		call()
		if !strings.Contains(logs.String(), "op="+name) {
			t.Errorf("%s while closed logged %q, want a warning naming the op", name, logs.String())
		}
	}
	if e.IsOpen() {
		t.Error("emitter reports open")
	}
}

func TestEmitterPenAndSpeed(t *testing.T) {
	e, buf := newTestEmitter(t)
	e.SelectPen(2)
	e.SetSpeed(38)
	e.WriteCommand("LT;")
	diff(t, []string{"SP2;", "VS38;", "LT;"}, drawn(t, e, buf))
}

func TestEmitterLineFlipsY(t *testing.T) {
	e, buf := newTestEmitter(t)
	e.Line(Pt(0, 0), Pt(100, 100))
	diff(t, []string{"PU0,100;", "PD100,0;", "PU;"}, drawn(t, e, buf))
}

func TestEmitterMoveLinePenUp(t *testing.T) {
	e, buf := newTestEmitter(t)
	e.MoveTo(Pt(10, 10))
	e.LineTo(Pt(20, 30.5))
	e.PenUp()
	diff(t, []string{"PU10,90;", "PD20,69.5;", "PU;"}, drawn(t, e, buf))
}

func TestEmitterPoint(t *testing.T) {
	e, buf := newTestEmitter(t)
	e.Point(Pt(25, 75))
	diff(t, []string{"PU25,25;", "PD;", "PU;"}, drawn(t, e, buf))
}

func TestEmitterRect(t *testing.T) {
	e, buf := newTestEmitter(t)
	e.Rect(10, 20, 30, 40)
	diff(t, []string{"PU10,80;", "PD30,80,30,60,10,60,10,80;", "PU;"}, drawn(t, e, buf))
}

func TestEmitterCircle(t *testing.T) {
	tests := []struct {
		name string
		draw func(e *Emitter)
	}{
		{"circle", func(e *Emitter) { e.Circle(Pt(50, 50), 10) }},
		{"ellipse w == h", func(e *Emitter) { e.Ellipse(Pt(50, 50), 20, 20) }},
		{"ellipse within tolerance", func(e *Emitter) { e.Ellipse(Pt(50, 50), 20, 20.05) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, buf := newTestEmitter(t)
			tt.draw(e)
			diff(t, []string{"PU50,50;", "CI10,5;", "PU;"}, drawn(t, e, buf))
		})
	}
}

func TestEmitterEllipsePolygon(t *testing.T) {
	for _, chord := range []float64{5, 7, 45, 100, 2.5} {
		t.Run(strconv.FormatFloat(chord, 'f', -1, 64), func(t *testing.T) {
			e, buf := newTestEmitter(t)
			e.SetChordAngle(chord)
			e.Ellipse(Pt(50, 50), 40, 20)
			got := drawn(t, e, buf)

			want := int(math.Ceil(360 / chord))
			if pd := len(got) - 2; pd != want {
				t.Errorf("chord %v: %d pen-down steps, want %d", chord, pd, want)
			}
			if got[0] != "PU70,50;" {
				t.Errorf("start = %q, want PU70,50;", got[0])
			}
			if got[len(got)-2] != "PD70,50;" {
				t.Errorf("closing step = %q, want PD70,50;", got[len(got)-2])
			}
			if got[len(got)-1] != "PU;" {
				t.Errorf("last = %q, want PU;", got[len(got)-1])
			}
			for _, l := range got[1 : len(got)-1] {
				if !strings.HasPrefix(l, "PD") || strings.Contains(l, "CI") {
					t.Errorf("unexpected step %q", l)
				}
			}
		})
	}
}

func TestEmitterEllipseClampsNearZero(t *testing.T) {
	e, buf := newTestEmitter(t)
	e.SetChordAngle(90)
	// Samples at 90 and 270 degrees land on x = 0 in host space.
	e.Ellipse(Pt(0, 50), 40, 20)
	diff(t, []string{
		"PU20,50;",
		"PD0.01,40;",
		"PD-20,50;",
		"PD0.01,60;",
		"PD20,50;",
		"PU;",
	}, drawn(t, e, buf))
}

func TestEmitterArc(t *testing.T) {
	tests := []struct {
		mode ArcMode
		tail []string
	}{
		{ArcOpen, []string{"PU;"}},
		{ArcChord, []string{"PD60,50;", "PU;"}},
		{ArcPie, []string{"PD50,50;", "PD60,50;", "PU;"}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			e, buf := newTestEmitter(t)
			e.Arc(Pt(50, 50), 20, 20, 0, math.Pi, tt.mode)
			got := drawn(t, e, buf)

			if len(got) != 3+len(tt.tail) {
				t.Fatalf("got %q", got)
			}
			diff(t, []string{"SP1;", "PU60,50;"}, got[:2])
			checkArcLine(t, got[2], 50, 50, -180, 5)
			diff(t, tt.tail, got[3:])
		})
	}
}

func checkArcLine(t *testing.T, l string, cx, cy, sweep, chord float64) {
	t.Helper()
	rest, ok := strings.CutPrefix(l, "PD;AA")
	if !ok || !strings.HasSuffix(rest, ";") {
		t.Fatalf("arc line %q", l)
	}
	fields := strings.Split(strings.TrimSuffix(rest, ";"), ",")
	want := []float64{cx, cy, sweep, chord}
	if len(fields) != len(want) {
		t.Fatalf("arc line %q has %d fields", l, len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			t.Fatalf("arc field %q: %v", f, err)
		}
		if math.Abs(v-want[i]) > 1e-9 {
			t.Errorf("arc field %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestEmitterArcUsesSelectedPen(t *testing.T) {
	e, buf := newTestEmitter(t)
	e.SelectPen(3)
	e.Arc(Pt(50, 50), 20, 20, 0, math.Pi/2, ArcOpen)
	got := drawn(t, e, buf)
	if got[1] != "SP3;" {
		t.Errorf("arc pen select = %q, want SP3;", got[1])
	}
}

func TestEmitterEllipticalArcIsNoop(t *testing.T) {
	e, buf := newTestEmitter(t)
	e.Arc(Pt(50, 50), 20, 30, 0, math.Pi, ArcPie)
	if got := drawn(t, e, buf); len(got) != 0 {
		t.Errorf("elliptical arc wrote %q", got)
	}
}

func TestEmitterText(t *testing.T) {
	e, buf := newTestEmitter(t)
	e.Text("Héllo", Pt(10, 10))
	diff(t, []string{"PU10,90;", "DT\x03;", "LBHello\x03;"}, drawn(t, e, buf))
}

func TestEmitterTextCustomTerminator(t *testing.T) {
	e, buf := newTestEmitter(t)
	e.SetTerminator('~')
	e.Text("a~b", Pt(0, 100))
	diff(t, []string{"PU0,0;", "DT~;", "LBa?b~;"}, drawn(t, e, buf))
}

func TestEmitterTextSize(t *testing.T) {
	e, buf := newTestEmitter(t)
	e.TextSize(20)

	h := 20 * PaperA4.HeightMM / 100 / 10 / 2
	w := h * (0.19 / 0.27)
	want := "SI" + strconv.FormatFloat(w, 'f', -1, 64) + ",2.1;"
	diff(t, []string{want}, drawn(t, e, buf))
}

func TestEmitterFlushShape(t *testing.T) {
	for _, closed := range []bool{false, true} {
		e, buf := newTestEmitter(t)
		b := NewVertexBuffer(2)
		for _, p := range []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)} {
			b.Append(p)
		}
		e.FlushShape(b, closed)

		want := []string{"PU0,100;", "PD10,100;", "PD10,90;"}
		if closed {
			want = append(want, "PD0,100;")
		}
		want = append(want, "PU;")
		diff(t, want, drawn(t, e, buf))
		if b.Len() != 0 || b.Cap() != 0 {
			t.Errorf("closed=%v: buffer holds %d vertices, capacity %d after flush", closed, b.Len(), b.Cap())
		}
	}
}

func TestEmitterFlushEmptyShape(t *testing.T) {
	e, buf := newTestEmitter(t)
	e.FlushShape(NewVertexBuffer(4), true)
	if got := drawn(t, e, buf); len(got) != 0 {
		t.Errorf("empty shape wrote %q", got)
	}
}

func TestEmitterFlushPointsAndLines(t *testing.T) {
	e, buf := newTestEmitter(t)
	b := NewVertexBuffer(4)
	b.Append(Pt(1, 1))
	b.Append(Pt(2, 2))
	b.Append(Pt(3, 3))
	e.FlushPoints(b)
	if b.Len() != 0 || b.Cap() != 0 {
		t.Fatalf("FlushPoints left %d vertices, capacity %d", b.Len(), b.Cap())
	}
	b.Append(Pt(1, 1))
	b.Append(Pt(2, 2))
	b.Append(Pt(3, 3))
	e.FlushLines(b)

	diff(t, []string{
		"PU1,99;", "PD;", "PU;",
		"PU2,98;", "PD;", "PU;",
		"PU3,97;", "PD;", "PU;",
		"PU1,99;", "PD2,98;", "PU;",
	}, drawn(t, e, buf))
}

func TestEmitterQuantized(t *testing.T) {
	e, buf := newTestEmitter(t)
	e.mapper.SetQuantize(true)
	e.Line(Pt(0.4, 0.4), Pt(99.9, 50.5))
	diff(t, []string{"PU0,99;", "PD99,49;", "PU;"}, drawn(t, e, buf))
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestEmitterWriteErrorIsReportedOnClose(t *testing.T) {
	boom := errors.New("disk full")
	e := NewEmitter(NewMapper(PaperA4, 100, 100, nil))
	if err := e.Open(failingWriter{boom}); err != nil {
		t.Fatal(err)
	}
	e.Line(Pt(0, 0), Pt(1, 1))
	err := e.Close()
	if !errors.Is(err, boom) {
		t.Fatalf("Close = %v, want wrapped %v", err, boom)
	}
	if e.IsOpen() {
		t.Error("emitter still open after failed Close")
	}
}

func TestEmitterSetChordAngleIgnoresInvalid(t *testing.T) {
	e := NewEmitter(NewMapper(PaperA4, 100, 100, nil))
	e.SetChordAngle(0)
	e.SetChordAngle(-3)
	e.SetChordAngle(math.NaN())
	if e.ChordAngle() != DefaultChordAngle {
		t.Errorf("ChordAngle() = %v, want %v", e.ChordAngle(), DefaultChordAngle)
	}
	e.SetChordAngle(7.5)
	if e.ChordAngle() != 7.5 {
		t.Errorf("ChordAngle() = %v, want 7.5", e.ChordAngle())
	}
}

func TestAppendNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{100, "100"},
		{-3, "-3"},
		{0.5, "0.5"},
		{7721.25, "7721.25"},
		{1e21, "1000000000000000000000"},
		{1e-7, "0.0000001"},
	}
	for _, tt := range tests {
		if got := string(appendNumber(nil, tt.v)); got != tt.want {
			t.Errorf("appendNumber(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
