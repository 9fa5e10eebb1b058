// Command hpgldemo writes a demonstration HPGL plot.
package main

import (
	"flag"
	"log"
	"log/slog"
	"math"
	"os"

	hpgl "github.com/gogpu/gg-hpgl"
	"golang.org/x/image/math/f64"
)

func main() {
	var (
		width   = flag.Float64("width", 800, "canvas width")
		height  = flag.Float64("height", 600, "canvas height")
		paper   = flag.String("paper", "A4", "paper size")
		output  = flag.String("output", "demo.hpgl", "output file")
		verbose = flag.Bool("v", false, "log warnings and debug details")
	)
	flag.Parse()

	if *verbose {
		hpgl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	s := hpgl.NewSurface(*width, *height)
	if err := s.SetPaperSize(*paper); err != nil {
		log.Fatalf("Unknown paper %q (have %v): %v", *paper, hpgl.Papers(), err)
	}
	if err := s.BeginFile(*output); err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}

	drawFrame(s, *width, *height)
	drawShapesDemo(s)
	drawTransformDemo(s)
	drawCurveDemo(s)

	s.SetTextSize(24)
	s.DrawString("hpgldemo", 40, *height-40)

	if err := s.End(); err != nil {
		log.Fatalf("Failed to write: %v", err)
	}

	log.Printf("Plot saved to %s (%vx%v on %s)\n", *output, *width, *height, s.Paper().Name)
}

func drawFrame(s *hpgl.Surface, w, h float64) {
	s.SelectPen(1)
	s.DrawRectangle(10, 10, w-20, h-20)
}

func drawShapesDemo(s *hpgl.Surface) {
	s.SelectPen(2)
	s.DrawCircle(150, 150, 60)
	s.DrawEllipse(175, 200, 120, 60)
	s.DrawArc(350, 150, 100, 100, 0, math.Pi, hpgl.ArcPie)
	s.DrawArc(350, 150, 80, 80, math.Pi, 3*math.Pi/2, hpgl.ArcChord)
}

func drawTransformDemo(s *hpgl.Surface) {
	// Rotated squares
	s.SelectPen(3)
	for i := 0; i < 8; i++ {
		if err := s.Push(); err != nil {
			log.Fatal(err)
		}
		s.Translate(600, 150)
		s.Rotate(float64(i) * math.Pi / 16)
		s.DrawRectangle(-30, -30, 60, 60)
		if err := s.Pop(); err != nil {
			log.Fatal(err)
		}
	}

	// Sheared square
	if err := s.Push(); err != nil {
		log.Fatal(err)
	}
	s.TransformAff3(f64.Aff3{1, 0.5, 560, 0, 1, 260})
	s.DrawRectangle(0, 0, 60, 60)
	if err := s.Pop(); err != nil {
		log.Fatal(err)
	}
}

func drawCurveDemo(s *hpgl.Surface) {
	if err := s.Push(); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = s.Pop() }()
	s.Translate(150, 400)

	s.SelectPen(1)
	s.BeginShape(hpgl.ShapePolygon)
	s.Vertex(0, 0)
	s.BezierVertex(50, -50, 100, 50, 150, 0)
	s.BezierVertex(200, -30, 250, 30, 300, 0)
	s.EndShape(hpgl.ModeOpen)

	s.BeginShape(hpgl.ShapePolygon)
	for i := 0; i < 12; i++ {
		s.CurveVertex(float64(i)*25, 80+20*math.Sin(float64(i)))
	}
	s.EndShape(hpgl.ModeOpen)

	// Polygon star
	s.Translate(400, 0)
	const points = 5
	outerR, innerR := 60.0, 30.0
	s.BeginShape(hpgl.ShapePolygon)
	for i := 0; i < points*2; i++ {
		angle := float64(i) * math.Pi / points
		r := outerR
		if i%2 == 1 {
			r = innerR
		}
		s.Vertex(r*math.Cos(angle-math.Pi/2), r*math.Sin(angle-math.Pi/2))
	}
	s.EndShape(hpgl.ModeClose)
}
