// Package hpgl compiles 2D drawing calls into HPGL plotter instructions.
//
// # Overview
//
// hpgl records a stream of drawing primitives (lines, rectangles,
// circles, ellipses, arcs, text and free-form shapes with curves) made
// in host canvas coordinates and writes the equivalent HPGL program for
// a pen plotter. Output is monochrome and stroke-only: there is no fill,
// color or pixel rendering.
//
// # Quick Start
//
//	import "github.com/gogpu/gg-hpgl"
//
//	s := hpgl.NewSurface(800, 600, hpgl.WithPaper(hpgl.PaperA3))
//	if err := s.BeginFile("out.hpgl"); err != nil {
//		log.Fatal(err)
//	}
//
//	s.DrawCircle(400, 300, 100)
//
//	s.BeginShape(hpgl.ShapePolygon)
//	s.Vertex(100, 100)
//	s.BezierVertex(200, 0, 300, 200, 400, 100)
//	s.EndShape(hpgl.ModeOpen)
//
//	if err := s.End(); err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
// The package is organized into:
//   - Surface: the drawing API and shape state machine
//   - TransformStack, Matrix: the current transformation matrix
//   - Mapper, Paper: host to plotter coordinate mapping
//   - CurveFlattener, VertexBuffer: curve tessellation and shape vertices
//   - Emitter: the HPGL session and instruction encoding
//
// # Coordinate System
//
// Host coordinates have the origin at the top-left with Y increasing
// down. The plotter origin is the bottom-left with Y increasing up, so
// every point is mirrored around the paper height. By default the
// canvas height is stretched onto the paper height; WithPaperScaling(false)
// treats host units as plotter units instead.
//
// Angles are in radians.
//
// # Logging
//
// Usage problems that are not errors, such as drawing outside a session,
// are reported through the package logger. It is silent until SetLogger
// is called.
package hpgl

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
