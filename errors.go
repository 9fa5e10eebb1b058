package hpgl

import "errors"

// Sentinel errors for the hpgl package.
var (
	// ErrStackOverflow is returned by Push when the transform stack is full.
	ErrStackOverflow = errors.New("hpgl: transform stack overflow")

	// ErrStackUnderflow is returned by Pop when no Push is outstanding.
	ErrStackUnderflow = errors.New("hpgl: transform stack underflow")

	// ErrSessionOpen is returned when a session is started twice or the
	// paper is changed while a session is open.
	ErrSessionOpen = errors.New("hpgl: session already open")

	// ErrSessionClosed is returned when closing a session that is not open.
	ErrSessionClosed = errors.New("hpgl: session not open")

	// ErrNilWriter is returned when a session is started on a nil writer.
	ErrNilWriter = errors.New("hpgl: nil writer")

	// ErrSinkCreate wraps failures to create an output file.
	ErrSinkCreate = errors.New("hpgl: cannot create output")

	// ErrUnknownPaper is returned for paper names that were never registered.
	ErrUnknownPaper = errors.New("hpgl: unknown paper size")
)
