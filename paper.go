package hpgl

import (
	"fmt"
	"sort"
	"sync"
)

// Paper describes a plotter medium: the hard-clip extents in plotter
// units and the physical sheet size in millimeters. Plots are always
// landscape, so Width >= Height for the built-in profiles.
type Paper struct {
	Name     string
	Width    float64 // plotter units
	Height   float64 // plotter units
	WidthMM  float64
	HeightMM float64
}

// Built-in paper profiles (HP 7475A hard-clip limits).
var (
	PaperA4 = Paper{Name: "A4", Width: 11040, Height: 7721, WidthMM: 297, HeightMM: 210}
	PaperA3 = Paper{Name: "A3", Width: 16158, Height: 11040, WidthMM: 420, HeightMM: 297}
	PaperA  = Paper{Name: "A", Width: 10365, Height: 7962, WidthMM: 279, HeightMM: 216}
	PaperB  = Paper{Name: "B", Width: 16640, Height: 10365, WidthMM: 432, HeightMM: 279}
)

// DefaultPaper is used when a session starts without a paper size.
var DefaultPaper = PaperA4

var (
	paperMu sync.RWMutex
	papers  = map[string]Paper{}
)

func init() {
	for _, p := range []Paper{PaperA4, PaperA3, PaperA, PaperB} {
		RegisterPaper(p)
	}
}

// RegisterPaper makes a paper profile available to LookupPaper and
// Surface.SetPaperSize under p.Name.
//
// RegisterPaper panics if the name is empty, the extents are not
// positive, or a profile with the same name is already registered.
func RegisterPaper(p Paper) {
	paperMu.Lock()
	defer paperMu.Unlock()

	if p.Name == "" {
		panic("hpgl: RegisterPaper with empty name")
	}
	if p.Width <= 0 || p.Height <= 0 || p.WidthMM <= 0 || p.HeightMM <= 0 {
		panic("hpgl: RegisterPaper with non-positive extents for " + p.Name)
	}
	if _, dup := papers[p.Name]; dup {
		panic("hpgl: RegisterPaper called twice for " + p.Name)
	}
	papers[p.Name] = p
}

// unregisterPaper removes a profile. Used by tests.
func unregisterPaper(name string) {
	paperMu.Lock()
	defer paperMu.Unlock()
	delete(papers, name)
}

// LookupPaper returns the profile registered under name.
func LookupPaper(name string) (Paper, error) {
	paperMu.RLock()
	p, ok := papers[name]
	paperMu.RUnlock()

	if !ok {
		return Paper{}, fmt.Errorf("%w %q", ErrUnknownPaper, name)
	}
	return p, nil
}

// Papers returns the registered profile names, sorted.
func Papers() []string {
	paperMu.RLock()
	defer paperMu.RUnlock()

	names := make([]string, 0, len(papers))
	for name := range papers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
