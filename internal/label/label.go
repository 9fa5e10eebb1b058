// Package label prepares text for HPGL LB (label) instructions.
//
// Plotter character sets are 7-bit. Accented letters are folded to
// their base letter; anything else outside printable ASCII, and the
// label terminator itself, becomes a question mark.
package label

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Replacement is substituted for characters the plotter cannot draw.
const Replacement = '?'

// ETX is the default label terminator.
const ETX byte = 0x03

// Sanitize returns s folded to printable ASCII with every occurrence of
// term replaced.
func Sanitize(s string, term byte) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if r == rune(term) || r < 0x20 || r > 0x7e {
				return Replacement
			}
			return r
		}),
	)
	// Remove and Map never fail, and NFD only fails on a short
	// destination buffer, which transform.String grows.
	out, _, _ := transform.String(t, s)
	return out
}
