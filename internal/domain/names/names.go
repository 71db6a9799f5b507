// Package names synthesizes display names for generated competitors.
//
// The factory holds no generator state. Every draw comes from the *rng.Rand
// passed in, so a name sequence is fully determined by the seed and the
// order of calls.
package names

import (
	"strings"
	"unicode"

	"github.com/okian/ghostboard/internal/domain/rng"
)

// Style probabilities, as cumulative thresholds on a [0, 1) draw.
const (
	fullNameThreshold = 0.60
	initialThreshold  = 0.80
	regionThreshold   = 0.50
)

// Style identifies how a name was formatted.
type Style int

// Name styles.
const (
	StyleFull Style = iota
	StyleInitial
	StyleHandle
)

// Generate draws one display name. Draw order: region, first name, style,
// then the style-specific part (last name, initial letter or suffix).
func Generate(r *rng.Rand) string {
	name, _ := GenerateWithStyle(r)
	return name
}

// GenerateWithStyle is Generate that also reports the chosen style.
func GenerateWithStyle(r *rng.Rand) (string, Style) {
	region := Regions[0]
	if r.Float() >= regionThreshold {
		region = Regions[1]
	}
	first := rng.Pick(r, region.First)

	roll := r.Float()
	switch {
	case roll < fullNameThreshold:
		return first + " " + rng.Pick(r, region.Last), StyleFull
	case roll < initialThreshold:
		initial := rune(r.Range('A', 'Z'))
		return first + " " + string(initial) + ".", StyleInitial
	default:
		return first + "_" + rng.Pick(r, Suffixes), StyleHandle
	}
}

// Initials returns up to two uppercase letters taken from the first letters
// of the name's words. Underscores separate words.
func Initials(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return unicode.IsSpace(c) || c == '_'
	})
	var b strings.Builder
	for _, w := range words {
		for _, c := range w {
			if unicode.IsLetter(c) {
				b.WriteRune(unicode.ToUpper(c))
				break
			}
		}
		if b.Len() == 2 {
			break
		}
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}
