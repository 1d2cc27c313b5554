// Package text implements glyph measurement and width-constrained line
// breaking for the reflow engine. Width measurement is approximate by
// design (advances plus kerning, no hinting or shaping) and pluggable
// through the Measurer interface.
package text

import (
	"fmt"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/tdewolff/font"
)

// Font describes the face parameters that affect measurement. Size and
// LetterSpacing are in document units.
type Font struct {
	Family        string
	Size          float64
	Weight        int // CSS weight, 400 regular, 700 bold
	LetterSpacing float64
}

// Measurer measures the advance width of a string in document units.
type Measurer interface {
	TextWidth(s string, f Font) float64
}

// Face is an SFNT-backed Measurer. It measures with glyph advances and
// kerning scaled by units-per-em, which is exact enough for wrapping
// decisions without a shaping engine.
type Face struct {
	regular *font.SFNT
	bold    *font.SFNT
}

// NewFace parses a TTF/OTF font program for the regular style.
func NewFace(regular []byte) (*Face, error) {
	sfnt, err := font.ParseFont(regular, 0)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Face{regular: sfnt}, nil
}

// LoadBold adds a bold style used for weights of 600 and up.
func (face *Face) LoadBold(b []byte) error {
	sfnt, err := font.ParseFont(b, 0)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	face.bold = sfnt
	return nil
}

var (
	defaultFaceOnce sync.Once
	defaultFace     *Face
)

// DefaultFace returns a Face backed by the embedded Latin Modern fonts, so
// measurement works without any font files on disk.
func DefaultFace() *Face {
	defaultFaceOnce.Do(func() {
		face, err := NewFace(lmroman10regular.TTF)
		if err != nil {
			panic(err) // embedded font program
		}
		if err := face.LoadBold(lmroman10bold.TTF); err != nil {
			panic(err)
		}
		defaultFace = face
	})
	return defaultFace
}

func (face *Face) sfnt(f Font) *font.SFNT {
	if 600 <= f.Weight && face.bold != nil {
		return face.bold
	}
	return face.regular
}

// TextWidth returns the advance width of s in document units.
func (face *Face) TextWidth(s string, f Font) float64 {
	sfnt := face.sfnt(f)
	scale := f.Size / float64(sfnt.Head.UnitsPerEm)
	w := 0.0
	n := 0
	var prev uint16
	for _, r := range s {
		glyph := sfnt.GlyphIndex(r)
		if 0 < n {
			w += float64(sfnt.Kerning(prev, glyph)) * scale
		}
		w += float64(sfnt.GlyphAdvance(glyph)) * scale
		prev = glyph
		n++
	}
	if 1 < n {
		w += f.LetterSpacing * float64(n-1)
	}
	return w
}

// Ascent returns the distance from the baseline to the top of the face in
// document units.
func (face *Face) Ascent(f Font) float64 {
	sfnt := face.sfnt(f)
	return float64(sfnt.Hhea.Ascender) * f.Size / float64(sfnt.Head.UnitsPerEm)
}
