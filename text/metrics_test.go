package text

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestFaceTextWidth(t *testing.T) {
	face := DefaultFace()
	f := Font{Size: 10.0, Weight: 400}

	test.Float(t, face.TextWidth("", f), 0.0)

	a := face.TextWidth("a", f)
	ab := face.TextWidth("ab", f)
	test.That(t, 0.0 < a)
	test.That(t, a < ab)

	// width scales linearly with font size
	big := Font{Size: 20.0, Weight: 400}
	test.Float(t, face.TextWidth("abc", big), 2.0*face.TextWidth("abc", f))
}

func TestFaceLetterSpacing(t *testing.T) {
	face := DefaultFace()
	f := Font{Size: 10.0, Weight: 400}
	spaced := Font{Size: 10.0, Weight: 400, LetterSpacing: 2.0}
	test.Float(t, face.TextWidth("abcd", spaced), face.TextWidth("abcd", f)+3.0*2.0)

	// single glyphs get no spacing
	test.Float(t, face.TextWidth("a", spaced), face.TextWidth("a", f))
}

func TestFaceBold(t *testing.T) {
	face := DefaultFace()
	regular := face.TextWidth("mmmm", Font{Size: 12.0, Weight: 400})
	bold := face.TextWidth("mmmm", Font{Size: 12.0, Weight: 700})
	test.That(t, 0.0 < regular)
	test.That(t, regular < bold)
}

func TestFaceAscent(t *testing.T) {
	face := DefaultFace()
	f := Font{Size: 10.0, Weight: 400}
	asc := face.Ascent(f)
	test.That(t, 0.0 < asc && asc < 2.0*f.Size)

	test.Float(t, face.Ascent(Font{Size: 20.0}), 2.0*asc)
}
