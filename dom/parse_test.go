package dom

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestParseIDs(t *testing.T) {
	root, err := Parse(`<svg><g><rect/><rect/></g><rect id="bg"/></svg>`)
	test.Error(t, err)
	test.String(t, root.Tag, "svg")
	test.String(t, root.ID, "fmo-svg-1")
	test.String(t, root.OriginalID, "")

	g := root.Children[0]
	test.String(t, g.ID, "fmo-g-1")
	test.String(t, g.Children[0].ID, "fmo-rect-1")
	test.String(t, g.Children[1].ID, "fmo-rect-2")

	bg := root.Children[1]
	test.String(t, bg.ID, "bg")
	test.String(t, bg.OriginalID, "bg")
	_, ok := bg.Attrs.Get("id")
	test.That(t, !ok, "id must not remain an ordinary attribute")
}

func TestParseSeededCollision(t *testing.T) {
	// the pre-existing id occupies the name the generator would synthesize
	root, err := Parse(`<svg><rect id="fmo-rect-1"/><rect/></svg>`)
	test.Error(t, err)
	test.String(t, root.Children[0].ID, "fmo-rect-1")
	test.String(t, root.Children[1].ID, "fmo-rect-1:1")
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("")
	test.That(t, err != nil)
	test.String(t, err.Error(), "parse: no root element found")

	_, err = Parse(`<a/><b/>`)
	test.That(t, err != nil)
	test.String(t, err.Error(), "parse: multiple root elements")
}

func TestParseFlags(t *testing.T) {
	root, err := Parse(`<svg><text x="1" y="2">hi</text><image href="a.png"/></svg>`)
	test.Error(t, err)
	test.That(t, root.Children[0].IsText)
	test.That(t, root.Children[1].IsImage)
	test.That(t, !root.IsText && !root.IsImage)
}

func TestParseTextRuns(t *testing.T) {
	inner := `<tspan x="10" y="20">Hello <tspan font-style="italic">world</tspan></tspan>`
	root, err := Parse(`<svg><text id="t" x="10" y="20">` + inner + `</text></svg>`)
	test.Error(t, err)

	el := FindByID(root, "t")
	test.That(t, el != nil)
	test.String(t, el.InnerMarkup, inner)
	test.String(t, el.Text, "Hello world")
	test.T(t, len(el.Children), 0)
}

func TestParseTextEntities(t *testing.T) {
	root, err := Parse(`<svg><text id="t">a &amp; b</text></svg>`)
	test.Error(t, err)
	el := FindByID(root, "t")
	test.String(t, el.Text, "a & b")
	test.String(t, el.InnerMarkup, "a &amp; b") // source form kept for re-serialization
}

func TestParseAttrEntities(t *testing.T) {
	root, err := Parse(`<svg><rect id="r" data-label="a &amp; &#34;b&#34;"/></svg>`)
	test.Error(t, err)
	v, _ := FindByID(root, "r").Attrs.Get("data-label")
	test.String(t, v, `a & "b"`)
}

func TestFindParent(t *testing.T) {
	root, err := Parse(`<svg><g><rect id="r"/></g></svg>`)
	test.Error(t, err)
	r := FindByID(root, "r")
	g := FindParent(root, r)
	test.String(t, g.Tag, "g")
	test.T(t, FindParent(root, g), root)
	test.That(t, FindParent(root, root) == nil)
}
