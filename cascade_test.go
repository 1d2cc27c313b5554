package reflow

import (
	"fmt"
	"testing"

	"github.com/formo/reflow/dom"
	"github.com/tdewolff/test"
)

func TestContains(t *testing.T) {
	var tests = []struct {
		candidate, changed ElementBounds
		expected           bool
	}{
		// full enclosure
		{ElementBounds{0, 0, 100, 100}, ElementBounds{10, 10, 50, 20}, true},
		// exactly 90% overlap counts
		{ElementBounds{0, 2, 100, 100}, ElementBounds{0, 0, 50, 20}, true},
		// 85% overlap does not
		{ElementBounds{0, 3, 100, 100}, ElementBounds{0, 0, 50, 20}, false},
		// disjoint
		{ElementBounds{0, 100, 100, 50}, ElementBounds{0, 0, 50, 20}, false},
		// small elements only need to touch
		{ElementBounds{0, 3.9, 100, 10}, ElementBounds{0, 0, 50, 4}, true},
		{ElementBounds{0, 4, 100, 10}, ElementBounds{0, 0, 50, 4}, false},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%v", i), func(t *testing.T) {
			test.T(t, contains(tt.candidate, tt.changed), tt.expected)
		})
	}
}

func TestShiftTranslate(t *testing.T) {
	var tests = []struct {
		transform string
		expected  string
		changed   bool
	}{
		{"translate(10, 30)", "translate(10,35)", true},
		{"translate(10 30)", "translate(10,35)", true},
		{"translate(10,15)", "translate(10,15)", false},
		{"translate(10)", "translate(10)", false}, // implicit y is zero
		{"rotate(45) translate(0,25)", "rotate(45) translate(0,30)", true},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%v/%v", i, tt.transform), func(t *testing.T) {
			out, changed := shiftTranslate(tt.transform, 20.0, 5.0)
			test.String(t, out, tt.expected)
			test.T(t, changed, tt.changed)
		})
	}
}

func TestBumpTranslate(t *testing.T) {
	test.String(t, bumpTranslate("translate(3,4)", 6.0), "translate(3,10)")
	test.String(t, bumpTranslate("translate(3)", 6.0), "translate(3,6)")
	// only the first translate moves
	test.String(t, bumpTranslate("translate(0,1) translate(0,2)", 6.0), "translate(0,7) translate(0,2)")
}

func TestPathBelow(t *testing.T) {
	test.That(t, pathBelow("M 0 10 L 5 30", 20.0))
	test.That(t, !pathBelow("M 0 10 L 5 15", 20.0))
	test.That(t, !pathBelow("", 20.0))
}

func TestShiftBelow(t *testing.T) {
	root, err := dom.Parse(`<svg>` +
		`<line id="l" x1="0" y1="10" x2="5" y2="30"/>` +
		`<circle id="c" cx="1" cy="30" r="2"/>` +
		`<path id="p" d="M 0 10 L 5 30"/>` +
		`<rect id="above" x="0" y="10" width="2" height="2"/>` +
		`<g id="g" transform="translate(0,25)"><rect id="inner" width="2" height="2"/></g>` +
		`<text id="t" x="0" y="5"><tspan x="0" y="5">a</tspan><tspan x="0" y="29">b</tspan></text>` +
		`</svg>`)
	test.Error(t, err)

	r := &renderer{root: root}
	r.shiftBelow(root, nil, 20.0, 5.0)

	attr := func(id, key string) string {
		v, _ := dom.FindByID(root, id).Attrs.Get(key)
		return v
	}
	// a line moves as a whole once either endpoint lies below the threshold
	test.String(t, attr("l", "y1"), "15")
	test.String(t, attr("l", "y2"), "35")
	test.String(t, attr("c", "cy"), "35")
	// paths are translated rather than rewritten
	test.String(t, attr("p", "transform"), "translate(0,5)")
	test.String(t, attr("above", "y"), "10")
	test.String(t, attr("g", "transform"), "translate(0,30)")
	test.String(t, attr("inner", "y"), "")
	// runs shift individually
	test.String(t, dom.FindByID(root, "t").InnerMarkup,
		`<tspan x="0" y="5">a</tspan><tspan x="0" y="34">b</tspan>`)
}

func TestURLRef(t *testing.T) {
	test.String(t, urlRef("url(#clip-1)"), "clip-1")
	test.String(t, urlRef("url( #f )"), "f")
	test.String(t, urlRef("none"), "")
}
