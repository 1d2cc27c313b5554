package reflow

import (
	"context"
	"testing"

	"github.com/tdewolff/test"
)

func render(t *testing.T, markup string, bindings []Binding, components []Component, data DataSources) string {
	t.Helper()
	out, err := Render(context.Background(), markup, bindings, components, data, &Options{Measurer: charMeasurer{10.0}})
	test.Error(t, err)
	return out
}

func TestApplyNaturalText(t *testing.T) {
	markup := `<svg width="100" height="50"><text id="t" x="10" y="20"><tspan x="10" y="20">old</tspan></text></svg>`
	out := render(t, markup,
		[]Binding{{SourceNodeID: "d", SourceField: "title", TargetComponentID: "c1"}},
		[]Component{TextComponent{ID: "c1", ElementID: "t"}},
		DataSources{"d": map[string]interface{}{"title": "Hello"}})
	test.String(t, out,
		`<svg id="fmo-svg-1" width="100" height="50"><text id="t" x="10" y="20"><tspan x="10" y="20" text-anchor="start">Hello</tspan></text></svg>`)
}

func TestApplyNaturalTextClearsRuns(t *testing.T) {
	markup := `<svg width="100" height="50"><text id="t" x="10" y="20">` +
		`<tspan x="10" y="20">one</tspan><tspan x="10" y="44">two</tspan></text></svg>`
	out := render(t, markup,
		[]Binding{{SourceNodeID: "d", SourceField: "v", TargetComponentID: "c1"}},
		[]Component{TextComponent{ID: "c1", ElementID: "t", Strategy: &RenderingStrategy{Alignment: AlignMiddle, Offset: 5.0}}},
		DataSources{"d": map[string]interface{}{"v": "solo"}})
	test.String(t, out,
		`<svg id="fmo-svg-1" width="100" height="50"><text id="t" x="10" y="20"><tspan x="15" y="20" text-anchor="middle">solo</tspan></text></svg>`)
}

func TestApplyUndefinedPathIdentity(t *testing.T) {
	markup := `<svg width="100" height="50"><text id="t" x="10" y="20"><tspan x="10" y="20">old</tspan></text><image id="i" href="a.png"/></svg>`
	components := []Component{
		TextComponent{ID: "c1", ElementID: "t"},
		ImageComponent{ID: "c2", ElementID: "i"},
	}
	bindings := []Binding{
		{SourceNodeID: "d", SourceField: "missing.deep", TargetComponentID: "c1"},
		{SourceNodeID: "nosuch", SourceField: "x", TargetComponentID: "c2"},
		{SourceNodeID: "d", SourceField: "x", TargetComponentID: "nocomponent"},
	}
	data := DataSources{"d": map[string]interface{}{"x": "y"}}

	unbound := render(t, markup, nil, nil, nil)
	test.String(t, render(t, markup, bindings, components, data), unbound)
}

func TestApplyTextNonText(t *testing.T) {
	// a text component aimed at a rect is skipped
	markup := `<svg width="100" height="50"><rect id="t" x="0" y="0" width="9" height="9"/></svg>`
	out := render(t, markup,
		[]Binding{{SourceNodeID: "d", SourceField: "v", TargetComponentID: "c1"}},
		[]Component{TextComponent{ID: "c1", ElementID: "t"}},
		DataSources{"d": map[string]interface{}{"v": "nope"}})
	test.String(t, out, `<svg id="fmo-svg-1" width="100" height="50"><rect id="t" x="0" y="0" width="9" height="9"/></svg>`)
}

func TestApplyImage(t *testing.T) {
	markup := `<svg width="10" height="10"><image id="logo" href="old.png" width="5" height="5"/></svg>`
	out := render(t, markup,
		[]Binding{{SourceNodeID: "d", SourceField: "url", TargetComponentID: "c1"}},
		[]Component{ImageComponent{ID: "c1", ElementID: "logo"}},
		DataSources{"d": map[string]interface{}{"url": "new.png"}})
	test.String(t, out,
		`<svg id="fmo-svg-1" width="10" height="10"><image id="logo" href="new.png" width="5" height="5" xlink:href="new.png"/></svg>`)
}

func TestApplyColor(t *testing.T) {
	markup := `<svg width="10" height="10">` +
		`<rect id="a" fill="#FF0000" stroke="#ff0000"/>` +
		`<rect id="b" fill="#ff0000"/>` +
		`<rect id="c" fill="#00ff00"/>` +
		`</svg>`
	bindings := []Binding{{SourceNodeID: "d", SourceField: "accent", TargetComponentID: "c1"}}
	components := []Component{ColorComponent{ID: "c1", Color: "#ff0000", Roles: ColorRoles{Fill: true}}}
	data := DataSources{"d": map[string]interface{}{"accent": "#0000ff"}}

	out := render(t, markup, bindings, components, data)
	test.String(t, out, `<svg id="fmo-svg-1" width="10" height="10">`+
		`<rect id="a" fill="#0000ff" stroke="#ff0000"/>`+ // stroke role disabled
		`<rect id="b" fill="#0000ff"/>`+
		`<rect id="c" fill="#00ff00"/>`+ // not the declared color
		`</svg>`)

	// repainting the output is a no-op: the declared color no longer occurs
	test.String(t, render(t, out, bindings, components, data), out)
}

func TestApplyColorScoped(t *testing.T) {
	markup := `<svg width="10" height="10"><rect id="a" fill="#ff0000"/><rect id="b" fill="#ff0000"/></svg>`
	out := render(t, markup,
		[]Binding{{SourceNodeID: "d", SourceField: "accent", TargetComponentID: "c1"}},
		[]Component{ColorComponent{ID: "c1", Color: "#ff0000", Roles: ColorRoles{Fill: true}, ElementIDs: []string{"b"}}},
		DataSources{"d": map[string]interface{}{"accent": "#0000ff"}})
	test.String(t, out, `<svg id="fmo-svg-1" width="10" height="10"><rect id="a" fill="#ff0000"/><rect id="b" fill="#0000ff"/></svg>`)
}

func TestStringify(t *testing.T) {
	test.String(t, stringify("s"), "s")
	test.String(t, stringify(42.0), "42")
	test.String(t, stringify(3.14), "3.14")
	test.String(t, stringify(true), "true")
}
