// Package reflow renders SVG templates annotated with named insertion
// points against arbitrary JSON data. Data bindings drive text, image and
// color targets; width-constrained text is re-wrapped with real glyph
// metrics and the resulting height change cascades through containing
// shapes, clip regions, filters and the document root so the layout stays
// visually consistent.
package reflow

import (
	"context"
	"fmt"

	"github.com/formo/reflow/dom"
	"github.com/formo/reflow/text"
)

// Options configures a render call.
type Options struct {
	// Geometry resolves element bounds for containment tests during
	// cascades. Defaults to the built-in BoundsEstimator.
	Geometry GeometryProvider
	// Measurer measures text for wrapping decisions. Defaults to the
	// embedded Latin Modern face.
	Measurer text.Measurer
	// ErrorGraphic makes Render return a small inline SVG describing a
	// failure instead of returning the error itself.
	ErrorGraphic bool
}

// DefaultOptions is used when Render is called with nil options.
var DefaultOptions = Options{}

type renderer struct {
	root       *dom.ElementNode
	data       DataSources
	components map[string]Component
	measurer   text.Measurer
	geometry   GeometryProvider
}

// Render renders the template markup against the data sources. The tree
// is built once, mutated in place by the bindings, and serialized; no
// state is shared between calls, so independent renders may run
// concurrently. Template errors are fatal; binding resolution misses
// leave the original content untouched.
func Render(ctx context.Context, markup string, bindings []Binding, components []Component, data DataSources, opts *Options) (string, error) {
	o := DefaultOptions
	if opts != nil {
		o = *opts
	}
	if o.Measurer == nil {
		o.Measurer = text.DefaultFace()
	}
	if o.Geometry == nil {
		o.Geometry = &BoundsEstimator{Measurer: o.Measurer}
	}

	root, err := dom.Parse(markup)
	if err != nil {
		if o.ErrorGraphic {
			return ErrorGraphic(err), nil
		}
		return "", err
	}

	r := &renderer{
		root:       root,
		data:       data,
		components: indexComponents(components),
		measurer:   o.Measurer,
		geometry:   o.Geometry,
	}
	if err := r.apply(ctx, bindings); err != nil {
		if o.ErrorGraphic {
			return ErrorGraphic(err), nil
		}
		return "", fmt.Errorf("apply bindings: %w", err)
	}
	return dom.Serialize(root), nil
}

func indexComponents(components []Component) map[string]Component {
	m := make(map[string]Component, len(components))
	for _, c := range components {
		m[c.ComponentID()] = c
	}
	return m
}

// ErrorGraphic returns an inline SVG displaying err, for callers that
// prefer an error image over a failed render.
func ErrorGraphic(err error) string {
	return `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="60">` +
		`<rect width="400" height="60" fill="#fff0f0"/>` +
		`<text x="10" y="35" font-size="12" fill="#990000">` + dom.EscapeText(err.Error()) + `</text></svg>`
}
