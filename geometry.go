package reflow

import (
	"context"
	"math"

	"github.com/formo/reflow/dom"
	"github.com/formo/reflow/text"
)

// ElementBounds is an axis-aligned bounding box in document units.
type ElementBounds struct {
	X, Y, Width, Height float64
}

// GeometryProvider returns precise bounds per node id for a serialized
// document snapshot. The cascade engine issues exactly one call per
// invocation and reuses the result for every containment test. The
// document root must be special-cased by reading its width and height
// attributes rather than measuring.
type GeometryProvider interface {
	ResolveBounds(ctx context.Context, markup string) (map[string]ElementBounds, error)
}

// BoundsEstimator is the built-in geometry provider. It computes
// approximate bounds arithmetically from shape attributes, measures text
// through a glyph Measurer, and unions container children. Good enough for
// containment decisions; callers with a real layout engine plug in their
// own GeometryProvider.
type BoundsEstimator struct {
	Measurer text.Measurer
}

// ResolveBounds implements GeometryProvider.
func (e *BoundsEstimator) ResolveBounds(ctx context.Context, markup string) (map[string]ElementBounds, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := dom.Parse(markup)
	if err != nil {
		return nil, err
	}
	bounds := map[string]ElementBounds{}
	e.measure(root, 0.0, 0.0, bounds)

	// The root reports its declared size, not a visual measurement.
	w, _ := floatAttr(root, "width")
	h, _ := floatAttr(root, "height")
	bounds[root.ID] = ElementBounds{Width: w, Height: h}
	return bounds, nil
}

func (e *BoundsEstimator) measure(n *dom.ElementNode, dx, dy float64, bounds map[string]ElementBounds) (ElementBounds, bool) {
	if nonRenderable[n.Tag] {
		return ElementBounds{}, false
	}
	tx, ty := translateOf(n)
	dx += tx
	dy += ty

	var b ElementBounds
	ok := false
	local := true
	switch n.Tag {
	case "rect", "image", "use":
		b = ElementBounds{
			X:      attrFloatOr(n.Attrs, "x", 0.0),
			Y:      attrFloatOr(n.Attrs, "y", 0.0),
			Width:  attrFloatOr(n.Attrs, "width", 0.0),
			Height: attrFloatOr(n.Attrs, "height", 0.0),
		}
		ok = true
	case "circle":
		r := attrFloatOr(n.Attrs, "r", 0.0)
		b = ElementBounds{attrFloatOr(n.Attrs, "cx", 0.0) - r, attrFloatOr(n.Attrs, "cy", 0.0) - r, 2.0 * r, 2.0 * r}
		ok = true
	case "ellipse":
		rx := attrFloatOr(n.Attrs, "rx", 0.0)
		ry := attrFloatOr(n.Attrs, "ry", 0.0)
		b = ElementBounds{attrFloatOr(n.Attrs, "cx", 0.0) - rx, attrFloatOr(n.Attrs, "cy", 0.0) - ry, 2.0 * rx, 2.0 * ry}
		ok = true
	case "line":
		x1 := attrFloatOr(n.Attrs, "x1", 0.0)
		y1 := attrFloatOr(n.Attrs, "y1", 0.0)
		x2 := attrFloatOr(n.Attrs, "x2", 0.0)
		y2 := attrFloatOr(n.Attrs, "y2", 0.0)
		b = ElementBounds{math.Min(x1, x2), math.Min(y1, y2), math.Abs(x2 - x1), math.Abs(y2 - y1)}
		ok = true
	case "text":
		b, ok = e.measureText(n)
	default:
		// containers: union of measured children, already absolute
		local = false
		for _, c := range n.Children {
			cb, cok := e.measure(c, dx, dy, bounds)
			if !cok {
				continue
			}
			if ok {
				b = unionBounds(b, cb)
			} else {
				b, ok = cb, true
			}
		}
	}
	if ok && local {
		b.X += dx
		b.Y += dy
	}
	if ok {
		bounds[n.ID] = b
	}
	return b, ok
}

func (e *BoundsEstimator) measureText(n *dom.ElementNode) (ElementBounds, bool) {
	runs := dom.ParseRuns(n.InnerMarkup)
	if len(runs) == 0 && n.Text != "" {
		runs = []dom.Run{{Attrs: n.Attrs, Text: n.Text}}
	}
	var b ElementBounds
	ok := false
	for _, run := range runs {
		f := fontFor(n, run)
		attrs := run.Attrs
		if attrs == nil {
			attrs = n.Attrs
		}
		x := attrFloatOr(attrs, "x", attrFloatOr(n.Attrs, "x", 0.0))
		y := attrFloatOr(attrs, "y", attrFloatOr(n.Attrs, "y", 0.0))
		w := 0.0
		if e.Measurer != nil {
			w = e.Measurer.TextWidth(run.Text, f)
		}
		rb := ElementBounds{x, y - ascentOf(e.Measurer, f), w, 1.2 * f.Size}
		if ok {
			b = unionBounds(b, rb)
		} else {
			b, ok = rb, true
		}
	}
	return b, ok
}

// translateOf returns the first translate offset of n's transform.
func translateOf(n *dom.ElementNode) (float64, float64) {
	tr, ok := n.Attrs.Get("transform")
	if !ok {
		return 0.0, 0.0
	}
	m := translateRE.FindStringSubmatch(tr)
	if m == nil {
		return 0.0, 0.0
	}
	tx, _ := parseFloat(m[1])
	ty := 0.0
	if m[2] != "" {
		ty, _ = parseFloat(m[2])
	}
	return tx, ty
}

func ascentOf(m text.Measurer, f text.Font) float64 {
	if a, ok := m.(interface{ Ascent(text.Font) float64 }); ok {
		return a.Ascent(f)
	}
	return 0.8 * f.Size
}

func unionBounds(a, b ElementBounds) ElementBounds {
	x0 := math.Min(a.X, b.X)
	y0 := math.Min(a.Y, b.Y)
	x1 := math.Max(a.X+a.Width, b.X+b.Width)
	y1 := math.Max(a.Y+a.Height, b.Y+b.Height)
	return ElementBounds{x0, y0, x1 - x0, y1 - y0}
}
