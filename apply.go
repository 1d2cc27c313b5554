package reflow

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/formo/reflow/dom"
	"github.com/formo/reflow/text"
)

// apply processes bindings in the mandated order: all text bindings first,
// each completing its own cascade before the next because later
// y-coordinates depend on earlier shifts, then image, then color.
// Bindings without a matching component are silently ignored.
func (r *renderer) apply(ctx context.Context, bindings []Binding) error {
	for _, b := range bindings {
		if c, ok := r.components[b.TargetComponentID].(TextComponent); ok {
			if err := r.applyText(ctx, b, c); err != nil {
				return err
			}
		}
	}
	for _, b := range bindings {
		if c, ok := r.components[b.TargetComponentID].(ImageComponent); ok {
			r.applyImage(b, c)
		}
	}
	for _, b := range bindings {
		if c, ok := r.components[b.TargetComponentID].(ColorComponent); ok {
			r.applyColor(b, c)
		}
	}
	return nil
}

func (r *renderer) resolveValue(b Binding) (interface{}, bool) {
	src, ok := r.data[b.SourceNodeID]
	if !ok {
		return nil, false
	}
	v, ok := Resolve(src, b.SourceField)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func stringify(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprint(v)
}

func (r *renderer) applyText(ctx context.Context, b Binding, c TextComponent) error {
	el := dom.FindByID(r.root, c.ElementID)
	if el == nil || !el.IsText {
		return nil
	}
	v, ok := r.resolveValue(b)
	if !ok {
		return nil
	}
	s := stringify(v)
	strat := c.Strategy
	if strat == nil {
		strat = &RenderingStrategy{}
	}
	runs := styledRuns(el, dom.ParseRuns(el.InnerMarkup))
	if strat.Mode == WidthConstrained {
		return r.applyConstrainedText(ctx, el, runs, s, strat)
	}
	r.applyNaturalText(el, runs, s, strat)
	return nil
}

// styledRuns guarantees a first run with an attribute map, synthesizing
// one from the element's own position when the text node has no spans.
func styledRuns(el *dom.ElementNode, runs []dom.Run) []dom.Run {
	if len(runs) == 0 {
		attrs := dom.NewAttributes()
		for _, k := range []string{"x", "y"} {
			if v, ok := el.Attrs.Get(k); ok {
				attrs.Set(k, v)
			}
		}
		return []dom.Run{{Attrs: attrs, Text: el.Text}}
	}
	if runs[0].Attrs == nil {
		runs[0].Attrs = dom.NewAttributes()
	}
	return runs
}

// applyNaturalText replaces the first run's text, clears the remaining
// runs, and applies the alignment and offset to the run's position.
func (r *renderer) applyNaturalText(el *dom.ElementNode, runs []dom.Run, s string, strat *RenderingStrategy) {
	run := runs[0]
	run.Text = s
	if strat.Offset != 0 {
		x := attrFloatOr(run.Attrs, "x", attrFloatOr(el.Attrs, "x", 0.0))
		run.Attrs.Set("x", num(x+strat.Offset).String())
	}
	run.Attrs.Set("text-anchor", strat.Alignment.Anchor())
	el.InnerMarkup = dom.RenderRuns([]dom.Run{run})
	el.Text = s
}

// applyConstrainedText re-wraps the value under the strategy's maximum
// width, replaces all runs, and triggers a cascade when the rendered
// height changed.
func (r *renderer) applyConstrainedText(ctx context.Context, el *dom.ElementNode, runs []dom.Run, s string, strat *RenderingStrategy) error {
	f := fontFor(el, runs[0])
	lines := text.BreakTextIntoLines(s, strat.MaxWidth, r.measurer, f)

	lineHeight := r.lineHeight(el, runs, f)
	step := lineHeight + strat.LineSpacing

	x0 := attrFloatOr(runs[0].Attrs, "x", attrFloatOr(el.Attrs, "x", 0.0)) + strat.Offset
	y0 := attrFloatOr(runs[0].Attrs, "y", attrFloatOr(el.Attrs, "y", 0.0))

	oldHeight := float64(len(runs)-1)*step + lineHeight
	newHeight := float64(len(lines)-1)*step + lineHeight

	newRuns := make([]dom.Run, 0, len(lines))
	for i, line := range lines {
		attrs := styleAttrs(runs[0].Attrs)
		if i == 0 {
			// only the first line keeps position-only attributes verbatim,
			// except that an anchor offset moves every line the same way
			copyPositionAttrs(runs[0].Attrs, attrs)
			if _, ok := attrs.Get("x"); !ok || strat.Offset != 0 {
				attrs.Set("x", num(x0).String())
			}
			if _, ok := attrs.Get("y"); !ok {
				attrs.Set("y", num(y0).String())
			}
		} else {
			attrs.Set("x", num(x0).String())
			attrs.Set("y", num(y0+float64(i)*step).String())
		}
		attrs.Set("text-anchor", strat.Alignment.Anchor())
		newRuns = append(newRuns, dom.Run{Attrs: attrs, Text: line})
	}
	el.InnerMarkup = dom.RenderRuns(newRuns)
	el.Text = strings.Join(lines, "\n")

	delta := newHeight - oldHeight
	if delta == 0 {
		return nil
	}
	// synchronous fallback bounds for the changed text itself; everything
	// else comes from the geometry snapshot inside the cascade
	orig := ElementBounds{
		X:      x0,
		Y:      y0 - ascentOf(r.measurer, f),
		Width:  strat.MaxWidth,
		Height: oldHeight,
	}
	return r.cascade(ctx, el, orig, delta, strat)
}

// lineHeight derives the line advance from the difference between the
// first two pre-existing lines' y-coordinates, else an explicit
// line-height attribute, else fontSize x 1.2.
func (r *renderer) lineHeight(el *dom.ElementNode, runs []dom.Run, f text.Font) float64 {
	if 2 <= len(runs) && runs[0].Attrs != nil && runs[1].Attrs != nil {
		y0, ok0 := attrFloat(runs[0].Attrs, "y")
		y1, ok1 := attrFloat(runs[1].Attrs, "y")
		if ok0 && ok1 && y0 < y1 {
			return y1 - y0
		}
	}
	if lh, ok := floatAttr(el, "line-height"); ok && 0 < lh {
		return lh
	}
	return 1.2 * f.Size
}

var positionAttrs = map[string]bool{"x": true, "y": true, "dx": true, "dy": true}

func styleAttrs(a *dom.Attributes) *dom.Attributes {
	out := dom.NewAttributes()
	for _, k := range a.Keys() {
		if positionAttrs[k] {
			continue
		}
		v, _ := a.Get(k)
		out.Set(k, v)
	}
	return out
}

func copyPositionAttrs(src, dst *dom.Attributes) {
	for _, k := range src.Keys() {
		if positionAttrs[k] {
			v, _ := src.Get(k)
			dst.Set(k, v)
		}
	}
}

// fontFor reads the effective font of a run, falling back to the text
// element's own attributes.
func fontFor(el *dom.ElementNode, run dom.Run) text.Font {
	get := func(key string) (string, bool) {
		if run.Attrs != nil {
			if v, ok := run.Attrs.Get(key); ok {
				return v, true
			}
		}
		return el.Attrs.Get(key)
	}
	f := text.Font{Size: 16.0, Weight: 400}
	if v, ok := get("font-family"); ok {
		f.Family = v
	}
	if v, ok := get("font-size"); ok {
		if size, ok := parseFloat(v); ok {
			f.Size = size
		}
	}
	if v, ok := get("font-weight"); ok {
		f.Weight = parseWeight(v)
	}
	if v, ok := get("letter-spacing"); ok {
		if spacing, ok := parseFloat(v); ok {
			f.LetterSpacing = spacing
		}
	}
	return f
}

func parseWeight(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bold":
		return 700
	case "bolder":
		return 800
	case "lighter":
		return 300
	case "normal", "":
		return 400
	}
	if w, ok := parseFloat(s); ok {
		return int(w)
	}
	return 400
}

func (r *renderer) applyImage(b Binding, c ImageComponent) {
	el := dom.FindByID(r.root, c.ElementID)
	if el == nil || !el.IsImage {
		return
	}
	v, ok := r.resolveValue(b)
	if !ok {
		return
	}
	s := stringify(v)
	el.Attrs.Set("href", s)
	el.Attrs.Set("xlink:href", s) // legacy-compatible alias
}

// applyColor repaints, for each enabled role, every attribute whose value
// case-insensitively equals the component's declared color. This is an
// exact-match substitution, not a blanket override.
func (r *renderer) applyColor(b Binding, c ColorComponent) {
	v, ok := r.resolveValue(b)
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		return
	}
	allowed := map[string]bool{}
	for _, id := range c.ElementIDs {
		allowed[id] = true
	}
	roles := []string{}
	if c.Roles.Fill {
		roles = append(roles, "fill")
	}
	if c.Roles.Stroke {
		roles = append(roles, "stroke")
	}
	if c.Roles.StopColor {
		roles = append(roles, "stop-color")
	}
	dom.Walk(r.root, func(n *dom.ElementNode) {
		if 0 < len(allowed) && !allowed[n.ID] && !allowed[n.OriginalID] {
			return
		}
		for _, role := range roles {
			if cur, ok := n.Attrs.Get(role); ok && strings.EqualFold(cur, c.Color) {
				n.Attrs.Set(role, s)
			}
		}
	})
}
