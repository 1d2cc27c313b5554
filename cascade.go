package reflow

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/formo/reflow/dom"
)

// smallHeight is the changed-element height below which any positive
// vertical overlap counts as containment.
const smallHeight = 5.0

// containRatio is the minimum vertical overlap, as a fraction of the
// changed element's height, for a candidate to count as containing it.
const containRatio = 0.9

// nonRenderable wrapper tags are never containment candidates.
var nonRenderable = map[string]bool{
	"style":    true,
	"metadata": true,
	"title":    true,
	"desc":     true,
	"defs":     true,
	"clipPath": true,
	"mask":     true,
	"pattern":  true,
	"marker":   true,
	"symbol":   true,
}

// containerTags are recursed into during the structural cascade but never
// resized themselves.
var containerTags = map[string]bool{
	"g":             true,
	"svg":           true,
	"switch":        true,
	"a":             true,
	"foreignObject": true,
}

var (
	translateRE = regexp.MustCompile(`translate\(\s*(-?[0-9.eE+]+)(?:[\s,]+(-?[0-9.eE+]+))?\s*\)`)
	numberRE    = regexp.MustCompile(`-?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?`)
	urlRefRE    = regexp.MustCompile(`url\(\s*#([^)\s]+)\s*\)`)
)

// cascade restores visual consistency after changed grew or shrank by
// delta: shift everything below the element's pre-change top, resize the
// containing backgrounds at every nesting level, synchronize clip and
// filter definitions, and grow the document root. Bounds for the whole
// tree are resolved once, against a snapshot of the current mutated tree,
// and reused for every containment test.
func (r *renderer) cascade(ctx context.Context, changed *dom.ElementNode, orig ElementBounds, delta float64, strat *RenderingStrategy) error {
	snapshot := dom.Serialize(r.root)
	bounds, err := r.geometry.ResolveBounds(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("resolve bounds: %w", err)
	}

	r.shiftBelow(r.root, changed, orig.Y, delta)

	processed := map[*dom.ElementNode]bool{changed: true}
	cur := changed
	for {
		parent := dom.FindParent(r.root, cur)
		if parent == nil {
			break
		}
		for _, child := range parent.Children {
			r.resizeContained(child, bounds, orig, delta, processed)
		}
		r.syncClip(parent, orig, delta)
		r.syncFilter(parent, changed, delta, strat)
		processed[parent] = true
		cur = parent
	}
	r.growRoot(delta)
	return nil
}

// contains reports whether candidate vertically encloses changed: any
// positive overlap for small changed elements, at least 90% of the changed
// height otherwise.
func contains(candidate, changed ElementBounds) bool {
	top := math.Max(candidate.Y, changed.Y)
	bottom := math.Min(candidate.Y+candidate.Height, changed.Y+changed.Height)
	overlap := bottom - top
	if changed.Height < smallHeight {
		return 0 < overlap
	}
	return containRatio*changed.Height <= overlap+1e-9
}

// shiftBelow translates every element positioned below threshold downward
// by delta, recursing over all descendants. The changed element itself is
// left alone; its runs already sit at their final positions.
func (r *renderer) shiftBelow(n, changed *dom.ElementNode, threshold, delta float64) {
	if n == changed {
		return
	}
	r.shiftNode(n, threshold, delta)
	for _, c := range n.Children {
		r.shiftBelow(c, changed, threshold, delta)
	}
}

func (r *renderer) shiftNode(n *dom.ElementNode, threshold, delta float64) {
	shifted := false
	switch n.Tag {
	case "line":
		y1, ok1 := floatAttr(n, "y1")
		y2, ok2 := floatAttr(n, "y2")
		if ok1 && ok2 && (threshold < y1 || threshold < y2) {
			setFloatAttr(n, "y1", y1+delta)
			setFloatAttr(n, "y2", y2+delta)
			shifted = true
		}
	case "circle", "ellipse":
		if cy, ok := floatAttr(n, "cy"); ok && threshold < cy {
			setFloatAttr(n, "cy", cy+delta)
			shifted = true
		}
	case "path":
		// handled via its transform below
	default:
		if y, ok := floatAttr(n, "y"); ok && threshold < y {
			setFloatAttr(n, "y", y+delta)
			shifted = true
		}
	}

	if !shifted {
		if tr, ok := n.Attrs.Get("transform"); ok {
			if out, changed := shiftTranslate(tr, threshold, delta); changed {
				n.Attrs.Set("transform", out)
				shifted = true
			}
		}
	}

	if n.Tag == "path" && !shifted {
		// Best-effort: scan the path data's coordinate pairs and, when any
		// candidate y lies below the threshold, translate the whole path
		// instead of rewriting its data. Curve control points may be
		// misclassified as endpoints.
		if d, ok := n.Attrs.Get("d"); ok && pathBelow(d, threshold) {
			if tr, ok := n.Attrs.Get("transform"); ok && translateRE.MatchString(tr) {
				n.Attrs.Set("transform", bumpTranslate(tr, delta))
			} else {
				addTranslate(n, delta)
			}
		}
	}

	if n.IsText && n.InnerMarkup != "" {
		r.shiftRuns(n, threshold, delta)
	}
}

func (r *renderer) shiftRuns(n *dom.ElementNode, threshold, delta float64) {
	runs := dom.ParseRuns(n.InnerMarkup)
	changed := false
	for _, run := range runs {
		if run.Attrs == nil {
			continue
		}
		if y, ok := attrFloat(run.Attrs, "y"); ok && threshold < y {
			run.Attrs.Set("y", num(y+delta).String())
			changed = true
		}
	}
	if changed {
		n.InnerMarkup = dom.RenderRuns(runs)
	}
}

// shiftTranslate rewrites every translate whose y component lies below the
// threshold, normalizing comma- and space-separated syntax to
// comma-separated on output. Unshifted translates are left untouched.
func shiftTranslate(transform string, threshold, delta float64) (string, bool) {
	changed := false
	out := translateRE.ReplaceAllStringFunc(transform, func(match string) string {
		m := translateRE.FindStringSubmatch(match)
		tx, _ := parseFloat(m[1])
		ty := 0.0
		if m[2] != "" {
			ty, _ = parseFloat(m[2])
		}
		if ty <= threshold {
			return match
		}
		changed = true
		return fmt.Sprintf("translate(%v,%v)", num(tx), num(ty+delta))
	})
	return out, changed
}

// bumpTranslate adds delta to the y component of the first translate.
func bumpTranslate(transform string, delta float64) string {
	done := false
	return translateRE.ReplaceAllStringFunc(transform, func(match string) string {
		if done {
			return match
		}
		done = true
		m := translateRE.FindStringSubmatch(match)
		tx, _ := parseFloat(m[1])
		ty := 0.0
		if m[2] != "" {
			ty, _ = parseFloat(m[2])
		}
		return fmt.Sprintf("translate(%v,%v)", num(tx), num(ty+delta))
	})
}

func addTranslate(n *dom.ElementNode, delta float64) {
	t := fmt.Sprintf("translate(0,%v)", num(delta))
	if tr, ok := n.Attrs.Get("transform"); ok && strings.TrimSpace(tr) != "" {
		n.Attrs.Set("transform", tr+" "+t)
	} else {
		n.Attrs.Set("transform", t)
	}
}

func pathBelow(d string, threshold float64) bool {
	nums := numberRE.FindAllString(d, -1)
	for i := 1; i < len(nums); i += 2 {
		if y, ok := parseFloat(nums[i]); ok && threshold < y {
			return true
		}
	}
	return false
}

// resizeContained grows a candidate's height-equivalent dimension when its
// bounds contain the changed element's original bounds. Wrapper tags are
// excluded outright; container tags are recursed into, not resized. A
// geometry miss for a candidate means it is not a containment match.
func (r *renderer) resizeContained(n *dom.ElementNode, bounds map[string]ElementBounds, orig ElementBounds, delta float64, processed map[*dom.ElementNode]bool) {
	if processed[n] {
		return
	}
	processed[n] = true
	if nonRenderable[n.Tag] {
		return
	}
	if containerTags[n.Tag] {
		for _, c := range n.Children {
			r.resizeContained(c, bounds, orig, delta, processed)
		}
		return
	}
	bb, ok := bounds[n.ID]
	if !ok || !contains(bb, orig) {
		return
	}
	switch n.Tag {
	case "rect", "image":
		growAttr(n, "height", delta)
	case "ellipse":
		growAttr(n, "ry", delta)
	case "circle":
		growAttr(n, "r", delta)
	}
}

func growAttr(n *dom.ElementNode, key string, delta float64) {
	v, ok := floatAttr(n, key)
	if !ok {
		return
	}
	v += delta
	if v < 0 {
		v = 0
	}
	setFloatAttr(n, key, v)
}

// syncClip grows the rectangle of the clip region referenced by container
// when that rectangle itself contains the original bounds.
func (r *renderer) syncClip(container *dom.ElementNode, orig ElementBounds, delta float64) {
	ref, ok := container.Attrs.Get("clip-path")
	if !ok {
		return
	}
	clip := dom.FindByID(r.root, urlRef(ref))
	if clip == nil || clip.Tag != "clipPath" {
		return
	}
	for _, c := range clip.Children {
		if c.Tag != "rect" {
			continue
		}
		rb := ElementBounds{
			X:      attrFloatOr(c.Attrs, "x", 0.0),
			Y:      attrFloatOr(c.Attrs, "y", 0.0),
			Width:  attrFloatOr(c.Attrs, "width", 0.0),
			Height: attrFloatOr(c.Attrs, "height", 0.0),
		}
		if contains(rb, orig) {
			growAttr(c, "height", delta)
		}
	}
}

// syncFilter grows the referenced filter definition of a group whose only
// meaningful child is the changed text node. Filter y stays put; filter
// width is pinned to the constrained width whenever that mode is active.
func (r *renderer) syncFilter(container, changed *dom.ElementNode, delta float64, strat *RenderingStrategy) {
	if container.Tag != "g" {
		return
	}
	meaningful := 0
	only := (*dom.ElementNode)(nil)
	for _, c := range container.Children {
		if nonRenderable[c.Tag] {
			continue
		}
		meaningful++
		only = c
	}
	if meaningful != 1 || only != changed {
		return
	}
	ref, ok := container.Attrs.Get("filter")
	if !ok {
		return
	}
	f := dom.FindByID(r.root, urlRef(ref))
	if f == nil || f.Tag != "filter" {
		return
	}
	growAttr(f, "height", delta)
	if strat != nil && strat.Mode == WidthConstrained {
		setFloatAttr(f, "width", strat.MaxWidth)
	}
}

// growRoot grows the root's explicit height attribute (floored at zero)
// and its viewBox height. A root without a height attribute never gains
// one.
func (r *renderer) growRoot(delta float64) {
	root := r.root
	if h, ok := floatAttr(root, "height"); ok {
		nh := h + delta
		if nh < 0 {
			nh = 0
		}
		setFloatAttr(root, "height", nh)
	}
	if vb, ok := root.Attrs.Get("viewBox"); ok {
		fields := strings.Fields(strings.ReplaceAll(vb, ",", " "))
		if len(fields) == 4 {
			if h, ok := parseFloat(fields[3]); ok {
				fields[3] = num(h + delta).String()
				root.Attrs.Set("viewBox", strings.Join(fields, " "))
			}
		}
	}
}

func urlRef(s string) string {
	m := urlRefRE.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}
