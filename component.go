package reflow

// WidthMode selects between natural single-line replacement and
// width-constrained multi-line reflow.
type WidthMode int

// see WidthMode
const (
	WidthNatural WidthMode = iota
	WidthConstrained
)

// Alignment is the horizontal text alignment of a text component.
type Alignment int

// see Alignment
const (
	AlignStart Alignment = iota
	AlignMiddle
	AlignEnd
)

// Anchor returns the text-anchor attribute value for the alignment.
func (a Alignment) Anchor() string {
	switch a {
	case AlignMiddle:
		return "middle"
	case AlignEnd:
		return "end"
	}
	return "start"
}

// RenderingStrategy configures how a text component renders its value.
// MaxWidth is only used in constrained mode. Offset shifts the anchor
// x-position; LineSpacing is added between wrapped lines.
type RenderingStrategy struct {
	Mode        WidthMode
	MaxWidth    float64
	Alignment   Alignment
	Offset      float64
	LineSpacing float64
}

// Component is a typed role attached to one or more template elements. It
// is a closed sum: TextComponent, ImageComponent or ColorComponent.
type Component interface {
	ComponentID() string
}

// TextComponent binds a data value to a text element's content.
type TextComponent struct {
	ID        string
	ElementID string
	Strategy  *RenderingStrategy
}

// ComponentID implements Component.
func (c TextComponent) ComponentID() string { return c.ID }

// ImageComponent binds a data value to an image element's reference.
type ImageComponent struct {
	ID        string
	ElementID string
}

// ComponentID implements Component.
func (c ImageComponent) ComponentID() string { return c.ID }

// ColorRoles enables color substitution per attribute role.
type ColorRoles struct {
	Fill      bool
	Stroke    bool
	StopColor bool
}

// ColorComponent repaints every element currently using Color with a bound
// value. An empty ElementIDs list means all elements are candidates.
type ColorComponent struct {
	ID         string
	Color      string
	Roles      ColorRoles
	ElementIDs []string
}

// ComponentID implements Component.
func (c ColorComponent) ComponentID() string { return c.ID }

// Binding links a field of a data source to a target component. Bindings
// without a matching component, and components without a matching element,
// are silently ignored.
type Binding struct {
	SourceNodeID      string
	SourceField       string
	TargetComponentID string
}

// DataSources maps source ids to decoded JSON values. It is treated as
// immutable input.
type DataSources map[string]interface{}
