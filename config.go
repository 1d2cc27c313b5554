package reflow

import (
	"encoding/json"
	"fmt"
)

// Config is the JSON shape produced by the editor conversion layer: the
// component and binding lists that drive a render.
type Config struct {
	Components []Component
	Bindings   []Binding
}

type configJSON struct {
	Components []componentJSON `json:"components"`
	Bindings   []bindingJSON   `json:"bindings"`
}

type componentJSON struct {
	Type       string        `json:"type"`
	ID         string        `json:"id"`
	ElementID  string        `json:"elementId"`
	Strategy   *strategyJSON `json:"strategy"`
	Color      string        `json:"color"`
	Roles      *rolesJSON    `json:"roles"`
	ElementIDs []string      `json:"elementIds"`
}

type strategyJSON struct {
	Width       string  `json:"width"` // "natural" or "constrained"
	MaxWidth    float64 `json:"maxWidth"`
	Alignment   string  `json:"alignment"` // "start", "middle" or "end"
	Offset      float64 `json:"offset"`
	LineSpacing float64 `json:"lineSpacing"`
}

type rolesJSON struct {
	Fill      bool `json:"fill"`
	Stroke    bool `json:"stroke"`
	StopColor bool `json:"stopColor"`
}

type bindingJSON struct {
	SourceNodeID      string `json:"sourceNodeId"`
	SourceField       string `json:"sourceField"`
	TargetComponentID string `json:"targetComponentId"`
}

// ParseConfig decodes a JSON component/binding configuration. Components
// are discriminated by their type field.
func ParseConfig(b []byte) (*Config, error) {
	var raw configJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("bad config: %w", err)
	}
	cfg := &Config{}
	for _, c := range raw.Components {
		switch c.Type {
		case "text":
			tc := TextComponent{ID: c.ID, ElementID: c.ElementID}
			if c.Strategy != nil {
				tc.Strategy = c.Strategy.strategy()
			}
			cfg.Components = append(cfg.Components, tc)
		case "image":
			cfg.Components = append(cfg.Components, ImageComponent{ID: c.ID, ElementID: c.ElementID})
		case "color":
			cc := ColorComponent{ID: c.ID, Color: c.Color, ElementIDs: c.ElementIDs}
			if c.Roles != nil {
				cc.Roles = ColorRoles{Fill: c.Roles.Fill, Stroke: c.Roles.Stroke, StopColor: c.Roles.StopColor}
			}
			cfg.Components = append(cfg.Components, cc)
		default:
			return nil, fmt.Errorf("bad config: unknown component type %q", c.Type)
		}
	}
	for _, b := range raw.Bindings {
		cfg.Bindings = append(cfg.Bindings, Binding{
			SourceNodeID:      b.SourceNodeID,
			SourceField:       b.SourceField,
			TargetComponentID: b.TargetComponentID,
		})
	}
	return cfg, nil
}

func (s *strategyJSON) strategy() *RenderingStrategy {
	strat := &RenderingStrategy{MaxWidth: s.MaxWidth, Offset: s.Offset, LineSpacing: s.LineSpacing}
	if s.Width == "constrained" {
		strat.Mode = WidthConstrained
	}
	switch s.Alignment {
	case "middle", "center":
		strat.Alignment = AlignMiddle
	case "end", "right":
		strat.Alignment = AlignEnd
	}
	return strat
}
