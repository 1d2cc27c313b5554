package dom

import (
	"fmt"
	"regexp"
)

const idPrefix = "fmo"

var idAttrRE = regexp.MustCompile(`\bid\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// IDGenerator issues non-empty, collision-free element identifiers of the
// form "fmo-{tag}-{n}". The counter n is 1-based and scoped to both the
// nesting depth and the tag name: siblings at the same depth sharing a tag
// share a counter, while a deeper level starts its own counters from 1.
// The depth is driven explicitly by Enter/Exit during the recursive
// descent of the parser.
type IDGenerator struct {
	used  map[string]struct{}
	stack []map[string]int
}

// NewIDGenerator returns a generator positioned at depth zero.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{
		used:  map[string]struct{}{},
		stack: []map[string]int{{}},
	}
}

// Seed records every id literally present anywhere in markup, via a
// full-text scan rather than a tree walk, so that synthesized ids never
// collide with pre-existing ones.
func (g *IDGenerator) Seed(markup string) {
	for _, m := range idAttrRE.FindAllStringSubmatch(markup, -1) {
		if m[1] != "" {
			g.used[m[1]] = struct{}{}
		} else if m[2] != "" {
			g.used[m[2]] = struct{}{}
		}
	}
}

// Claim records id as taken for the remainder of the session.
func (g *IDGenerator) Claim(id string) {
	g.used[id] = struct{}{}
}

// Enter pushes a fresh depth level with its own counters.
func (g *IDGenerator) Enter() {
	g.stack = append(g.stack, map[string]int{})
}

// Exit pops the current depth level.
func (g *IDGenerator) Exit() {
	if 1 < len(g.stack) {
		g.stack = g.stack[:len(g.stack)-1]
	}
}

// Reset clears all per-depth counters while keeping the seeded and issued
// id set, so a reused generator never re-issues an id.
func (g *IDGenerator) Reset() {
	g.stack = []map[string]int{{}}
}

// Next synthesizes the next id for tag at the current depth. If the
// candidate already exists a numeric ":{n}" suffix is appended and
// incremented until unique. Every returned id is recorded.
func (g *IDGenerator) Next(tag string) string {
	level := g.stack[len(g.stack)-1]
	level[tag]++
	id := fmt.Sprintf("%s-%s-%d", idPrefix, tag, level[tag])
	if _, ok := g.used[id]; ok {
		for n := 1; ; n++ {
			candidate := fmt.Sprintf("%s:%d", id, n)
			if _, ok := g.used[candidate]; !ok {
				id = candidate
				break
			}
		}
	}
	g.used[id] = struct{}{}
	return id
}
