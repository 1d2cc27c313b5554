// Package dom implements the addressable element tree that the reflow
// pipeline operates on: parsing markup into nodes with stable identifiers,
// mutating those nodes in place, and serializing them back to markup.
package dom

// Attributes is an order-preserving string map. Attribute order is part of
// the serialized output, so insertion order is kept for re-serialization.
type Attributes struct {
	keys []string
	vals map[string]string
}

// NewAttributes returns an empty attribute map.
func NewAttributes() *Attributes {
	return &Attributes{vals: map[string]string{}}
}

// Get returns the value for key and whether it is present.
func (a *Attributes) Get(key string) (string, bool) {
	val, ok := a.vals[key]
	return val, ok
}

// Set sets key to val, keeping the original position when key already exists.
func (a *Attributes) Set(key, val string) {
	if _, ok := a.vals[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.vals[key] = val
}

// Del removes key.
func (a *Attributes) Del(key string) {
	if _, ok := a.vals[key]; !ok {
		return
	}
	delete(a.vals, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the attribute names in insertion order.
func (a *Attributes) Keys() []string {
	return a.keys
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.keys)
}

// Clone returns a deep copy.
func (a *Attributes) Clone() *Attributes {
	b := NewAttributes()
	for _, k := range a.keys {
		b.Set(k, a.vals[k])
	}
	return b
}

// ElementNode is a single element of the document tree. Children are owned
// by their parent and nodes store no parent references; parent lookup is
// done by tree search (see FindParent).
type ElementNode struct {
	Tag        string
	Attrs      *Attributes
	Children   []*ElementNode
	ID         string // working id, always non-empty after parsing
	OriginalID string // id present in the source markup, if any
	IsText     bool
	IsImage    bool

	// InnerMarkup holds the raw markup of a text element's inline runs and
	// character data, preserved verbatim instead of being decomposed into
	// generic child nodes. Text is its plain-text projection.
	InnerMarkup string
	Text        string
}

// Walk visits n and all of its descendants in document order.
func Walk(n *ElementNode, fn func(*ElementNode)) {
	fn(n)
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// FindByID returns the node whose working or original id equals id, or nil.
func FindByID(root *ElementNode, id string) *ElementNode {
	if id == "" {
		return nil
	}
	var found *ElementNode
	Walk(root, func(n *ElementNode) {
		if found == nil && (n.ID == id || n.OriginalID == id) {
			found = n
		}
	})
	return found
}

// FindParent returns the parent of child within root, or nil when child is
// the root or not part of the tree. O(size) per lookup; cascades are
// shallow so this stays cheap in practice.
func FindParent(root, child *ElementNode) *ElementNode {
	var found *ElementNode
	Walk(root, func(n *ElementNode) {
		if found != nil {
			return
		}
		for _, c := range n.Children {
			if c == child {
				found = n
				return
			}
		}
	})
	return found
}
