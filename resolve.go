package reflow

import (
	"strconv"
	"strings"
)

// Resolve follows a dot-separated path into a decoded JSON value. Numeric
// segments index arrays. It reports false the moment a segment is missing
// or the current value is not an object or array; it never panics.
func Resolve(value interface{}, path string) (interface{}, bool) {
	cur := value
	for _, seg := range strings.Split(path, ".") {
		switch v := cur.(type) {
		case map[string]interface{}:
			next, ok := v[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []interface{}:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || len(v) <= i {
				return nil, false
			}
			cur = v[i]
		default:
			return nil, false
		}
	}
	return cur, true
}
