package reflow

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/formo/reflow/dom"
	"github.com/tdewolff/minify/v2"
)

// Precision is the number of significant digits written for mutated
// numeric attributes.
var Precision = 6

type num float64

func (f num) String() string {
	s := fmt.Sprintf("%.*g", Precision, float64(f))
	if num(math.MaxInt32) < f || f < num(math.MinInt32) {
		if i := strings.IndexAny(s, ".eE"); i == -1 {
			s += ".0"
		}
	}
	return string(minify.Number([]byte(s), Precision))
}

func floatAttr(n *dom.ElementNode, key string) (float64, bool) {
	s, ok := n.Attrs.Get(key)
	if !ok {
		return 0.0, false
	}
	return parseFloat(s)
}

func setFloatAttr(n *dom.ElementNode, key string, v float64) {
	n.Attrs.Set(key, num(v).String())
}

func attrFloat(attrs *dom.Attributes, key string) (float64, bool) {
	s, ok := attrs.Get(key)
	if !ok {
		return 0.0, false
	}
	return parseFloat(s)
}

func attrFloatOr(attrs *dom.Attributes, key string, def float64) float64 {
	if s, ok := attrs.Get(key); ok {
		if f, ok := parseFloat(s); ok {
			return f
		}
	}
	return def
}

// parseFloat reads a number with an optional trailing unit such as px.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	i := len(s)
	for 0 < i && !isNumByte(s[i-1]) {
		i--
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0.0, false
	}
	return f, true
}

func isNumByte(c byte) bool {
	return '0' <= c && c <= '9' || c == '.' || c == '-' || c == '+'
}
