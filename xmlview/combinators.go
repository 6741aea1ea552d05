package xmlview

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// First returns the first element of s. It reports false when s is empty.
func First[T any](s []T) (T, bool) {
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return s[0], true
}

// ParseBool reports whether s is "true", ignoring case. Every other value,
// including "", "false" and "yes", is false.
func ParseBool(s string) bool {
	return strings.EqualFold(s, "true")
}

// WrapOne wraps the first node with ctor. With no nodes ctor receives nil and
// the result is an absent view.
func WrapOne[V any](nodes []*xmlquery.Node, ctor func(*xmlquery.Node) V) V {
	n, _ := First(nodes)
	return ctor(n)
}

// WrapAll wraps every node with ctor, keeping document order.
func WrapAll[V any](nodes []*xmlquery.Node, ctor func(*xmlquery.Node) V) []V {
	out := make([]V, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ctor(n))
	}
	return out
}

// One queries e and wraps the first match.
func One[V any](e Element, expr string, ctor func(*xmlquery.Node) V) V {
	return WrapOne(e.Query(expr), ctor)
}

// All queries e and wraps every match.
func All[V any](e Element, expr string, ctor func(*xmlquery.Node) V) []V {
	return WrapAll(e.Query(expr), ctor)
}
