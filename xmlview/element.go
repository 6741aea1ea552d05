package xmlview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/rs/zerolog/log"
)

// ErrParse is wrapped by every error returned for text that is not well-formed XML.
var ErrParse = errors.New("xmlview: malformed xml")

// Namespaces maps query prefixes to namespace URIs.
type Namespaces map[string]string

// Element is a read-only projection over one XML element.
type Element struct {
	node *xmlquery.Node
	ns   Namespaces
}

// New wraps node. A nil node yields the absent view.
//
// If neither node nor any of its ancestors declares a default namespace a
// warning is logged: prefixed queries will silently match nothing when the
// caller's namespace assumptions are wrong. Construction still succeeds.
func New(node *xmlquery.Node, ns Namespaces) Element {
	if node != nil && !hasDefaultNamespace(node) {
		log.Warn().
			Str("element", node.Data).
			Msg("document is missing a namespace; queries may not behave as expected")
	}
	return Element{node: node, ns: ns}
}

// Parse parses text and wraps its root element.
func Parse(text string, ns Namespaces) (Element, error) {
	root, err := ParseNode(text)
	if err != nil {
		return Element{ns: ns}, err
	}
	return New(root, ns), nil
}

// ParseAs parses text and hands its root element to ctor.
func ParseAs[V any](text string, ctor func(*xmlquery.Node) V) (V, error) {
	root, err := ParseNode(text)
	if err != nil {
		var zero V
		return zero, err
	}
	return ctor(root), nil
}

// ParseNode parses text and returns its root element.
func ParseNode(text string) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: no root element", ErrParse)
}

// Present reports whether the view is backed by a node.
func (e Element) Present() bool { return e.node != nil }

// Node returns the wrapped node, nil for the absent view.
func (e Element) Node() *xmlquery.Node { return e.node }

// Namespaces returns the prefix mapping used by the view's queries.
func (e Element) Namespaces() Namespaces { return e.ns }

// Query evaluates expr relative to the wrapped node. The absent view returns
// nil without compiling or evaluating expr.
//
// Expressions are part of the calling code, so one that does not compile
// panics, like regexp.MustCompile.
func (e Element) Query(expr string) []*xmlquery.Node {
	if e.node == nil {
		return nil
	}
	return xmlquery.QuerySelectorAll(e.node, mustCompile(expr, e.ns))
}

// Texts returns the text content of every match of expr, in document order.
func (e Element) Texts(expr string) []string {
	nodes := e.Query(expr)
	if len(nodes) == 0 {
		return nil
	}
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.InnerText())
	}
	return out
}

// Lookup returns the text of the first match of expr.
func (e Element) Lookup(expr string) (string, bool) {
	return First(e.Texts(expr))
}

// Text returns the text of the first match of expr, or "" when nothing matches.
func (e Element) Text(expr string) string {
	s, _ := e.Lookup(expr)
	return s
}

// Bool applies ParseBool to the first match of expr. No match is false.
func (e Element) Bool(expr string) bool {
	s, ok := e.Lookup(expr)
	if !ok {
		return false
	}
	return ParseBool(s)
}

// Serialize returns the XML text of the wrapped node, or "" for the absent view.
func (e Element) Serialize() string {
	if e.node == nil {
		return ""
	}
	return e.node.OutputXML(true)
}

func (e Element) String() string { return e.Serialize() }

func mustCompile(expr string, ns Namespaces) *xpath.Expr {
	x, err := xpath.CompileWithNS(expr, ns)
	if err != nil {
		panic(fmt.Sprintf("xmlview: invalid expression %q: %v", expr, err))
	}
	return x
}

func hasDefaultNamespace(n *xmlquery.Node) bool {
	for ; n != nil; n = n.Parent {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		for _, a := range n.Attr {
			if a.Name.Space == "" && a.Name.Local == "xmlns" && a.Value != "" {
				return true
			}
		}
	}
	return false
}

// Literal quotes s as an XPath string literal, for building predicates from
// caller-supplied values.
func Literal(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, `'`) {
		return `'` + s + `'`
	}
	parts := strings.Split(s, `"`)
	var b strings.Builder
	b.WriteString("concat(")
	for i, p := range parts {
		if i > 0 {
			b.WriteString(`, '"', `)
		}
		b.WriteString(`"` + p + `"`)
	}
	b.WriteString(")")
	return b.String()
}
