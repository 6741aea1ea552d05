package paapi

import (
	"fmt"

	"github.com/antchfx/xmlquery"

	"github.com/lgc202/go-paapi/xmlview"
)

// KeyValue is a plain name/value pair.
type KeyValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// KeyValuePair wraps elements that carry Name and Value attributes, such as
// the echoed HTTP headers and request arguments of an OperationRequest.
type KeyValuePair struct{ xmlview.Element }

func NewKeyValuePair(n *xmlquery.Node) KeyValuePair {
	return KeyValuePair{xmlview.New(n, Namespaces)}
}

func (p KeyValuePair) Name() string  { return p.Text("./@Name") }
func (p KeyValuePair) Value() string { return p.Text("./@Value") }

func (p KeyValuePair) Pair() KeyValue { return KeyValue{Key: p.Name(), Value: p.Value()} }

func (p KeyValuePair) String() string { return fmt.Sprintf("%s=%s", p.Name(), p.Value()) }

func pairs(ps []KeyValuePair) []KeyValue {
	out := make([]KeyValue, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Pair())
	}
	return out
}
