package paapi

import (
	"github.com/antchfx/xmlquery"

	"github.com/lgc202/go-paapi/xmlview"
)

// Search bin set names, used as the narrowBy argument of Response.SearchBins.
const (
	SearchBinSubject       = "Subject"
	SearchBinBrandName     = "BrandName"
	SearchBinPriceRange    = "PriceRange"
	SearchBinPercentageOff = "PercentageOff"
)

// BinParameter is the request parameter that narrows a search to one bin.
// Unlike KeyValuePair its name and value are child elements.
type BinParameter struct{ xmlview.Element }

func NewBinParameter(n *xmlquery.Node) BinParameter {
	return BinParameter{xmlview.New(n, Namespaces)}
}

func (p BinParameter) Name() string  { return p.Text("./a:Name/text()") }
func (p BinParameter) Value() string { return p.Text("./a:Value/text()") }

func (p BinParameter) Pair() KeyValue { return KeyValue{Key: p.Name(), Value: p.Value()} }

// Bin is one facet of a search result, e.g. a brand and its item count.
type Bin struct{ xmlview.Element }

func NewBin(n *xmlquery.Node) Bin { return Bin{xmlview.New(n, Namespaces)} }

func (b Bin) Name() string      { return b.Text("./a:BinName/text()") }
func (b Bin) ItemCount() string { return b.Text("./a:BinItemCount/text()") }

func (b Bin) Parameter() BinParameter {
	return xmlview.One(b.Element, "./a:BinParameter", NewBinParameter)
}

// RequestParams returns the parameter to add to a search to drill into this bin.
func (b Bin) RequestParams() map[string]string {
	p := b.Parameter()
	if !p.Present() {
		return map[string]string{}
	}
	return map[string]string{p.Name(): p.Value()}
}

func (b Bin) String() string { return b.Name() }
