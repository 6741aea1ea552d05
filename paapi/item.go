package paapi

import (
	"fmt"

	"github.com/antchfx/xmlquery"

	"github.com/lgc202/go-paapi/xmlview"
)

type ItemAttributes struct{ xmlview.Element }

func NewItemAttributes(n *xmlquery.Node) ItemAttributes {
	return ItemAttributes{xmlview.New(n, Namespaces)}
}

func (a ItemAttributes) Brand() string        { return a.Text("./a:Brand/text()") }
func (a ItemAttributes) Manufacturer() string { return a.Text("./a:Manufacturer/text()") }
func (a ItemAttributes) Title() string        { return a.Text("./a:Title/text()") }
func (a ItemAttributes) Color() string        { return a.Text("./a:Color/text()") }
func (a ItemAttributes) Label() string        { return a.Text("./a:Label/text()") }
func (a ItemAttributes) Publisher() string    { return a.Text("./a:Publisher/text()") }

// ListPrice is the manufacturer's list price.
func (a ItemAttributes) ListPrice() Price {
	return xmlview.One(a.Element, "./a:ListPrice", NewPrice)
}

// Features returns every Feature bullet in document order.
func (a ItemAttributes) Features() []string { return a.Texts("./a:Feature/text()") }

type Item struct{ xmlview.Element }

func NewItem(n *xmlquery.Node) Item { return Item{xmlview.New(n, Namespaces)} }

func (i Item) ASIN() string      { return i.Text("./a:ASIN/text()") }
func (i Item) SalesRank() string { return i.Text("./a:SalesRank/text()") }

func (i Item) ItemAttributes() ItemAttributes {
	return xmlview.One(i.Element, "./a:ItemAttributes", NewItemAttributes)
}

func (i Item) Offer() Offer { return xmlview.One(i.Element, "./a:Offers/a:Offer", NewOffer) }

func (i Item) OfferSummary() OfferSummary {
	return xmlview.One(i.Element, "./a:OfferSummary", NewOfferSummary)
}

func (i Item) SmallImage() Image  { return xmlview.One(i.Element, "./a:SmallImage", NewImage) }
func (i Item) MediumImage() Image { return xmlview.One(i.Element, "./a:MediumImage", NewImage) }
func (i Item) LargeImage() Image  { return xmlview.One(i.Element, "./a:LargeImage", NewImage) }

// ImageSet returns the image set with the given Category attribute.
func (i Item) ImageSet(category string) ImageSet {
	expr := fmt.Sprintf("./a:ImageSets/a:ImageSet[@Category=%s]", xmlview.Literal(category))
	return xmlview.One(i.Element, expr, NewImageSet)
}

func (i Item) PrimaryImageSet() ImageSet { return i.ImageSet(ImageSetPrimary) }
func (i Item) VariantImageSet() ImageSet { return i.ImageSet(ImageSetVariant) }

func (i Item) String() string { return i.ASIN() }

// Items is the result section of a response.
type Items struct{ xmlview.Element }

func NewItems(n *xmlquery.Node) Items { return Items{xmlview.New(n, Namespaces)} }

func (s Items) Request() Request { return xmlview.One(s.Element, "./a:Request", NewRequest) }

func (s Items) TotalResults() string { return s.Text("./a:TotalResults/text()") }
func (s Items) TotalPages() string   { return s.Text("./a:TotalPages/text()") }

func (s Items) MoreSearchResultsURL() string {
	return s.Text("./a:MoreSearchResultsUrl/text()")
}

// Items returns the Item children in document order.
func (s Items) Items() []Item { return xmlview.All(s.Element, "./a:Item", NewItem) }
