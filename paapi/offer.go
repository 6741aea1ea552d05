package paapi

import (
	"github.com/antchfx/xmlquery"

	"github.com/lgc202/go-paapi/xmlview"
)

type OfferSummary struct{ xmlview.Element }

func NewOfferSummary(n *xmlquery.Node) OfferSummary {
	return OfferSummary{xmlview.New(n, Namespaces)}
}

func (s OfferSummary) LowestNewPrice() Price {
	return xmlview.One(s.Element, "./a:LowestNewPrice", NewPrice)
}

func (s OfferSummary) LowestUsedPrice() Price {
	return xmlview.One(s.Element, "./a:LowestUsedPrice", NewPrice)
}

func (s OfferSummary) TotalNew() string         { return s.Text("./a:TotalNew/text()") }
func (s OfferSummary) TotalUsed() string        { return s.Text("./a:TotalUsed/text()") }
func (s OfferSummary) TotalCollectible() string { return s.Text("./a:TotalCollectible/text()") }
func (s OfferSummary) TotalRefurbished() string { return s.Text("./a:TotalRefurbished/text()") }

type OfferListing struct{ xmlview.Element }

func NewOfferListing(n *xmlquery.Node) OfferListing {
	return OfferListing{xmlview.New(n, Namespaces)}
}

func (l OfferListing) OfferListingID() string { return l.Text("./a:OfferListingId/text()") }

func (l OfferListing) Price() Price { return xmlview.One(l.Element, "./a:Price", NewPrice) }

func (l OfferListing) AmountSaved() Price {
	return xmlview.One(l.Element, "./a:AmountSaved", NewPrice)
}

func (l OfferListing) PercentageSaved() string { return l.Text("./a:PercentageSaved/text()") }
func (l OfferListing) Availability() string    { return l.Text("./a:Availability/text()") }

// Offer flattens Offer/OfferListing. The service keeps the nested layout but
// returns at most one listing per offer, so the listing's fields are exposed
// directly.
type Offer struct{ xmlview.Element }

func NewOffer(n *xmlquery.Node) Offer { return Offer{xmlview.New(n, Namespaces)} }

func (o Offer) Merchant() string  { return o.Text("./a:Merchant/a:Name/text()") }
func (o Offer) Condition() string { return o.Text("./a:OfferAttributes/a:Condition/text()") }

func (o Offer) Listing() OfferListing {
	return xmlview.One(o.Element, "./a:OfferListing", NewOfferListing)
}

func (o Offer) Price() Price            { return o.Listing().Price() }
func (o Offer) AmountSaved() Price      { return o.Listing().AmountSaved() }
func (o Offer) PercentageSaved() string { return o.Listing().PercentageSaved() }
func (o Offer) Availability() string    { return o.Listing().Availability() }
