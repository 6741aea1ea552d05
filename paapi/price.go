package paapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/shopspring/decimal"

	"github.com/lgc202/go-paapi/xmlview"
)

// ErrNoAmount is returned by Price.Decimal when the price has no Amount.
var ErrNoAmount = errors.New("paapi: price has no amount")

// Price wraps the Amount/CurrencyCode/FormattedPrice shape used by list
// prices, offer prices and savings.
type Price struct{ xmlview.Element }

func NewPrice(n *xmlquery.Node) Price { return Price{xmlview.New(n, Namespaces)} }

// Amount is the price in the currency's minor unit, e.g. "28895" for $288.95.
func (p Price) Amount() string         { return p.Text("./a:Amount/text()") }
func (p Price) CurrencyCode() string   { return p.Text("./a:CurrencyCode/text()") }
func (p Price) FormattedPrice() string { return p.Text("./a:FormattedPrice/text()") }

// zero-decimal currencies the service prices in.
var minorUnits = map[string]int32{
	"JPY": 0,
	"KRW": 0,
}

// Decimal converts Amount to major units using the currency's minor-unit exponent.
func (p Price) Decimal() (decimal.Decimal, error) {
	amount, ok := p.Lookup("./a:Amount/text()")
	if !ok {
		return decimal.Zero, ErrNoAmount
	}
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Zero, fmt.Errorf("paapi: parse amount %q: %w", amount, err)
	}
	exp, ok := minorUnits[strings.ToUpper(p.CurrencyCode())]
	if !ok {
		exp = 2
	}
	return d.Shift(-exp), nil
}
