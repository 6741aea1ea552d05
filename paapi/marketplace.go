package paapi

import (
	"sort"
	"strings"
)

// DefaultMarketplace is used when no marketplace is configured.
const DefaultMarketplace = "us"

// Marketplaces maps marketplace codes to service hosts.
var Marketplaces = map[string]string{
	"us": "webservices.amazon.com",
	"br": "webservices.amazon.com.br",
	"ca": "webservices.amazon.ca",
	"cn": "webservices.amazon.cn",
	"de": "webservices.amazon.de",
	"es": "webservices.amazon.es",
	"fr": "webservices.amazon.fr",
	"in": "webservices.amazon.in",
	"it": "webservices.amazon.it",
	"jp": "webservices.amazon.jp",
	"mx": "webservices.amazon.com.mx",
	"uk": "webservices.amazon.co.uk",
}

// MarketplaceHost returns the host for code, case-insensitively.
func MarketplaceHost(code string) (string, bool) {
	host, ok := Marketplaces[strings.ToLower(strings.TrimSpace(code))]
	return host, ok
}

// MarketplaceCodes returns the known codes in sorted order.
func MarketplaceCodes() []string {
	codes := make([]string, 0, len(Marketplaces))
	for c := range Marketplaces {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
