package paapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/lgc202/go-paapi/httpx"
	"github.com/lgc202/go-paapi/version"
	"github.com/lgc202/go-paapi/xmlview"
)

const (
	OperationItemSearch = "ItemSearch"
	OperationItemLookup = "ItemLookup"
)

// Response groups used by the search helpers.
const (
	ResponseGroupItemIDs    = "ItemIds"
	ResponseGroupLarge      = "Large"
	ResponseGroupSearchBins = "SearchBins"
)

// Client calls the service. It is safe for concurrent use.
type Client struct {
	signer Signer
	http   *httpx.Client
	logger zerolog.Logger
}

type clientConfig struct {
	marketplace string
	endpoint    string
	http        *httpx.Client
	rateLimit   float64
	logger      *zerolog.Logger
}

type Option interface{ apply(*clientConfig) }

type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

// WithMarketplace selects the marketplace by code; see Marketplaces.
func WithMarketplace(code string) Option {
	return optionFunc(func(c *clientConfig) { c.marketplace = code })
}

// WithEndpoint overrides the marketplace host with an absolute URL such as
// "http://127.0.0.1:8080". Only its scheme and host are used.
func WithEndpoint(rawURL string) Option {
	return optionFunc(func(c *clientConfig) { c.endpoint = rawURL })
}

// WithHTTPClient replaces the default transport client.
func WithHTTPClient(hc *httpx.Client) Option {
	return optionFunc(func(c *clientConfig) { c.http = hc })
}

// WithRateLimit caps outgoing attempts per second, retries included.
// The service's base allowance is one request per second.
func WithRateLimit(rps float64) Option {
	return optionFunc(func(c *clientConfig) { c.rateLimit = rps })
}

func WithLogger(l zerolog.Logger) Option {
	return optionFunc(func(c *clientConfig) { c.logger = &l })
}

// NewClient returns a client for creds.
func NewClient(creds Credentials, opts ...Option) (*Client, error) {
	cfg := clientConfig{marketplace: DefaultMarketplace}
	for _, o := range opts {
		if o != nil {
			o.apply(&cfg)
		}
	}
	if creds.AccessKey == "" || creds.SecretKey == "" {
		return nil, ErrMissingCredentials
	}

	s := Signer{Credentials: creds}
	if cfg.endpoint != "" {
		u, err := url.Parse(cfg.endpoint)
		if err != nil {
			return nil, fmt.Errorf("paapi: endpoint: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("paapi: endpoint %q must be absolute", cfg.endpoint)
		}
		s.Scheme, s.Host = u.Scheme, u.Host
	} else {
		host, ok := MarketplaceHost(cfg.marketplace)
		if !ok {
			return nil, fmt.Errorf("paapi: unknown marketplace %q", cfg.marketplace)
		}
		s.Host = host
	}

	hc := cfg.http
	if hc == nil {
		var err error
		hc, err = httpx.New(httpx.WithUserAgent(version.UserAgent()))
		if err != nil {
			return nil, err
		}
	}
	if cfg.rateLimit > 0 {
		hc.WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.rateLimit), 1))
	}

	logger := log.Logger
	if cfg.logger != nil {
		logger = *cfg.logger
	}
	return &Client{
		signer: s,
		http:   hc,
		logger: logger.With().Str("component", "paapi").Str("host", s.Host).Logger(),
	}, nil
}

// Host returns the service host requests are sent to.
func (c *Client) Host() string { return c.signer.Host }

// HTTP returns the transport client, e.g. to install hooks before first use.
func (c *Client) HTTP() *httpx.Client { return c.http }

// Do calls operation and parses the result. Throttled and expired requests
// are retried by the transport, re-signed on every attempt. Service errors
// are returned as their typed errors (see IsThrottled, AsServiceError).
func (c *Client) Do(ctx context.Context, operation string, params map[string]string) (*Response, error) {
	resp, err := c.fetch(ctx, operation, params)
	if err != nil {
		return nil, err
	}
	return ParseResponse(resp.Body)
}

// Raw calls operation and returns the body unparsed.
//
// When a response arrived the body is returned even alongside an error, so
// callers can inspect or persist error documents.
func (c *Client) Raw(ctx context.Context, operation string, params map[string]string) ([]byte, error) {
	resp, err := c.fetch(ctx, operation, params)
	if resp == nil {
		return nil, err
	}
	return resp.Body, err
}

func (c *Client) fetch(ctx context.Context, operation string, params map[string]string) (*httpx.Response, error) {
	build := httpx.URLFunc(func(attempt int) (string, error) {
		c.logger.Debug().Str("operation", operation).Int("attempt", attempt).Msg("signing request")
		return c.signer.SignedURL(operation, params)
	})
	resp, err := c.http.Do(ctx, build, httpx.WithClassifier(classifyBody))
	if err != nil {
		c.logger.Warn().Err(err).Str("operation", operation).Msg("request failed")
	}
	return resp, err
}

// classifyBody applies CheckContent to every body. Bodies that are not XML
// are left to the status check.
func classifyBody(resp *httpx.Response) (bool, error) {
	err := CheckContent(resp.Body)
	if err == nil || errors.Is(err, xmlview.ErrParse) {
		return false, nil
	}
	return IsRetryable(err), err
}

// SearchParams are the arguments of an ItemSearch.
type SearchParams struct {
	SearchIndex    string
	Keywords       string
	Brand          string
	ItemPage       int
	ResponseGroups []string

	// Extra is merged last and wins over the fields above.
	Extra map[string]string
}

// Values renders p as request parameters. Empty fields are omitted.
func (p SearchParams) Values() map[string]string {
	v := make(map[string]string)
	set := func(k, s string) {
		if s != "" {
			v[k] = s
		}
	}
	set("SearchIndex", p.SearchIndex)
	set("Keywords", p.Keywords)
	set("Brand", p.Brand)
	if p.ItemPage > 0 {
		v["ItemPage"] = strconv.Itoa(p.ItemPage)
	}
	set("ResponseGroup", strings.Join(p.ResponseGroups, ","))
	for k, s := range p.Extra {
		v[k] = s
	}
	return v
}

// BrandSearchParams finds the brands matching brand, as SearchBins.
func BrandSearchParams(index, brand string, page int) SearchParams {
	return SearchParams{
		SearchIndex:    index,
		Keywords:       brand,
		ItemPage:       max(page, 1),
		ResponseGroups: []string{ResponseGroupSearchBins},
	}
}

// AsinSearchParams finds the items of brand with full details.
func AsinSearchParams(index, brand string, page int) SearchParams {
	return SearchParams{
		SearchIndex:    index,
		Keywords:       brand,
		Brand:          brand,
		ItemPage:       max(page, 1),
		ResponseGroups: []string{ResponseGroupItemIDs, ResponseGroupLarge, ResponseGroupSearchBins},
	}
}

// ItemLookupParams looks up ids with the given response groups.
func ItemLookupParams(ids, groups []string) map[string]string {
	v := map[string]string{"ItemId": strings.Join(ids, ",")}
	if len(groups) > 0 {
		v["ResponseGroup"] = strings.Join(groups, ",")
	}
	return v
}

func (c *Client) ItemSearch(ctx context.Context, p SearchParams) (*Response, error) {
	return c.Do(ctx, OperationItemSearch, p.Values())
}

func (c *Client) BrandSearch(ctx context.Context, index, brand string, page int) (*Response, error) {
	return c.ItemSearch(ctx, BrandSearchParams(index, brand, page))
}

func (c *Client) AsinSearch(ctx context.Context, index, brand string, page int) (*Response, error) {
	return c.ItemSearch(ctx, AsinSearchParams(index, brand, page))
}

// ItemLookup fetches up to ten items by ASIN.
func (c *Client) ItemLookup(ctx context.Context, ids, groups []string) (*Response, error) {
	if len(ids) == 0 {
		return nil, errors.New("paapi: item lookup needs at least one id")
	}
	return c.Do(ctx, OperationItemLookup, ItemLookupParams(ids, groups))
}
