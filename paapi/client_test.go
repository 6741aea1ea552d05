package paapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/lgc202/go-paapi/httpx"
)

func testClient(t *testing.T, h http.HandlerFunc, attempts int) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	retry := httpx.DefaultRetryConfig()
	retry.MaxAttempts = attempts
	retry.Backoff = httpx.ConstantBackoff(0)
	hc, err := httpx.New(httpx.WithRetry(retry))
	if err != nil {
		t.Fatalf("httpx.New: %v", err)
	}
	c, err := NewClient(
		Credentials{AccessKey: "AKID", SecretKey: "secret", AssociateTag: "tag-20"},
		WithEndpoint(srv.URL),
		WithHTTPClient(hc),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClient(t *testing.T) {
	if _, err := NewClient(Credentials{AccessKey: "a"}); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, err := NewClient(Credentials{AccessKey: "a", SecretKey: "s"}, WithMarketplace("zz")); err == nil {
		t.Fatalf("expected unknown marketplace error")
	}
	c, err := NewClient(Credentials{AccessKey: "a", SecretKey: "s"}, WithMarketplace("de"), WithRateLimit(1))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.Host() != "webservices.amazon.de" {
		t.Fatalf("Host() = %q", c.Host())
	}
}

func TestClient_AsinSearch(t *testing.T) {
	var got map[string]string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		if r.URL.Path != RequestPath {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(searchBinsResponse))
	}, 1)

	resp, err := c.AsinSearch(context.Background(), "Appliances", "Magic Chef", 2)
	if err != nil {
		t.Fatalf("AsinSearch: %v", err)
	}
	if resp.Items().TotalResults() != "12" {
		t.Fatalf("TotalResults() = %q", resp.Items().TotalResults())
	}

	want := map[string]string{
		"Operation":      OperationItemSearch,
		"SearchIndex":    "Appliances",
		"Brand":          "Magic Chef",
		"Keywords":       "Magic Chef",
		"ItemPage":       "2",
		"ResponseGroup":  "ItemIds,Large,SearchBins",
		"AWSAccessKeyId": "AKID",
		"AssociateTag":   "tag-20",
		"Service":        "AWSECommerceService",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("param %s = %q, want %q", k, got[k], v)
		}
	}
	if got["Signature"] == "" || got["Timestamp"] == "" {
		t.Fatalf("request is not signed: %v", got)
	}
}

func TestClient_RetriesThrottledBody(t *testing.T) {
	var n int32
	var signatures []string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		signatures = append(signatures, r.URL.Query().Get("Signature"))
		if atomic.AddInt32(&n, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write(errorEnvelope(CodeRequestThrottled, "slow down"))
			return
		}
		_, _ = w.Write([]byte(itemLookupResponse))
	}, 3)

	resp, err := c.ItemLookup(context.Background(), []string{"B005BPZFAO"}, []string{"ItemAttributes"})
	if err != nil {
		t.Fatalf("ItemLookup: %v", err)
	}
	if atomic.LoadInt32(&n) != 2 || len(signatures) != 2 {
		t.Fatalf("expected 2 attempts, got %d", n)
	}
	if resp.Items().Items()[0].ASIN() != "B005BPZFAO" {
		t.Fatalf("unexpected response")
	}
}

func TestClient_RetriesExpiredOn200(t *testing.T) {
	var n int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&n, 1) == 1 {
			_, _ = w.Write(errorEnvelope(CodeRequestExpired, "too old"))
			return
		}
		_, _ = w.Write([]byte(itemLookupResponse))
	}, 3)

	if _, err := c.ItemLookup(context.Background(), []string{"B005BPZFAO"}, nil); err != nil {
		t.Fatalf("ItemLookup: %v", err)
	}
	if atomic.LoadInt32(&n) != 2 {
		t.Fatalf("expected 2 attempts, got %d", n)
	}
}

func TestClient_SignatureMismatchNotRetried(t *testing.T) {
	var n int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&n, 1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write(errorEnvelope(CodeSignatureDoesNotMatch, "bad signature"))
	}, 3)

	_, err := c.BrandSearch(context.Background(), "Appliances", "Magic", 1)
	var sig *SignatureDoesNotMatchError
	if !errors.As(err, &sig) {
		t.Fatalf("expected SignatureDoesNotMatchError, got %v", err)
	}
	if sig.RequestID != "req-1" {
		t.Fatalf("RequestID = %q", sig.RequestID)
	}
	if atomic.LoadInt32(&n) != 1 {
		t.Fatalf("expected 1 attempt, got %d", n)
	}
}

func TestClient_ThrottledGivesUp(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(errorEnvelope(CodeRequestThrottled, "slow down"))
	}, 2)

	_, err := c.ItemSearch(context.Background(), SearchParams{SearchIndex: "All", Keywords: "x"})
	if !IsThrottled(err) {
		t.Fatalf("expected throttled error, got %v", err)
	}
	he, ok := httpx.AsError(err)
	if !ok || he.Attempts != 2 || !he.Retryable {
		t.Fatalf("unexpected transport error: %+v", he)
	}
}

func TestClient_Raw(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(errorEnvelope("AWS.InvalidParameterValue", "bad"))
	}, 1)

	body, err := c.Raw(context.Background(), OperationItemSearch, BrandSearchParams("All", "x", 0).Values())
	if err == nil {
		t.Fatalf("expected service error")
	}
	if len(body) == 0 {
		t.Fatalf("Raw should return the error body")
	}
	if cerr := CheckContent(body); cerr == nil {
		t.Fatalf("body should carry the error")
	}
}

func TestClient_InvalidRequest(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<ItemSearchResponse xmlns="http://webservices.amazon.com/AWSECommerceService/2011-08-01">
			<Items><Request><IsValid>False</IsValid></Request></Items>
		</ItemSearchResponse>`))
	}, 3)

	_, err := c.AsinSearch(context.Background(), "All", "x", 1)
	se, ok := AsServiceError(err)
	if !ok || se.Code != CodeUnknownError {
		t.Fatalf("expected UNKNOWN_ERROR, got %v", err)
	}
}

func TestSearchParams_Values(t *testing.T) {
	v := BrandSearchParams("Appliances", "Magic", 0).Values()
	if v["ItemPage"] != "1" || v["ResponseGroup"] != "SearchBins" || v["Keywords"] != "Magic" {
		t.Fatalf("unexpected values: %v", v)
	}
	if _, ok := v["Brand"]; ok {
		t.Fatalf("brand search should not set Brand")
	}

	p := SearchParams{SearchIndex: "All", Extra: map[string]string{"SearchIndex": "Books", "Sort": "salesrank"}}
	v = p.Values()
	if v["SearchIndex"] != "Books" || v["Sort"] != "salesrank" {
		t.Fatalf("Extra should win: %v", v)
	}
	if _, ok := v["ItemPage"]; ok {
		t.Fatalf("zero ItemPage should be omitted")
	}

	l := ItemLookupParams([]string{"A", "B"}, []string{"Large", "Offers"})
	if l["ItemId"] != "A,B" || l["ResponseGroup"] != "Large,Offers" {
		t.Fatalf("unexpected lookup params: %v", l)
	}
}
