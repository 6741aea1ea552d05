package paapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/url"
	"sort"
	"strings"
	"time"
)

// ErrMissingCredentials is returned when the access key or secret is empty.
var ErrMissingCredentials = errors.New("paapi: missing access key or secret key")

const (
	// RequestPath is the fixed path of every operation.
	RequestPath = "/onca/xml"

	// TimestampFormat is the UTC layout of the Timestamp parameter.
	TimestampFormat = "2006-01-02T15:04:05.000Z"

	serviceName = "AWSECommerceService"
)

// Credentials identify the caller. AssociateTag is optional.
type Credentials struct {
	AccessKey    string
	SecretKey    string
	AssociateTag string
}

// Signer produces signed request URLs.
type Signer struct {
	Credentials

	// Host is the marketplace host; see Marketplaces.
	Host string

	// Scheme defaults to https.
	Scheme string

	// Now defaults to time.Now.
	Now func() time.Time
}

// SignedURL returns the URL for operation with params. params override the
// base parameters (AWSAccessKeyId, AssociateTag, Operation, Service,
// Timestamp) of the same name.
func (s Signer) SignedURL(operation string, params map[string]string) (string, error) {
	if s.AccessKey == "" || s.SecretKey == "" {
		return "", ErrMissingCredentials
	}
	if s.Host == "" {
		return "", errors.New("paapi: signer has no host")
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	all := map[string]string{
		"AWSAccessKeyId": s.AccessKey,
		"Operation":      operation,
		"Service":        serviceName,
		"Timestamp":      now().UTC().Format(TimestampFormat),
	}
	if s.AssociateTag != "" {
		all["AssociateTag"] = s.AssociateTag
	}
	for k, v := range params {
		all[k] = v
	}

	query := CanonicalQuery(all)
	sig := s.signature(query)

	scheme := s.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + s.Host + RequestPath + "?" + query + "&Signature=" + escape(sig), nil
}

func (s Signer) signature(query string) string {
	mac := hmac.New(sha256.New, []byte(s.SecretKey))
	mac.Write([]byte("GET\n" + s.Host + "\n" + RequestPath + "\n" + query))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// CanonicalQuery percent-encodes every key and value and joins the sorted
// k=v pairs with '&'. The same string is signed and sent.
func CanonicalQuery(params map[string]string) string {
	pairs := make([]string, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, escape(k)+"="+escape(v))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "&")
}

// escape encodes everything but A-Za-z0-9-_.~, with spaces as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
