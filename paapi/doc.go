// Package paapi is a client for the Product Advertising (ECommerce) XML web
// service.
//
// It has three layers:
//   - Signer builds signed GET URLs for an operation and its parameters.
//   - Client fetches documents through httpx, re-signing every attempt so that
//     retries after RequestExpired carry a fresh timestamp.
//   - ParseResponse turns a raw document into a Response view, or into one of
//     the typed service errors (SignatureDoesNotMatchError,
//     RequestThrottledError, RequestExpiredError, or the generic ServiceError).
//
// Response and the views reachable from it (Items, Item, Offer, Price, ImageSet,
// Bin, ...) are thin wrappers over xmlview.Element. Accessors query the
// document on every call and return "" or an absent view when the data is not
// there; they never fail.
package paapi
