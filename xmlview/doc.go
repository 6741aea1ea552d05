// Package xmlview provides read-only, lazily evaluated views over XML elements.
//
// An Element wraps one parsed node together with the namespace prefixes its
// queries use. Every accessor re-runs its XPath query against the node; nothing
// is cached and the tree is never modified.
//
// A view over a nil node is the "absent" view: Present reports false and every
// query yields no result without evaluating anything. Typed views built on top
// of Element rely on this so that optional substructure can be chained freely:
//
//	price := item.Offer().Price().Amount() // "" when any step is missing
//
// The combinators in this package (First, ParseBool, WrapOne, WrapAll, One, All)
// are the building blocks typed views use to turn query results into scalars,
// booleans and nested views.
package xmlview
