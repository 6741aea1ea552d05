package paapi

import (
	"github.com/antchfx/xmlquery"

	"github.com/lgc202/go-paapi/xmlview"
)

// ErrorInfo is a Code/Message pair. The same shape appears in bare error
// envelopes and in a response's Request/Errors list, under different
// namespaces, so the mapping is chosen by the caller.
type ErrorInfo struct{ xmlview.Element }

// NewErrorInfo wraps an Error element using ns for its queries.
func NewErrorInfo(n *xmlquery.Node, ns xmlview.Namespaces) ErrorInfo {
	return ErrorInfo{xmlview.New(n, ns)}
}

func errorInfoIn(ns xmlview.Namespaces) func(*xmlquery.Node) ErrorInfo {
	return func(n *xmlquery.Node) ErrorInfo { return NewErrorInfo(n, ns) }
}

func (e ErrorInfo) Code() string    { return e.Text("./a:Code/text()") }
func (e ErrorInfo) Message() string { return e.Text("./a:Message/text()") }

// Err returns the typed error for this entry.
func (e ErrorInfo) Err() error { return NewError(e.Code(), e.Message()) }

// ErrorResponse reads a document as a bare error envelope, e.g.
//
//	<ItemSearchErrorResponse xmlns="http://ecs.amazonaws.com/doc/2005-10-05/">
//	  <Error><Code>RequestThrottled</Code><Message>...</Message></Error>
//	  <RequestID>...</RequestID>
//	</ItemSearchErrorResponse>
//
// Applied to a regular response it simply finds no error.
type ErrorResponse struct{ xmlview.Element }

func NewErrorResponse(n *xmlquery.Node) ErrorResponse {
	return ErrorResponse{xmlview.New(n, ErrorNamespaces)}
}

func (r ErrorResponse) RequestID() string { return r.Text("./a:RequestID/text()") }

// Info returns the embedded error, absent when the document is not an error envelope.
func (r ErrorResponse) Info() ErrorInfo {
	return xmlview.One(r.Element, "./a:Error", errorInfoIn(r.Namespaces()))
}

// Present reports whether the document carries an error.
func (r ErrorResponse) Present() bool { return r.Info().Present() }

// Err returns the classified service error, or nil when there is none.
func (r ErrorResponse) Err() error {
	info := r.Info()
	if !info.Present() {
		return nil
	}
	return classify(&ServiceError{
		Code:      info.Code(),
		Message:   info.Message(),
		RequestID: r.RequestID(),
	})
}
