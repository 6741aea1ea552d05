package paapi

import (
	"github.com/antchfx/xmlquery"

	"github.com/lgc202/go-paapi/xmlview"
)

// OperationRequest is the diagnostic echo of the call: headers, arguments,
// request id and processing time.
type OperationRequest struct{ xmlview.Element }

func NewOperationRequest(n *xmlquery.Node) OperationRequest {
	return OperationRequest{xmlview.New(n, Namespaces)}
}

func (r OperationRequest) HTTPHeaders() []KeyValue {
	return pairs(xmlview.All(r.Element, "./a:HTTPHeaders//a:Header", NewKeyValuePair))
}

func (r OperationRequest) RequestID() string { return r.Text("./a:RequestId/text()") }

func (r OperationRequest) Arguments() []KeyValue {
	return pairs(xmlview.All(r.Element, "./a:Arguments//a:Argument", NewKeyValuePair))
}

func (r OperationRequest) RequestProcessingTime() string {
	return r.Text("./a:RequestProcessingTime/text()")
}

// ItemSearchRequest is the echo of the search parameters the service used.
type ItemSearchRequest struct{ xmlview.Element }

func NewItemSearchRequest(n *xmlquery.Node) ItemSearchRequest {
	return ItemSearchRequest{xmlview.New(n, Namespaces)}
}

func (r ItemSearchRequest) Brand() string       { return r.Text("./a:Brand/text()") }
func (r ItemSearchRequest) ItemPage() string    { return r.Text("./a:ItemPage/text()") }
func (r ItemSearchRequest) SearchIndex() string { return r.Text("./a:SearchIndex/text()") }

func (r ItemSearchRequest) ResponseGroups() []string {
	return r.Texts(".//a:ResponseGroup/text()")
}

// Request reports whether the service accepted the logical request. An
// invalid request still arrives as a well-formed response.
type Request struct{ xmlview.Element }

func NewRequest(n *xmlquery.Node) Request { return Request{xmlview.New(n, Namespaces)} }

func (r Request) IsValid() bool { return r.Bool("./a:IsValid/text()") }

func (r Request) ItemSearchRequest() ItemSearchRequest {
	return xmlview.One(r.Element, "./a:ItemSearchRequest", NewItemSearchRequest)
}

func (r Request) Errors() []ErrorInfo {
	return xmlview.All(r.Element, "./a:Errors//a:Error", errorInfoIn(Namespaces))
}

// Err returns nil for a valid request. For an invalid one it returns the
// first listed error, or an UNKNOWN_ERROR when the service gave no reason.
func (r Request) Err() error {
	if r.IsValid() {
		return nil
	}
	if info, ok := xmlview.First(r.Errors()); ok {
		return info.Err()
	}
	return NewError(CodeUnknownError, "Request failed but no error was found")
}
