package paapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/lgc202/go-paapi/xmlview"
)

// ErrUnexpectedDocument is returned for well-formed XML that is neither a
// response envelope nor an error envelope.
var ErrUnexpectedDocument = errors.New("paapi: unexpected document")

// Response is a response envelope such as ItemSearchResponse or ItemLookupResponse.
type Response struct{ xmlview.Element }

func NewResponse(n *xmlquery.Node) Response { return Response{xmlview.New(n, Namespaces)} }

func (r Response) OperationRequest() OperationRequest {
	return xmlview.One(r.Element, "./a:OperationRequest", NewOperationRequest)
}

func (r Response) Items() Items { return xmlview.One(r.Element, "./a:Items", NewItems) }

// SearchBins returns the bins of every search bin set, or only those of the
// set named narrowBy (see the SearchBin constants) when it is not empty.
func (r Response) SearchBins(narrowBy string) []Bin {
	expr := "./a:Items/a:SearchBinSets/a:SearchBinSet//a:Bin"
	if narrowBy != "" {
		expr = fmt.Sprintf("./a:Items/a:SearchBinSets/a:SearchBinSet[@NarrowBy=%s]//a:Bin", xmlview.Literal(narrowBy))
	}
	return xmlview.All(r.Element, expr, NewBin)
}

// ParseResponse parses a raw document.
//
// Malformed XML yields an error wrapping xmlview.ErrParse. An error envelope
// yields its classified service error. A document of any other shape yields
// ErrUnexpectedDocument. A response whose Items/Request is flagged invalid
// yields that request's error.
func ParseResponse(raw []byte) (*Response, error) {
	root, err := xmlview.ParseNode(string(raw))
	if err != nil {
		return nil, err
	}
	if err := NewErrorResponse(root).Err(); err != nil {
		return nil, err
	}
	if root.NamespaceURI != ServiceNamespace || !strings.HasSuffix(root.Data, "Response") {
		return nil, fmt.Errorf("%w: <%s> in namespace %q", ErrUnexpectedDocument, root.Data, root.NamespaceURI)
	}
	resp := NewResponse(root)
	if req := resp.Items().Request(); req.Present() {
		if err := req.Err(); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

// CheckContent reports the service error carried by raw, if raw is an error
// envelope. It does not otherwise validate the document.
func CheckContent(raw []byte) error {
	root, err := xmlview.ParseNode(string(raw))
	if err != nil {
		return err
	}
	return NewErrorResponse(root).Err()
}
