package crawl

import (
	"context"
	"maps"
	"strconv"

	"github.com/lgc202/go-paapi/paapi"
)

// MaxItemPage is the last page the service serves for a search.
const MaxItemPage = 10

// Pages returns a Handler that passes every response to fn and then queues
// the next ItemPage of the same search, until the result's TotalPages,
// maxPages or MaxItemPage is reached.
func Pages(maxPages int, fn func(req *Request, resp *paapi.Response) error) Handler {
	if maxPages <= 0 || maxPages > MaxItemPage {
		maxPages = MaxItemPage
	}
	return func(ctx context.Context, req *Request, resp *paapi.Response) ([]*Request, error) {
		if fn != nil {
			if err := fn(req, resp); err != nil {
				return nil, err
			}
		}
		page, err := strconv.Atoi(req.Params["ItemPage"])
		if err != nil || page < 1 {
			page = 1
		}
		total, err := strconv.Atoi(resp.Items().TotalPages())
		if err != nil {
			return nil, nil
		}
		if page >= total || page >= maxPages {
			return nil, nil
		}
		next := NewRequest(req.Operation, req.Params)
		next.Params["ItemPage"] = strconv.Itoa(page + 1)
		next.Priority = req.Priority
		next.Meta = maps.Clone(req.Meta)
		return []*Request{next}, nil
	}
}
