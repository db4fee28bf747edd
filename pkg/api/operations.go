package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redtoad/amazonproduct-go/pkg/pagination"
	"github.com/redtoad/amazonproduct-go/pkg/processors"
)

// Pagination caps imposed by the service, regardless of the limit a caller
// requests.
const (
	// MaxResultPages caps paginated operations.
	MaxResultPages = 10

	// MaxAllIndexPages caps searches against the catalog-wide "All" index.
	MaxAllIndexPages = 5
)

// ItemLookup returns the attributes of one or more items, identified by
// ASIN (or another id type selected via the IdType parameter).
func (c *Client) ItemLookup(ctx context.Context, params Params, itemIDs ...string) (processors.Document, error) {
	p := cloneParams(params)
	p["Operation"] = "ItemLookup"
	p["ItemId"] = strings.Join(itemIDs, ",")

	doc, err := c.Call(ctx, p)
	if err != nil {
		return nil, c.narrowEnumeratedError(err, params)
	}
	return doc, nil
}

// ItemLookupPages pages through the related items of a lookup (RelatedItems
// response group). The session is capped at MaxResultPages regardless of
// limit.
func (c *Client) ItemLookupPages(params Params, limit int, itemIDs ...string) *pagination.Session {
	p := cloneParams(params)
	p["Operation"] = "ItemLookup"
	p["ItemId"] = strings.Join(itemIDs, ",")

	desc, ok := c.processor.LoadPaginator(processors.KindRelatedItems)
	if !ok {
		desc = nil
	}
	call := func(ctx context.Context, pp map[string]any) (processors.Document, error) {
		doc, err := c.Call(ctx, pp)
		if err != nil {
			return nil, c.narrowEnumeratedError(err, params)
		}
		return doc, nil
	}
	return pagination.New(call, desc, p, clampPageLimit(limit, MaxResultPages))
}

// ItemSearch returns a pagination session over the items matching the search
// criteria in the given search index. Pages are fetched lazily as the caller
// iterates; when the processor has no paginator for search results the
// session degrades to a single call. The session is capped at MaxResultPages
// (MaxAllIndexPages for the "All" index) regardless of limit.
func (c *Client) ItemSearch(searchIndex string, params Params, limit int) *pagination.Session {
	p := cloneParams(params)
	p["Operation"] = "ItemSearch"
	p["SearchIndex"] = searchIndex

	pageCap := MaxResultPages
	if searchIndex == "All" {
		pageCap = MaxAllIndexPages
	}

	desc, ok := c.processor.LoadPaginator(processors.KindItems)
	if !ok {
		desc = nil
	}
	call := func(ctx context.Context, pp map[string]any) (processors.Document, error) {
		doc, err := c.Call(ctx, pp)
		if err != nil {
			return nil, c.narrowSearchError(err, searchIndex, params)
		}
		return doc, nil
	}
	return pagination.New(call, desc, p, clampPageLimit(limit, pageCap))
}

// SimilarityLookup returns up to ten items similar to the given ones. With
// more than one id the intersection of each item's similarities is returned.
func (c *Client) SimilarityLookup(ctx context.Context, params Params, itemIDs ...string) (processors.Document, error) {
	p := cloneParams(params)
	p["Operation"] = "SimilarityLookup"
	p["ItemId"] = strings.Join(itemIDs, ",")
	return c.Call(ctx, p)
}

// BrowseNodeLookup returns a browse node's name, children and ancestors.
// An empty responseGroup leaves the service default (BrowseNodeInfo).
func (c *Client) BrowseNodeLookup(ctx context.Context, browseNodeID string, responseGroup string, params Params) (processors.Document, error) {
	p := cloneParams(params)
	p["Operation"] = "BrowseNodeLookup"
	p["BrowseNodeId"] = browseNodeID
	if responseGroup != "" {
		p["ResponseGroup"] = responseGroup
	}

	doc, err := c.Call(ctx, p)
	if err != nil {
		return nil, c.narrowResponseGroupError(err, responseGroup)
	}
	return doc, nil
}

// narrowSearchError sharpens the ambiguous enumerated-parameter error on
// search operations to the search index actually requested.
func (c *Client) narrowSearchError(err error, searchIndex string, params Params) error {
	var svc *processors.ServiceError
	if errors.As(err, &svc) {
		switch svc.Code {
		case "AWS.InvalidEnumeratedParameter":
			if _, ok := c.matcher.Match(matchInvalidValue, svc.Message); ok {
				return &InvalidSearchIndexError{Index: searchIndex}
			}
		case "AWS.InvalidResponseGroup":
			return &InvalidResponseGroupError{Group: paramString(params, "ResponseGroup")}
		}
	}

	var searchErr *InvalidSearchIndexError
	if errors.As(err, &searchErr) && searchErr.Index == "" {
		return &InvalidSearchIndexError{Index: searchIndex}
	}
	return c.narrowResponseGroupError(err, paramString(params, "ResponseGroup"))
}

// narrowEnumeratedError sharpens the enumerated-parameter error on lookup
// operations, but only when the offending parameter is the search index.
func (c *Client) narrowEnumeratedError(err error, params Params) error {
	var svc *processors.ServiceError
	if errors.As(err, &svc) {
		switch svc.Code {
		case "AWS.InvalidEnumeratedParameter":
			if fields, ok := c.matcher.Match(matchInvalidValue, svc.Message); ok && fields["parameter"] == "SearchIndex" {
				return &InvalidSearchIndexError{Index: paramString(params, "SearchIndex")}
			}
		case "AWS.InvalidResponseGroup":
			return &InvalidResponseGroupError{Group: paramString(params, "ResponseGroup")}
		}
	}

	var searchErr *InvalidSearchIndexError
	if errors.As(err, &searchErr) && searchErr.Index == "" {
		return &InvalidSearchIndexError{Index: paramString(params, "SearchIndex")}
	}
	return c.narrowResponseGroupError(err, paramString(params, "ResponseGroup"))
}

func (c *Client) narrowResponseGroupError(err error, responseGroup string) error {
	var svc *processors.ServiceError
	if errors.As(err, &svc) && svc.Code == "AWS.InvalidResponseGroup" {
		return &InvalidResponseGroupError{Group: responseGroup}
	}
	var groupErr *InvalidResponseGroupError
	if errors.As(err, &groupErr) && groupErr.Group == "" {
		return &InvalidResponseGroupError{Group: responseGroup}
	}
	return err
}

func clampPageLimit(limit, pageCap int) int {
	if limit < 1 || limit > pageCap {
		return pageCap
	}
	return limit
}

func paramString(params Params, key string) string {
	val, ok := params[key]
	if !ok || val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", val)
}
