// Package processors defines the response processor capability: decoding a
// raw product advertising response into a document, surfacing service-level
// errors embedded in it, and describing how pagination metadata is read out
// of a decoded page.
package processors

import (
	"fmt"
	"io"
	"strconv"
)

// Kind names an abstract pagination style supported by an operation.
type Kind string

const (
	// KindItems paginates search results (ItemSearch).
	KindItems Kind = "items"

	// KindRelatedItems paginates the related items of a lookup (ItemLookup
	// with the RelatedItems response group).
	KindRelatedItems Kind = "related-items"
)

// Document is an opaque handle to one decoded response. Its internal shape is
// owned by the processor that produced it; callers navigate it through path
// queries using local element names (for example "//Items/Item/ASIN").
type Document interface {
	// FindText returns the text of the first element matched by path.
	FindText(path string) (string, bool)

	// FindTexts returns the text of every element matched by path, in
	// document order.
	FindTexts(path string) []string
}

// Processor decodes raw responses into documents.
//
// Parse must return a *ServiceError when the decoded payload contains one or
// more service-level error elements; only the first error element is
// surfaced. Error elements are located with or without a default XML
// namespace on the document.
type Processor interface {
	Parse(r io.Reader) (Document, error)

	// LoadPaginator maps a pagination kind to the descriptor used to read
	// pagination metadata out of documents produced by this processor.
	// The second return value is false when the kind is unsupported.
	LoadPaginator(kind Kind) (PageDescriptor, bool)
}

// ServiceError is a structured error returned inside an otherwise well-formed
// response document, as opposed to a transport-level failure.
type ServiceError struct {
	Code     string
	Message  string
	Document Document
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error %s: %s", e.Code, e.Message)
}

// PageState is the pagination metadata read from one decoded page.
type PageState struct {
	CurrentPage  int
	TotalPages   int
	TotalResults int
}

// PageDescriptor describes how a paginated operation reads its page cursor
// and pagination metadata.
type PageDescriptor interface {
	// CounterParam is the request parameter carrying the page number.
	CounterParam() string

	// ReadState extracts pagination metadata from a decoded page.
	ReadState(doc Document) PageState
}

// PathDescriptor reads pagination state through document path queries. Both
// bundled processors use it; custom processors may implement PageDescriptor
// directly.
type PathDescriptor struct {
	Counter      string
	CurrentPage  string
	TotalPages   string
	TotalResults string

	// Items locates the per-page result elements, for callers iterating
	// individual results rather than whole pages.
	Items string
}

// CounterParam implements PageDescriptor.
func (d PathDescriptor) CounterParam() string { return d.Counter }

// ReadState implements PageDescriptor. A missing current page reads as 1,
// missing totals as 0.
func (d PathDescriptor) ReadState(doc Document) PageState {
	return PageState{
		CurrentPage:  intAt(doc, d.CurrentPage, 1),
		TotalPages:   intAt(doc, d.TotalPages, 0),
		TotalResults: intAt(doc, d.TotalResults, 0),
	}
}

func intAt(doc Document, path string, fallback int) int {
	text, ok := doc.FindText(path)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return fallback
	}
	return n
}
