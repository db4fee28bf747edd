// Package pagination drives repeated catalog calls with an incrementing page
// cursor until the result set is exhausted or a page cap is reached. Pages
// are fetched sequentially and lazily: each document is yielded to the
// caller before the next page is requested.
package pagination

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/redtoad/amazonproduct-go/pkg/processors"
)

// DefaultPageLimit caps a session when the caller supplies no limit.
const DefaultPageLimit = 10

// CallFunc issues one operation call with the given parameters.
type CallFunc func(ctx context.Context, params map[string]any) (processors.Document, error)

type sessionState int

const (
	stateInit sessionState = iota
	stateHasMore
	stateDone
	stateFailed
)

// Session is a lazy, finite, non-restartable sequence of result pages.
// It is created per pagination run, mutated only by Next, and not safe for
// concurrent use.
type Session struct {
	call   CallFunc
	desc   processors.PageDescriptor
	params map[string]any
	limit  int

	state        sessionState
	doc          processors.Document
	currentPage  int
	totalPages   int
	totalResults int
	err          error
}

// New creates a pagination session. A nil descriptor degrades the session to
// a single non-paginated call. Limits below 1 fall back to DefaultPageLimit.
func New(call CallFunc, desc processors.PageDescriptor, params map[string]any, limit int) *Session {
	if limit < 1 {
		limit = DefaultPageLimit
	}
	copied := make(map[string]any, len(params)+1)
	for key, val := range params {
		copied[key] = val
	}
	return &Session{
		call:   call,
		desc:   desc,
		params: copied,
		limit:  limit,
	}
}

// Next fetches the next page. It returns true when a page is available via
// Document, and false once the session is exhausted, capped or failed. After
// a failure Err returns the error; pages already yielded remain valid.
func (s *Session) Next(ctx context.Context) bool {
	switch s.state {
	case stateDone, stateFailed:
		return false
	}

	page := s.currentPage + 1
	if s.desc != nil {
		s.params[s.desc.CounterParam()] = page
	}

	doc, err := s.call(ctx, s.params)
	if err != nil {
		s.err = err
		s.state = stateFailed
		return false
	}
	s.doc = doc

	if s.desc == nil {
		// Single non-paginated call.
		s.currentPage = page
		s.totalPages = page
		s.state = stateDone
		return true
	}

	st := s.desc.ReadState(doc)
	s.currentPage = st.CurrentPage
	if s.currentPage < page {
		s.currentPage = page
	}
	s.totalPages = st.TotalPages
	s.totalResults = st.TotalResults

	if s.currentPage < s.totalPages && s.currentPage < s.limit {
		s.state = stateHasMore
	} else {
		s.state = stateDone
		log.Debug().
			Int("pages", s.currentPage).
			Int("total_pages", s.totalPages).
			Msg("Pagination session exhausted")
	}
	return true
}

// Document returns the most recently fetched page.
func (s *Session) Document() processors.Document { return s.doc }

// Err returns the error that terminated the session, if any.
func (s *Session) Err() error { return s.err }

// CurrentPage returns the page number of the most recent fetch.
func (s *Session) CurrentPage() int { return s.currentPage }

// TotalPages returns the page count reported by the service, once a page has
// been fetched.
func (s *Session) TotalPages() int { return s.totalPages }

// TotalResults returns the result count reported by the service, once a page
// has been fetched.
func (s *Session) TotalResults() int { return s.totalResults }

// PageLimit returns the cap applied to this session.
func (s *Session) PageLimit() int { return s.limit }
