// Package testutil provides a configurable mock product advertising endpoint
// for tests.
package testutil

import (
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// MockProductAPI serves canned XML responses keyed by the Operation query
// parameter and records every request it sees.
type MockProductAPI struct {
	server   *httptest.Server
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc

	// Gzip compresses canned responses registered via Respond and marks
	// them with Content-Encoding: gzip.
	Gzip bool

	// Tracking
	RequestCount int
	LastQuery    url.Values
	LastHeader   http.Header
}

// NewMockProductAPI starts a mock endpoint. Callers must Close it.
func NewMockProductAPI() *MockProductAPI {
	mock := &MockProductAPI{
		handlers: make(map[string]http.HandlerFunc),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastQuery = r.URL.Query()
		mock.LastHeader = r.Header.Clone()
		handler := mock.handlers[r.URL.Query().Get("Operation")]
		mock.mu.Unlock()

		if handler != nil {
			handler(w, r)
			return
		}
		mock.defaultHandler(w, r)
	}))

	return mock
}

// Host returns the host:port of the mock endpoint, suitable as a locale host
// override.
func (m *MockProductAPI) Host() string {
	return strings.TrimPrefix(m.server.URL, "http://")
}

// Close shuts down the mock endpoint.
func (m *MockProductAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking state.
func (m *MockProductAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastQuery = nil
	m.LastHeader = nil
}

// Requests returns the number of requests received so far.
func (m *MockProductAPI) Requests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RequestCount
}

// Handle installs a custom handler for one operation.
func (m *MockProductAPI) Handle(operation string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[operation] = handler
}

// Respond installs a canned response for one operation, honoring Gzip.
func (m *MockProductAPI) Respond(operation string, status int, body string) {
	gzipped := false
	m.mu.Lock()
	gzipped = m.Gzip
	m.mu.Unlock()

	m.Handle(operation, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		if gzipped {
			w.Header().Set("Content-Encoding", "gzip")
			w.WriteHeader(status)
			gz := gzip.NewWriter(w)
			gz.Write([]byte(body))
			gz.Close()
			return
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func (m *MockProductAPI) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ItemLookupResponse("B000000000")))
}

// ItemLookupResponse returns a minimal single-item lookup document.
func ItemLookupResponse(asin string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<ItemLookupResponse xmlns="http://webservices.amazon.com/AWSECommerceService/2011-08-01">
  <Items>
    <Request><IsValid>True</IsValid></Request>
    <Item>
      <ASIN>` + asin + `</ASIN>
      <ItemAttributes><Title>Test Item</Title></ItemAttributes>
    </Item>
  </Items>
</ItemLookupResponse>`
}

// ErrorResponse returns a document carrying one service error element.
func ErrorResponse(code, message string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<ItemLookupErrorResponse xmlns="http://ecs.amazonaws.com/doc/2011-08-01/">
  <Error>
    <Code>` + code + `</Code>
    <Message>` + message + `</Message>
  </Error>
  <RequestId>0H1E2D3C4B5A</RequestId>
</ItemLookupErrorResponse>`
}

// SearchResponse returns one page of a search result set.
func SearchResponse(page, totalPages, totalResults int, asins ...string) string {
	var items strings.Builder
	for _, asin := range asins {
		items.WriteString("    <Item><ASIN>" + asin + "</ASIN></Item>\n")
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
<ItemSearchResponse xmlns="http://webservices.amazon.com/AWSECommerceService/2011-08-01">
  <Items>
    <Request>
      <IsValid>True</IsValid>
      <ItemSearchRequest><ItemPage>` + strconv.Itoa(page) + `</ItemPage></ItemSearchRequest>
    </Request>
    <TotalResults>` + strconv.Itoa(totalResults) + `</TotalResults>
    <TotalPages>` + strconv.Itoa(totalPages) + `</TotalPages>
` + items.String() + `  </Items>
</ItemSearchResponse>`
}
