package api

import "github.com/redtoad/amazonproduct-go/pkg/processors"

// Operations the service answers with HTTP 410. Calls fail immediately
// through one shared handler so no network call is wasted.
var deprecatedOperations = map[string]struct{}{
	"CustomerContentLookup": {},
	"CustomerContentSearch": {},
	"Help":                  {},
	"ListLookup":            {},
	"ListSearch":            {},
	"TagLookup":             {},
	"TransactionLookup":     {},
	"VehiclePartLookup":     {},
	"VehiclePartSearch":     {},
	"VehicleSearch":         {},

	// Deprecated since API version 2011-08-01.
	"SellerLookup":        {},
	"SellerListingLookup": {},
	"SellerListingSearch": {},
}

// IsDeprecatedOperation reports whether the named operation is in the
// deprecated set.
func IsDeprecatedOperation(operation string) bool {
	_, ok := deprecatedOperations[operation]
	return ok
}

// deprecated is the shared fail-immediately handler for retired operations.
func (c *Client) deprecated(operation string) (processors.Document, error) {
	c.logger.Debug().Str("operation", operation).Msg("Deprecated operation rejected without network call")
	return nil, &DeprecatedOperationError{Operation: operation}
}

// CustomerContentLookup is no longer supported by the service.
func (c *Client) CustomerContentLookup() (processors.Document, error) {
	return c.deprecated("CustomerContentLookup")
}

// CustomerContentSearch is no longer supported by the service.
func (c *Client) CustomerContentSearch() (processors.Document, error) {
	return c.deprecated("CustomerContentSearch")
}

// Help is no longer supported by the service.
func (c *Client) Help() (processors.Document, error) {
	return c.deprecated("Help")
}

// ListLookup is no longer supported by the service.
func (c *Client) ListLookup() (processors.Document, error) {
	return c.deprecated("ListLookup")
}

// ListSearch is no longer supported by the service.
func (c *Client) ListSearch() (processors.Document, error) {
	return c.deprecated("ListSearch")
}

// TagLookup is no longer supported by the service.
func (c *Client) TagLookup() (processors.Document, error) {
	return c.deprecated("TagLookup")
}

// TransactionLookup is no longer supported by the service.
func (c *Client) TransactionLookup() (processors.Document, error) {
	return c.deprecated("TransactionLookup")
}

// VehiclePartLookup is no longer supported by the service.
func (c *Client) VehiclePartLookup() (processors.Document, error) {
	return c.deprecated("VehiclePartLookup")
}

// VehiclePartSearch is no longer supported by the service.
func (c *Client) VehiclePartSearch() (processors.Document, error) {
	return c.deprecated("VehiclePartSearch")
}

// VehicleSearch is no longer supported by the service.
func (c *Client) VehicleSearch() (processors.Document, error) {
	return c.deprecated("VehicleSearch")
}

// SellerLookup is no longer supported by the service.
func (c *Client) SellerLookup() (processors.Document, error) {
	return c.deprecated("SellerLookup")
}

// SellerListingLookup is no longer supported by the service.
func (c *Client) SellerListingLookup() (processors.Document, error) {
	return c.deprecated("SellerListingLookup")
}

// SellerListingSearch is no longer supported by the service.
func (c *Client) SellerListingSearch() (processors.Document, error) {
	return c.deprecated("SellerListingSearch")
}
