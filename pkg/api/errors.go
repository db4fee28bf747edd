package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for service error codes that carry no extracted fields.
var (
	// ErrInternalError is returned for service code InternalError and for
	// HTTP 500 responses.
	ErrInternalError = errors.New("the service encountered an internal error")

	// ErrInvalidClientTokenID is returned when the access key is not valid.
	ErrInvalidClientTokenID = errors.New("the AWS access key is not valid")

	// ErrMissingClientTokenID is returned when the request carried no access
	// key.
	ErrMissingClientTokenID = errors.New("the request did not include an AWS access key")

	// ErrTooManyRequests is returned when the service throttles the account.
	// The client never retries; callers decide whether to back off and retry.
	ErrTooManyRequests = errors.New("request throttled by the service")

	// ErrNoExactMatches is returned when a search matched nothing.
	ErrNoExactMatches = errors.New("no exact matches found")

	// ErrInvalidCartID is returned when the cart id does not name a cart.
	ErrInvalidCartID = errors.New("the cart id is not valid")

	// ErrCartInfoMismatch is returned when cart id, HMAC and associate tag
	// do not belong together.
	ErrCartInfoMismatch = errors.New("cart id, HMAC and associate tag do not match")
)

// UnknownLocaleError is raised at client construction when no host mapping
// exists for the locale.
type UnknownLocaleError struct {
	Locale string
}

func (e *UnknownLocaleError) Error() string {
	return fmt.Sprintf("unknown locale %q", e.Locale)
}

// HTTPError is a transport-level failure: a non-2xx status that carries no
// parseable service error body.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %s", e.Status)
}

// MissingParametersError reports a required parameter absent from the
// request.
type MissingParametersError struct {
	Parameter string
}

func (e *MissingParametersError) Error() string {
	return fmt.Sprintf("required parameter %s is missing", e.Parameter)
}

// DeprecatedOperationError reports an operation the service no longer
// supports. When the client recognises the operation itself, no network call
// is made.
type DeprecatedOperationError struct {
	Operation string
	Message   string
}

func (e *DeprecatedOperationError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("operation %s is no longer supported by the service", e.Operation)
	}
	return "operation is no longer supported by the service: " + e.Message
}

// InvalidResponseGroupError reports a response group the operation does not
// accept.
type InvalidResponseGroupError struct {
	Group string
}

func (e *InvalidResponseGroupError) Error() string {
	if e.Group == "" {
		return "the requested response group is not valid"
	}
	return fmt.Sprintf("response group %q is not valid", e.Group)
}

// InvalidSearchIndexError reports a search index the service does not know.
type InvalidSearchIndexError struct {
	Index string
}

func (e *InvalidSearchIndexError) Error() string {
	if e.Index == "" {
		return "the requested search index is not valid"
	}
	return fmt.Sprintf("search index %q is not valid", e.Index)
}

// InvalidParameterValueError reports a rejected parameter value.
type InvalidParameterValueError struct {
	Parameter string
	Value     string
}

func (e *InvalidParameterValueError) Error() string {
	return fmt.Sprintf("%q is not a valid value for %s", e.Value, e.Parameter)
}

// InvalidParameterCombinationError reports a restricted combination of
// parameters.
type InvalidParameterCombinationError struct {
	Message string
}

func (e *InvalidParameterCombinationError) Error() string {
	return "restricted parameter combination: " + e.Message
}

// AccountLimitExceededError reports an exceeded account limit.
type AccountLimitExceededError struct {
	Message string
}

func (e *AccountLimitExceededError) Error() string {
	return "account limit exceeded: " + e.Message
}

// InvalidCartItemError reports an item that cannot be put in a cart.
type InvalidCartItemError struct {
	Message string
}

func (e *InvalidCartItemError) Error() string {
	return "item is not eligible for the cart: " + e.Message
}

// ItemAlreadyInCartError reports an item that is already in the cart.
// Quantities of existing items change through CartModify, not CartAdd.
type ItemAlreadyInCartError struct {
	Item string
}

func (e *ItemAlreadyInCartError) Error() string {
	return fmt.Sprintf("item %q is already in the cart", e.Item)
}

// NoSimilarityError reports an ASIN without similar items.
type NoSimilarityError struct {
	ASIN string
}

func (e *NoSimilarityError) Error() string {
	return fmt.Sprintf("no similar items for ASIN %s", e.ASIN)
}
