package api

import (
	"regexp"

	"github.com/redtoad/amazonproduct-go/pkg/processors"
)

// MessageMatcher extracts named fields from the human-readable messages
// embedded in service errors. Messages are locale-dependent; each locale
// supplies its own matcher.
type MessageMatcher interface {
	// Match applies the pattern registered under key to message and returns
	// the named captures. The second return value is false when the key is
	// unknown or the message does not match.
	Match(key, message string) (map[string]string, bool)
}

// Matcher keys shared by all locale tables.
const (
	matchInvalidValue                = "invalid-value"
	matchInvalidParameterValue       = "invalid-parameter-value"
	matchInvalidParameterCombination = "invalid-parameter-combination"
	matchMissingParameters           = "missing-parameters"
	matchAlreadyInCart               = "already-in-cart"
	matchNoSimilarities              = "no-similarities"
)

// regexpMatcher implements MessageMatcher with one compiled pattern per key,
// using named capture groups.
type regexpMatcher map[string]*regexp.Regexp

func (m regexpMatcher) Match(key, message string) (map[string]string, bool) {
	re, ok := m[key]
	if !ok {
		return nil, false
	}
	match := re.FindStringSubmatch(message)
	if match == nil {
		return nil, false
	}
	fields := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name != "" && i < len(match) {
			fields[name] = match[i]
		}
	}
	return fields, true
}

// defaultMatcher parses the English messages used by every locale except jp.
var defaultMatcher = regexpMatcher{
	matchInvalidValue: regexp.MustCompile(
		`The value you specified for (?P<parameter>\w+) is invalid`),
	matchInvalidParameterValue: regexp.MustCompile(
		`(?P<value>.+?) is not a valid value for (?P<parameter>\w+)\. Please change this value and retry your request`),
	matchInvalidParameterCombination: regexp.MustCompile(
		`(?P<message>Your request contained a restricted parameter combination.+)`),
	matchMissingParameters: regexp.MustCompile(
		`Your request is missing required parameters\. Required parameters include (?P<parameter>\w+)`),
	matchAlreadyInCart: regexp.MustCompile(
		`The item you specified, (?P<item>.+?), is already in your cart`),
	matchNoSimilarities: regexp.MustCompile(
		`There are no similar items for this ASIN: (?P<asin>\w+)`),
}

// japaneseMatcher parses the differently formatted messages of the jp
// locale.
var japaneseMatcher = regexpMatcher{
	matchInvalidValue: regexp.MustCompile(
		`(?P<parameter>\w+)に指定された値は無効です`),
	matchInvalidParameterValue: regexp.MustCompile(
		`(?P<value>.+?)は、(?P<parameter>\w+)の値として無効です`),
	matchInvalidParameterCombination: regexp.MustCompile(
		`(?P<message>リクエストに制限されたパラメータの組み合わせが含まれています.+)`),
	matchMissingParameters: regexp.MustCompile(
		`リクエストには、必要なパラメータが含まれていません。必要なパラメータには、(?P<parameter>\w+)`),
	matchAlreadyInCart: regexp.MustCompile(
		`指定された商品（(?P<item>.+?)）は、すでにカートに入っています`),
	matchNoSimilarities: regexp.MustCompile(
		`このASINには類似商品がありません：(?P<asin>\w+)`),
}

func matcherForLocale(locale string) MessageMatcher {
	if locale == "jp" {
		return japaneseMatcher
	}
	return defaultMatcher
}

// translateServiceError maps a decoded service error onto the specific error
// taxonomy, using the locale matcher to extract embedded fields. Codes
// outside the table come back unchanged rather than being swallowed.
func translateServiceError(svc *processors.ServiceError, m MessageMatcher) error {
	switch svc.Code {
	case "InternalError":
		return ErrInternalError

	case "InvalidClientTokenId":
		return ErrInvalidClientTokenID

	case "MissingClientTokenId":
		return ErrMissingClientTokenID

	case "AWS.MissingParameters":
		fields, _ := m.Match(matchMissingParameters, svc.Message)
		return &MissingParametersError{Parameter: fields["parameter"]}

	case "RequestThrottled":
		return ErrTooManyRequests

	case "Deprecated":
		return &DeprecatedOperationError{Message: svc.Message}

	case "AWS.ECommerceService.NoExactMatches":
		return ErrNoExactMatches

	case "AWS.InvalidEnumeratedParameter":
		if fields, ok := m.Match(matchInvalidValue, svc.Message); ok {
			switch fields["parameter"] {
			case "ResponseGroup":
				return &InvalidResponseGroupError{}
			case "SearchIndex":
				return &InvalidSearchIndexError{}
			}
		}
		// Some other enumerated parameter; surface the original error so
		// operations can narrow it further.
		return svc

	case "AWS.InvalidParameterValue":
		fields, _ := m.Match(matchInvalidParameterValue, svc.Message)
		return &InvalidParameterValueError{
			Parameter: fields["parameter"],
			Value:     fields["value"],
		}

	case "AWS.RestrictedParameterValueCombination":
		message := svc.Message
		if fields, ok := m.Match(matchInvalidParameterCombination, svc.Message); ok {
			message = fields["message"]
		}
		return &InvalidParameterCombinationError{Message: message}

	case "AccountLimitExceeded":
		return &AccountLimitExceededError{Message: svc.Message}

	case "AWS.ECommerceService.InvalidCartId":
		return ErrInvalidCartID

	case "AWS.ECommerceService.CartInfoMismatch":
		return ErrCartInfoMismatch

	case "AWS.ECommerceService.ItemNotEligibleForCart":
		return &InvalidCartItemError{Message: svc.Message}

	case "AWS.ECommerceService.ItemAlreadyInCart":
		fields, _ := m.Match(matchAlreadyInCart, svc.Message)
		return &ItemAlreadyInCartError{Item: fields["item"]}

	case "AWS.ECommerceService.NoSimilarities":
		fields, _ := m.Match(matchNoSimilarities, svc.Message)
		return &NoSimilarityError{ASIN: fields["asin"]}
	}

	return svc
}
