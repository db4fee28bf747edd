package api

import (
	"errors"
	"testing"

	"github.com/redtoad/amazonproduct-go/pkg/processors"
)

func translate(code, message string) error {
	return translateServiceError(
		&processors.ServiceError{Code: code, Message: message},
		defaultMatcher,
	)
}

func TestTranslateServiceError_Sentinels(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{code: "InternalError", want: ErrInternalError},
		{code: "InvalidClientTokenId", want: ErrInvalidClientTokenID},
		{code: "MissingClientTokenId", want: ErrMissingClientTokenID},
		{code: "RequestThrottled", want: ErrTooManyRequests},
		{code: "AWS.ECommerceService.NoExactMatches", want: ErrNoExactMatches},
		{code: "AWS.ECommerceService.InvalidCartId", want: ErrInvalidCartID},
		{code: "AWS.ECommerceService.CartInfoMismatch", want: ErrCartInfoMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := translate(tt.code, "irrelevant")
			if !errors.Is(got, tt.want) {
				t.Errorf("translate(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestTranslateServiceError_MissingParameters(t *testing.T) {
	got := translate("AWS.MissingParameters",
		"Your request is missing required parameters. Required parameters include ItemId.")

	var missing *MissingParametersError
	if !errors.As(got, &missing) {
		t.Fatalf("got %T, want *MissingParametersError", got)
	}
	if missing.Parameter != "ItemId" {
		t.Errorf("Parameter = %q, want %q", missing.Parameter, "ItemId")
	}
}

func TestTranslateServiceError_Deprecated(t *testing.T) {
	got := translate("Deprecated", "This operation is no longer available.")

	var dep *DeprecatedOperationError
	if !errors.As(got, &dep) {
		t.Fatalf("got %T, want *DeprecatedOperationError", got)
	}
	if dep.Message == "" {
		t.Errorf("Message empty, want the original service message")
	}
}

func TestTranslateServiceError_InvalidEnumeratedParameter(t *testing.T) {
	tests := []struct {
		name    string
		message string
		check   func(t *testing.T, got error)
	}{
		{
			name:    "response group",
			message: "The value you specified for ResponseGroup is invalid.",
			check: func(t *testing.T, got error) {
				var e *InvalidResponseGroupError
				if !errors.As(got, &e) {
					t.Errorf("got %T, want *InvalidResponseGroupError", got)
				}
			},
		},
		{
			name:    "search index",
			message: "The value you specified for SearchIndex is invalid.",
			check: func(t *testing.T, got error) {
				var e *InvalidSearchIndexError
				if !errors.As(got, &e) {
					t.Errorf("got %T, want *InvalidSearchIndexError", got)
				}
			},
		},
		{
			name:    "other enumerated parameter stays raw",
			message: "The value you specified for Condition is invalid.",
			check: func(t *testing.T, got error) {
				var svc *processors.ServiceError
				if !errors.As(got, &svc) {
					t.Fatalf("got %T, want *processors.ServiceError", got)
				}
				if svc.Code != "AWS.InvalidEnumeratedParameter" {
					t.Errorf("Code = %q", svc.Code)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, translate("AWS.InvalidEnumeratedParameter", tt.message))
		})
	}
}

func TestTranslateServiceError_InvalidParameterValue(t *testing.T) {
	got := translate("AWS.InvalidParameterValue",
		"XXX is not a valid value for ItemId. Please change this value and retry your request.")

	var e *InvalidParameterValueError
	if !errors.As(got, &e) {
		t.Fatalf("got %T, want *InvalidParameterValueError", got)
	}
	if e.Parameter != "ItemId" || e.Value != "XXX" {
		t.Errorf("got parameter=%q value=%q", e.Parameter, e.Value)
	}
}

func TestTranslateServiceError_RestrictedParameterCombination(t *testing.T) {
	got := translate("AWS.RestrictedParameterValueCombination",
		"Your request contained a restricted parameter combination of ItemPage and SearchIndex.")

	var e *InvalidParameterCombinationError
	if !errors.As(got, &e) {
		t.Fatalf("got %T, want *InvalidParameterCombinationError", got)
	}
	if e.Message == "" {
		t.Errorf("Message empty")
	}
}

func TestTranslateServiceError_AccountLimitExceeded(t *testing.T) {
	got := translate("AccountLimitExceeded", "Account limit of 2000 requests per hour exceeded.")

	var e *AccountLimitExceededError
	if !errors.As(got, &e) {
		t.Fatalf("got %T, want *AccountLimitExceededError", got)
	}
}

func TestTranslateServiceError_CartItems(t *testing.T) {
	got := translate("AWS.ECommerceService.ItemNotEligibleForCart",
		"The item you specified cannot be added to the cart.")
	var invalid *InvalidCartItemError
	if !errors.As(got, &invalid) {
		t.Fatalf("got %T, want *InvalidCartItemError", got)
	}

	got = translate("AWS.ECommerceService.ItemAlreadyInCart",
		"The item you specified, B0000002, is already in your cart.")
	var already *ItemAlreadyInCartError
	if !errors.As(got, &already) {
		t.Fatalf("got %T, want *ItemAlreadyInCartError", got)
	}
	if already.Item != "B0000002" {
		t.Errorf("Item = %q, want %q", already.Item, "B0000002")
	}
}

func TestTranslateServiceError_NoSimilarities(t *testing.T) {
	got := translate("AWS.ECommerceService.NoSimilarities",
		"There are no similar items for this ASIN: 0451462009.")

	var e *NoSimilarityError
	if !errors.As(got, &e) {
		t.Fatalf("got %T, want *NoSimilarityError", got)
	}
	if e.ASIN != "0451462009" {
		t.Errorf("ASIN = %q, want %q", e.ASIN, "0451462009")
	}
}

func TestTranslateServiceError_UnknownCodePassedThrough(t *testing.T) {
	svc := &processors.ServiceError{Code: "AWS.SomeFutureCode", Message: "something new"}
	got := translateServiceError(svc, defaultMatcher)
	if got != error(svc) {
		t.Errorf("unknown code translated to %T, want the original service error", got)
	}
}

func TestTranslateServiceError_JapaneseMessages(t *testing.T) {
	m := matcherForLocale("jp")

	got := translateServiceError(&processors.ServiceError{
		Code:    "AWS.ECommerceService.NoSimilarities",
		Message: "このASINには類似商品がありません：0451462009",
	}, m)

	var e *NoSimilarityError
	if !errors.As(got, &e) {
		t.Fatalf("got %T, want *NoSimilarityError", got)
	}
	if e.ASIN != "0451462009" {
		t.Errorf("ASIN = %q, want %q", e.ASIN, "0451462009")
	}
}

func TestMatcherForLocale(t *testing.T) {
	if _, ok := matcherForLocale("jp").(regexpMatcher); !ok {
		t.Fatalf("jp matcher has unexpected type")
	}
	if _, ok := matcherForLocale("de").Match(matchNoSimilarities,
		"There are no similar items for this ASIN: B000000."); !ok {
		t.Errorf("default matcher did not match an English message")
	}
}

func TestRegexpMatcher_Misses(t *testing.T) {
	if _, ok := defaultMatcher.Match("no-such-key", "anything"); ok {
		t.Errorf("unknown key matched")
	}
	if _, ok := defaultMatcher.Match(matchMissingParameters, "unrelated message"); ok {
		t.Errorf("non-matching message matched")
	}
}
