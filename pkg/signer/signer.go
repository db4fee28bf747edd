// Package signer builds canonical, signed request URLs for the product
// advertising service. The signature is HMAC-SHA256 over the request method,
// host, path and the lexicographically sorted query string; identical inputs
// at an identical timestamp always produce an identical signature.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Fixed request shape expected by the service.
const (
	Method = "GET"
	Path   = "/onca/xml"

	// DefaultService identifies the product advertising service.
	DefaultService = "AWSECommerceService"

	// DefaultVersion is the supported API version.
	DefaultVersion = "2011-08-01"

	timestampFormat = "2006-01-02T15:04:05Z"
)

// Credentials hold the signing identity. Immutable after client
// construction.
type Credentials struct {
	AccessKey    string
	SecretKey    string
	AssociateTag string
}

// SignedRequest is the outcome of signing one request. Derived, never
// persisted.
type SignedRequest struct {
	URL       string
	Params    map[string]string
	Signature string
}

// Signer produces signed URLs. The zero value is not usable; call New.
type Signer struct {
	Service string
	Version string

	// Now supplies the request timestamp. Tests substitute a fixed clock;
	// everything else uses wall time.
	Now func() time.Time
}

// New returns a signer for the supported service and version.
func New() *Signer {
	return &Signer{
		Service: DefaultService,
		Version: DefaultVersion,
		Now:     time.Now,
	}
}

// Sign builds a canonical signed URL for one operation call against host.
// Parameters with nil values are omitted; non-string scalars are stringified.
// A missing secret key signs with an empty key (historical behavior of the
// signing scheme).
func (s *Signer) Sign(host string, params map[string]any, creds Credentials) SignedRequest {
	flat := make(map[string]string, len(params)+5)
	for key, val := range params {
		if val == nil {
			continue
		}
		flat[key] = stringify(val)
	}

	if _, ok := flat["AWSAccessKeyId"]; !ok {
		flat["AWSAccessKeyId"] = creds.AccessKey
	}
	if _, ok := flat["Service"]; !ok {
		flat["Service"] = s.Service
	}
	if _, ok := flat["Version"]; !ok {
		flat["Version"] = s.Version
	}
	if _, ok := flat["AssociateTag"]; !ok && creds.AssociateTag != "" {
		flat["AssociateTag"] = creds.AssociateTag
	}
	flat["Timestamp"] = s.Now().UTC().Format(timestampFormat)

	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, key := range keys {
		pairs[i] = key + "=" + Escape(flat[key])
	}
	canonical := strings.Join(pairs, "&")

	toSign := Method + "\n" + host + "\n" + Path + "\n" + canonical
	mac := hmac.New(sha256.New, []byte(creds.SecretKey))
	mac.Write([]byte(toSign))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return SignedRequest{
		URL:       "http://" + host + Path + "?" + canonical + "&Signature=" + Escape(signature),
		Params:    flat,
		Signature: signature,
	}
}

// Escape percent-encodes s per RFC 3986 with UTF-8 byte encoding, leaving
// `~` unescaped. This differs from generic URL encoding, which would escape
// the tilde and encode spaces as `+`.
func Escape(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, b := range []byte(s) {
		if isUnreserved(b) {
			buf.WriteByte(b)
		} else {
			fmt.Fprintf(&buf, "%%%02X", b)
		}
	}
	return buf.String()
}

func isUnreserved(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '.' || b == '~':
		return true
	}
	return false
}

func stringify(val any) string {
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", val)
}
