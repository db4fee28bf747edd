// Package api implements the product advertising API client: canonical
// request signing, per-client rate limiting, gzip-aware transport, pluggable
// response decoding and translation of service error codes into a structured
// error taxonomy.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/redtoad/amazonproduct-go/pkg/processors"
	_ "github.com/redtoad/amazonproduct-go/pkg/processors/etree"
	_ "github.com/redtoad/amazonproduct-go/pkg/processors/minixml"
	"github.com/redtoad/amazonproduct-go/pkg/ratelimit"
	"github.com/redtoad/amazonproduct-go/pkg/signer"
)

// Prometheus metrics for product advertising calls.
var (
	apaRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apa_requests_total",
		Help: "Total product advertising requests by operation and status",
	}, []string{"operation", "status"})

	apaRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "apa_request_duration_seconds",
		Help:    "Product advertising request duration in seconds by operation",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"operation"})

	apaServiceErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apa_service_errors_total",
		Help: "Total service errors by error code",
	}, []string{"code"})
)

// Version of this library, sent in the User-Agent header.
const Version = "0.1.0"

const userAgent = "amazonproduct-go/" + Version +
	" +https://github.com/redtoad/amazonproduct-go"

// Defaults applied by New.
const (
	// DefaultRequestsPerSecond is the rate the service tolerates per
	// account.
	DefaultRequestsPerSecond = 1

	// DefaultTimeout bounds one network call. Exceeding it is a transport
	// failure, not a domain error.
	DefaultTimeout = 5 * time.Second
)

// Params maps request parameter names to values. A nil value means "omit the
// parameter"; non-string scalars are stringified during signing.
type Params map[string]any

// Config holds the client configuration. Credentials are immutable after
// construction and owned exclusively by the client instance.
type Config struct {
	// AWS access key and its secret counterpart.
	AccessKey string
	SecretKey string

	// AssociateTag is sent with every request when set.
	AssociateTag string

	// Locale selects the service host (see Locales).
	Locale string

	// RequestsPerSecond caps the outgoing call rate of this instance.
	RequestsPerSecond float64

	// Timeout bounds a single network call.
	Timeout time.Duration

	// Processor decodes responses. Leave nil to use the first registered
	// implementation.
	Processor processors.Processor
}

// DefaultConfig returns a configuration with the service defaults for the
// given credentials and locale.
func DefaultConfig(accessKey, secretKey, associateTag, locale string) Config {
	return Config{
		AccessKey:         accessKey,
		SecretKey:         secretKey,
		AssociateTag:      associateTag,
		Locale:            locale,
		RequestsPerSecond: DefaultRequestsPerSecond,
		Timeout:           DefaultTimeout,
	}
}

// Client is the product advertising API client. One instance owns its
// throttle state; instances do not share state with each other.
type Client struct {
	httpClient *http.Client
	signer     *signer.Signer
	limiter    *ratelimit.Limiter
	processor  processors.Processor
	creds      signer.Credentials
	host       string
	locale     string
	matcher    MessageMatcher
	logger     zerolog.Logger
}

// New creates a client for the configured locale. An unknown locale is a
// configuration error.
func New(cfg Config) (*Client, error) {
	host, ok := hosts[cfg.Locale]
	if !ok {
		return nil, &UnknownLocaleError{Locale: cfg.Locale}
	}

	logger := log.With().Str("component", "product-api").Str("locale", cfg.Locale).Logger()

	if cfg.SecretKey == "" {
		// Historical behavior: requests are signed with an empty key
		// instead of failing.
		logger.Warn().Msg("No secret key configured; requests will be signed with an empty key")
	}

	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	proc := cfg.Processor
	if proc == nil {
		var err error
		proc, err = processors.Default()
		if err != nil {
			return nil, fmt.Errorf("select response processor: %w", err)
		}
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		signer:  signer.New(),
		limiter: ratelimit.New(cfg.RequestsPerSecond, logger),
		creds: signer.Credentials{
			AccessKey:    cfg.AccessKey,
			SecretKey:    cfg.SecretKey,
			AssociateTag: cfg.AssociateTag,
		},
		processor: proc,
		host:      host,
		locale:    cfg.Locale,
		matcher:   matcherForLocale(cfg.Locale),
		logger:    logger,
	}, nil
}

// Call signs and issues one operation call, blocking on the rate limiter
// first, and decodes the response. Service errors are translated into the
// specific error taxonomy; transport errors are surfaced unchanged. Nothing
// is ever retried.
func (c *Client) Call(ctx context.Context, params Params) (processors.Document, error) {
	if op, ok := params["Operation"].(string); ok && IsDeprecatedOperation(op) {
		return c.deprecated(op)
	}

	signed := c.signer.Sign(c.host, params, c.creds)
	operation := signed.Params["Operation"]

	start := time.Now()
	defer func() {
		apaRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	if err := c.limiter.Throttle(ctx); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("operation", operation).
		Str("host", c.host).
		Msg("Executing product advertising request")

	body, status, err := c.fetch(ctx, signed.URL)
	if err != nil {
		apaRequestsTotal.WithLabelValues(operation, "network_error").Inc()
		c.logger.Error().Err(err).Str("operation", operation).Msg("Request failed")
		return nil, err
	}
	defer body.Close()

	apaRequestsTotal.WithLabelValues(operation, fmt.Sprintf("%d", status)).Inc()

	switch {
	case status >= 200 && status < 300:
		return c.parse(body)

	case status == http.StatusBadRequest,
		status == http.StatusForbidden,
		status == http.StatusGone,
		status == http.StatusServiceUnavailable:
		// These statuses carry a body with an embedded service error that
		// must still be decoded.
		c.logger.Warn().
			Str("operation", operation).
			Int("status", status).
			Msg("Error status with parseable body")
		return c.parse(body)

	case status == http.StatusInternalServerError:
		return nil, ErrInternalError

	default:
		return nil, &HTTPError{StatusCode: status, Status: fmt.Sprintf("%d %s", status, http.StatusText(status))}
	}
}

// parse decodes a response body and translates any embedded service error.
func (c *Client) parse(body io.Reader) (processors.Document, error) {
	doc, err := c.processor.Parse(body)
	if err != nil {
		var svc *processors.ServiceError
		if errors.As(err, &svc) {
			apaServiceErrorsTotal.WithLabelValues(svc.Code).Inc()
			c.logger.Warn().
				Str("code", svc.Code).
				Str("message", svc.Message).
				Msg("Service error in response")
			return nil, translateServiceError(svc, c.matcher)
		}
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return doc, nil
}

// Locale returns the locale this client was built for.
func (c *Client) Locale() string { return c.locale }

// Processor returns the response processor in use.
func (c *Client) Processor() processors.Processor { return c.processor }

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

func cloneParams(params Params) Params {
	copied := make(Params, len(params)+4)
	for key, val := range params {
		copied[key] = val
	}
	return copied
}
