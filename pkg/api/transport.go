package api

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// fetch performs the HTTP GET and returns the response body with gzip
// transparently decoded. Gzip is negotiated explicitly via Accept-Encoding
// and detected via Content-Encoding on the response. The caller closes the
// returned body.
func (c *Client) fetch(ctx context.Context, url string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}

	body := resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, 0, fmt.Errorf("decode gzip body: %w", err)
		}
		body = &gzipBody{gz: gz, raw: resp.Body}
	}
	return body, resp.StatusCode, nil
}

// gzipBody closes both the gzip stream and the underlying connection body.
type gzipBody struct {
	gz  *gzip.Reader
	raw io.Closer
}

func (b *gzipBody) Read(p []byte) (int, error) { return b.gz.Read(p) }

func (b *gzipBody) Close() error {
	if err := b.gz.Close(); err != nil {
		b.raw.Close()
		return err
	}
	return b.raw.Close()
}
