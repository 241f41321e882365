package notification

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/sistemaventa/backend/internal/application/gateway"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// maxTemplateSize caps fetched template bodies
const maxTemplateSize = 1 << 20

// defaultTemplateTimeout bounds a fetch when the caller's context
// carries no deadline of its own
const defaultTemplateTimeout = 10 * time.Second

// Ensure HTTPTemplateFetcher implements the gateway contract
var _ gateway.TemplateFetcher = (*HTTPTemplateFetcher)(nil)

// HTTPTemplateFetcher retrieves email bodies from caller-supplied
// URLs. The response is decoded per its reported character set and
// returned verbatim as the mail body.
type HTTPTemplateFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPTemplateFetcher creates a fetcher with the given per-fetch
// timeout; zero applies the default.
func NewHTTPTemplateFetcher(timeout time.Duration) *HTTPTemplateFetcher {
	if timeout <= 0 {
		timeout = defaultTemplateTimeout
	}
	return &HTTPTemplateFetcher{
		client:  &http.Client{},
		timeout: timeout,
	}
}

// Fetch performs the GET and returns the decoded body
func (f *HTTPTemplateFetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building template request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching template: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching template: unexpected status %d", resp.StatusCode)
	}

	reader, err := decodeCharset(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	body, err := io.ReadAll(io.LimitReader(reader, maxTemplateSize))
	if err != nil {
		return "", fmt.Errorf("reading template body: %w", err)
	}

	return string(body), nil
}

// decodeCharset wraps the body in a decoder for the charset reported
// by the Content-Type header. Absent or unknown charsets fall back to
// reading the bytes as-is.
func decodeCharset(body io.Reader, contentType string) (io.Reader, error) {
	if contentType == "" {
		return body, nil
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body, nil
	}

	name := strings.TrimSpace(params["charset"])
	if name == "" || strings.EqualFold(name, "utf-8") {
		return body, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return body, nil
	}

	return transform.NewReader(body, enc.NewDecoder()), nil
}
