package linkverify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single remote probe.
const DefaultTimeout = 5 * time.Second

const userAgent = "refcheck/1.0"

// Prober checks whether a remote resource exists and returns the HTTP status it answered with.
type Prober interface {
	Probe(ctx context.Context, target string) (int, error)
}

// HTTPProber issues HEAD requests. Redirects are not followed and certificates are not verified:
// the question is whether the server answers, not whether it is trusted.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates a prober whose requests time out after timeout (DefaultTimeout when zero).
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	// Clone keeps HTTP_PROXY, HTTPS_PROXY and NO_PROXY handling.
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // availability check only

	return &HTTPProber{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Probe sends a HEAD request to target.
func (p *HTTPProber) Probe(ctx context.Context, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode, nil
}

// statusOK reports whether status counts as reachable: anything in [100, 400), redirects included.
func statusOK(status int) bool {
	return status >= 100 && status < 400
}
