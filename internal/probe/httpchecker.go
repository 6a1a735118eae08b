package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/multierr"
)

type HTTPChecker struct {
	Client *http.Client
}

// NewHTTPChecker returns a checker whose client never reuses connections:
// every Check dials, handshakes and closes on its own.
func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	dialer := &net.Dialer{Timeout: timeout}
	return &HTTPChecker{
		Client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				DialContext:         dialer.DialContext,
				TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
				TLSHandshakeTimeout: timeout,
				DisableKeepAlives:   true,
				ForceAttemptHTTP2:   true,
			},
			CheckRedirect: keepRedirect,
		},
	}
}

// keepRedirect stops the client at the first response: a 3xx is the
// target's answer, not an instruction to send a second request.
func keepRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// Check issues one HTTPS GET and reads the whole response. Any failure to
// get a complete response is returned as a *TransportError; a response with
// any status code is a successful Outcome.
func (h *HTTPChecker) Check(ctx context.Context, r Request) (Outcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL(), nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("build request for %s: %w", r.URL(), err)
	}
	if r.HasOverride() {
		// req.Host, not req.Header: the transport ignores a "Host" header entry.
		req.Host = r.HostHeaderOverride
	}
	req.Close = true

	client := *h.Client
	client.CheckRedirect = keepRedirect
	resp, err := client.Do(req)
	if err != nil {
		return Outcome{}, newTransportError(r, err)
	}

	body, err := io.ReadAll(resp.Body)
	err = multierr.Append(err, resp.Body.Close())
	if err != nil {
		return Outcome{}, newTransportError(r, fmt.Errorf("read body: %w", err))
	}

	return Outcome{
		TransportSucceeded: true,
		StatusCode:         resp.StatusCode,
		Body:               string(body),
		Headers:            flattenHeaders(resp.Header),
	}, nil
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		if len(vs) == 0 {
			continue
		}
		out[k] = vs[len(vs)-1]
	}
	return out
}
