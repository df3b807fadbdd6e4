package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// User-Agent sent to job APIs.
const UserAgentBot = "GoVetJobs/1.0"

// HTTPStatusError is returned by FetchBody for non-2xx responses.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// FetchBody performs a single rate-limited GET and returns the (size-limited) body.
// There is no retry: callers treat any error as the upstream being unavailable.
func FetchBody(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	metrics.FetchRequests.Add(1)

	if err := hostLimiter.WaitURL(ctx, rawURL); err != nil {
		metrics.FetchErrors.Add(1)
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		metrics.FetchErrors.Add(1)
		return nil, redactError(redactURL(rawURL), err)
	}
	req.Header.Set("User-Agent", UserAgentBot)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		metrics.FetchErrors.Add(1)
		return nil, redactError(req.URL.Host+req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.FetchErrors.Add(1)
		return nil, &HTTPStatusError{URL: req.URL.Host + req.URL.Path, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxBodyBytes))
	if err != nil {
		metrics.FetchErrors.Add(1)
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// redactError drops the full URL that net/url and net/http attach to their
// errors. Query strings carry API credentials.
func redactError(target string, err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		err = ue.Err
	}
	return fmt.Errorf("GET %s: %w", target, err)
}

func redactURL(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		return raw[:i]
	}
	return raw
}
