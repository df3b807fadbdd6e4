package engine

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func withFastLimiter(t *testing.T) {
	t.Helper()
	old := hostLimiter
	hostLimiter = NewHostLimiter(1000, 1000)
	t.Cleanup(func() { hostLimiter = old })
}

func TestFetchBody(t *testing.T) {
	withFastLimiter(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != UserAgentBot {
			t.Errorf("User-Agent = %q", ua)
		}
		if got := r.Header.Get("X-Test"); got != "1" {
			t.Errorf("X-Test = %q", got)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	before := GetMetrics()["fetch_requests"]
	body, err := FetchBody(context.Background(), srv.URL, map[string]string{"X-Test": "1"})
	if err != nil {
		t.Fatalf("FetchBody: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body = %q", body)
	}
	if after := GetMetrics()["fetch_requests"]; after != before+1 {
		t.Errorf("fetch_requests = %d, want %d", after, before+1)
	}
}

func TestFetchBody_StatusError(t *testing.T) {
	withFastLimiter(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := FetchBody(context.Background(), srv.URL+"/search?app_key=secret", nil)
	var se *HTTPStatusError
	if !errors.As(err, &se) {
		t.Fatalf("want HTTPStatusError, got %v", err)
	}
	if se.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", se.StatusCode)
	}
	if strings.Contains(err.Error(), "secret") {
		t.Errorf("query string leaked into error: %v", err)
	}
}

func TestFetchBody_LimitsBody(t *testing.T) {
	withFastLimiter(t)
	old := cfg.MaxBodyBytes
	cfg.MaxBodyBytes = 8
	defer func() { cfg.MaxBodyBytes = old }()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer srv.Close()

	body, err := FetchBody(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(body) != 8 {
		t.Errorf("len(body) = %d, want 8", len(body))
	}
}

func TestFetchBody_ContextCanceled(t *testing.T) {
	hostLimiter = NewHostLimiter(0.001, 1)
	defer func() { hostLimiter = NewHostLimiter(cfg.HostRateLimit, cfg.HostRateBurst) }()

	// First call consumes the burst; the second must wait and hits the deadline.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	if _, err := FetchBody(context.Background(), srv.URL, nil); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := FetchBody(ctx, srv.URL, nil); err == nil {
		t.Error("expected rate limit wait to fail")
	}
}

func TestFetchBody_TransportErrorHidesQuery(t *testing.T) {
	withFastLimiter(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := FetchBody(context.Background(), addr+"/v1/jobs?app_id=id1&app_key=secret", nil)
	if err == nil {
		t.Fatal("expected connection error")
	}
	if strings.Contains(err.Error(), "secret") || strings.Contains(err.Error(), "app_key") {
		t.Errorf("error leaks query: %v", err)
	}
	if !strings.Contains(err.Error(), "/v1/jobs") {
		t.Errorf("error lacks target path: %v", err)
	}
}

func TestFetchBody_CanceledRequestHidesQuery(t *testing.T) {
	withFastLimiter(t)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := FetchBody(ctx, srv.URL+"/search?app_key=secret", nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if strings.Contains(err.Error(), "secret") {
		t.Errorf("error leaks query: %v", err)
	}
}
