package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClientNilConfig(t *testing.T) {
	client := New(nil)
	if client == nil {
		t.Fatal("expected client to be created with default config")
	}
	client.Close()
}

func TestClientGetSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("test response"))
	}))
	defer server.Close()

	client := New(DefaultConfig())
	defer client.Close()

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	if string(resp.Body) != "test response" {
		t.Errorf("expected 'test response', got %q", string(resp.Body))
	}
}

func TestClientSetsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.UserAgent = "test-agent/1.0"
	client := New(cfg)
	defer client.Close()

	if _, err := client.Get(context.Background(), server.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != "test-agent/1.0" {
		t.Errorf("expected user agent 'test-agent/1.0', got %q", gotUA)
	}
}

func TestClientCustomHeadersOverrideDefaults(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(DefaultConfig())
	defer client.Close()

	headers := map[string]string{"User-Agent": "override/2.0"}
	if _, err := client.Do(context.Background(), http.MethodGet, server.URL, nil, headers); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != "override/2.0" {
		t.Errorf("expected user agent 'override/2.0', got %q", gotUA)
	}
}

func TestClientRateLimitError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := New(DefaultConfig())
	defer client.Close()

	_, err := client.Get(context.Background(), server.URL)
	var rlErr *RateLimitError
	if !errors.As(err, &rlErr) {
		t.Fatalf("expected *RateLimitError, got %T: %v", err, err)
	}
	if rlErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", rlErr.StatusCode)
	}
	if rlErr.RetryAfter != 7*time.Second {
		t.Errorf("expected RetryAfter 7s, got %v", rlErr.RetryAfter)
	}
}

func TestClientHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := New(DefaultConfig())
	defer client.Close()

	_, err := client.Get(context.Background(), server.URL)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", httpErr.StatusCode)
	}
	if string(httpErr.Body) != "boom" {
		t.Errorf("expected error body 'boom', got %q", string(httpErr.Body))
	}
}

func TestClientContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	client := New(DefaultConfig())
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.Get(ctx, server.URL); err == nil {
		t.Fatal("expected error from canceled context")
	}
}

func TestParseRetryAfterSeconds(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", "30")
	if d := parseRetryAfter(header); d != 30*time.Second {
		t.Errorf("parseRetryAfter() = %v, want 30s", d)
	}
}

func TestParseRetryAfterAbsent(t *testing.T) {
	if d := parseRetryAfter(http.Header{}); d != 0 {
		t.Errorf("parseRetryAfter() = %v, want 0", d)
	}
}
