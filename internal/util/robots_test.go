package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newRobotsServer(t *testing.T, body string, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			w.WriteHeader(http.StatusOK)
			return
		}
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestRobotsChecker_CanFetch(t *testing.T) {
	server, hits := newRobotsServer(t, "User-agent: Lexis\nDisallow: /private\nCrawl-delay: 2\n\nUser-agent: *\nDisallow: /\n", http.StatusOK)
	checker := NewRobotsChecker("Lexis/0.1 (+https://example.com)", nil)
	ctx := context.Background()

	allowed, delay, err := checker.CanFetch(ctx, server.URL+"/contracts/lease.html")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("expected public path to be allowed for Lexis")
	}
	if delay != 2*time.Second {
		t.Errorf("expected crawl delay 2s, got %v", delay)
	}

	if checker.IsAllowed(ctx, server.URL+"/private/nda.pdf") {
		t.Error("expected /private to be disallowed")
	}
	if hits.Load() != 1 {
		t.Errorf("expected robots.txt fetched once, got %d", hits.Load())
	}

	checker.Clear()
	_ = checker.IsAllowed(ctx, server.URL+"/")
	if hits.Load() != 2 {
		t.Errorf("expected refetch after Clear, got %d", hits.Load())
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server, _ := newRobotsServer(t, "", http.StatusNotFound)
	checker := NewRobotsChecker("Lexis/0.1", nil)

	if !checker.IsAllowed(context.Background(), server.URL+"/anything") {
		t.Error("expected missing robots.txt to allow everything")
	}
}

func TestRobotsChecker_UnreachableAllows(t *testing.T) {
	checker := NewRobotsChecker("Lexis/0.1", &http.Client{Timeout: 100 * time.Millisecond})

	allowed, _, err := checker.CanFetch(context.Background(), "http://127.0.0.1:1/doc")
	if err != nil || !allowed {
		t.Errorf("expected unreachable host to allow, got %v (%v)", allowed, err)
	}
}

func TestRobotsChecker_InvalidURL(t *testing.T) {
	checker := NewRobotsChecker("Lexis/0.1", nil)
	if _, _, err := checker.CanFetch(context.Background(), "not a url"); err == nil {
		t.Error("expected error for URL without host")
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	tests := map[string]string{
		"Lexis/0.1 (+https://github.com/ppiankov/lexis)": "Lexis",
		"curl/8.0": "curl",
		"Bot":      "Bot",
		"":         "",
	}
	for in, want := range tests {
		if got := NormalizeUserAgent(in); got != want {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewProxyFunc(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:3128", "http://secure-proxy:3129", "internal.example.com")

	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com/v1", nil)
	u, err := proxy(req)
	if err != nil || u == nil || u.Host != "secure-proxy:3129" {
		t.Errorf("expected https proxy, got %v (%v)", u, err)
	}

	req, _ = http.NewRequest(http.MethodGet, "http://other.example.com/", nil)
	if u, _ := proxy(req); u == nil || u.Host != "proxy:3128" {
		t.Errorf("expected http proxy, got %v", u)
	}

	req, _ = http.NewRequest(http.MethodGet, "http://internal.example.com/", nil)
	if u, _ := proxy(req); u != nil {
		t.Errorf("expected no proxy for excluded host, got %v", u)
	}
}
