package network

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestNewHTTPClientDirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	client := NewHTTPClient(nil, time.Second)
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Fatalf("body = %q", body)
	}
}

func TestRotatingTransportUsesProxyAndReports(t *testing.T) {
	var hits int
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		// Plain-HTTP proxying sends the absolute target URL.
		if r.URL.Host != "upstream.invalid" {
			t.Errorf("proxied host = %q", r.URL.Host)
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer proxy.Close()

	rotator, err := NewRotator([]string{proxy.URL}, time.Hour)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}

	client := NewHTTPClient(rotator, time.Second)
	resp, err := client.Get("http://upstream.invalid/v1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	resp.Body.Close()

	if hits != 1 {
		t.Fatalf("proxy hits = %d, want 1", hits)
	}
	if _, err := rotator.Next(); err == nil {
		t.Fatalf("Next() error = nil, want proxy banned after 429")
	}
}

func TestProxyFromContextWithoutValue(t *testing.T) {
	req := &http.Request{URL: &url.URL{Scheme: "https", Host: "example.com"}}
	req = req.WithContext(t.Context())
	proxy, err := proxyFromContext(req)
	if err != nil || proxy != nil {
		t.Fatalf("proxyFromContext() = %v, %v", proxy, err)
	}
}
