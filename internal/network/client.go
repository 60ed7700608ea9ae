package network

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"
)

const DefaultTimeout = 90 * time.Second

type proxyKey struct{}

// NewHTTPClient returns the client handed to the model SDK. With a non-empty
// rotator every request goes out through the next healthy proxy; without one
// requests go direct, honouring the usual HTTPS_PROXY variables.
func NewHTTPClient(rotator *Rotator, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}

	if rotator.Len() == 0 {
		return &http.Client{Transport: base, Timeout: timeout}
	}

	base.Proxy = proxyFromContext
	return &http.Client{
		Transport: &rotatingTransport{base: base, rotator: rotator},
		Timeout:   timeout,
	}
}

type rotatingTransport struct {
	base    http.RoundTripper
	rotator *Rotator
}

func (t *rotatingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	proxy, err := t.rotator.Next()
	if err != nil && !errors.Is(err, ErrNoProxies) {
		return nil, err
	}
	if proxy != nil {
		req = req.WithContext(context.WithValue(req.Context(), proxyKey{}, proxy))
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	t.rotator.Report(proxy, resp.StatusCode)
	return resp, nil
}

func proxyFromContext(req *http.Request) (*url.URL, error) {
	if proxy, ok := req.Context().Value(proxyKey{}).(*url.URL); ok {
		return proxy, nil
	}
	return nil, nil
}
