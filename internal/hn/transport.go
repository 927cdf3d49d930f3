package hn

import (
	"net"
	"net/http"
	"time"
)

const userAgent = "devnews/0.1 (terminal news reader)"

// SharedTransport is pooled across the API client and the article reader.
// A page reveal opens up to max_concurrent_fetches connections to the same
// host, so the per-host idle pool is sized accordingly.
var SharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   20,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ResponseHeaderTimeout: 15 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ForceAttemptHTTP2:     true,
}

// NewHTTPClient returns a client on SharedTransport with the given timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: SharedTransport,
		Timeout:   timeout,
	}
}
