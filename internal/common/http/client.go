// internal/common/http/client.go
package http

import (
	"net"
	"net/http"
	"time"
)

const (
	DefaultTimeout      = 10 * time.Second
	maxIdleConnsPerHost = 16
)

// NewClient returns an *http.Client for outbound service calls. A
// non-positive timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.MaxIdleConnsPerHost = maxIdleConnsPerHost
	transport.IdleConnTimeout = 90 * time.Second
	transport.ResponseHeaderTimeout = timeout

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
