// Package httpclient provides a shared HTTP client factory for all
// upstream calls (CMS, Google Indexing, LinkedIn).
package httpclient

import (
	"net/http"
	"time"
)

const (
	// DefaultTimeout is the default timeout for upstream requests. There
	// is no per-call timeout policy beyond this client-level limit.
	DefaultTimeout = 30 * time.Second

	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second
	defaultTLSHandshakeTimeout = 10 * time.Second
)

// New creates an HTTP client with the standard transport configuration.
// A zero timeout selects DefaultTimeout.
func New(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        defaultMaxIdleConns,
			MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
			IdleConnTimeout:     defaultIdleConnTimeout,
			TLSHandshakeTimeout: defaultTLSHandshakeTimeout,
		},
	}
}
