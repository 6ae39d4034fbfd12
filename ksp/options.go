package ksp

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL    string
	timeout    time.Duration
	verifyTLS  bool
	httpClient *http.Client
}

// WithBaseURL overrides the production API URL, e.g. to point at a
// staging environment. A trailing slash is stripped.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithTimeout sets the default request timeout. The authentication probe
// keeps its own shorter timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithoutTLSVerify disables TLS certificate verification. Only intended
// for self-hosted instances with self-signed certificates.
func WithoutTLSVerify() Option {
	return func(o *clientOptions) {
		o.verifyTLS = false
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely. Timeout
// and TLS options are ignored when this is set.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}
