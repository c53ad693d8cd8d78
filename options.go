package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const maxTimeout = 10 * time.Minute

type Option func(*Options)

type Options struct {
	timeout        time.Duration
	transport      http.RoundTripper
	requestLogger  RequestLogger
	requestHeaders map[string]string
}

// Headers owned by the client. Callers cannot replace them with WithRequestHeader.
var protectedHeaders = []string{"Content-Type", "Accept", "Authorization", "User-Agent"}

func newClientOptions() *Options {
	return &Options{
		timeout:        30 * time.Second,
		requestLogger:  &NoopLogger{},
		requestHeaders: map[string]string{},
	}
}

// WithTimeout sets the overall timeout of a single request, including reading
// the response body. Zero disables the timeout. Values outside [0, 10m] are
// ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout >= 0 && timeout <= maxTimeout {
			o.timeout = timeout
		}
	}
}

// WithTransport replaces the underlying http.RoundTripper.
func WithTransport(transport http.RoundTripper) Option {
	return func(o *Options) {
		if transport != nil {
			o.transport = transport
		}
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" || isProtectedHeader(header) {
			return
		}

		o.requestHeaders[header] = value
	}
}

// Validate checks option values that cannot be rejected by the individual
// Option functions.
func (o *Options) Validate() error {
	if o.timeout < 0 {
		return errors.New("timeout must be non-negative")
	}

	if o.timeout > maxTimeout {
		return fmt.Errorf("timeout must not exceed %v", maxTimeout)
	}

	if o.requestLogger == nil {
		return errors.New("requestLogger must not be nil")
	}

	for header := range o.requestHeaders {
		if isProtectedHeader(header) {
			return fmt.Errorf("header %s cannot be overridden", header)
		}
	}

	return nil
}

func isProtectedHeader(header string) bool {
	for _, h := range protectedHeaders {
		if strings.EqualFold(header, h) {
			return true
		}
	}

	return false
}
