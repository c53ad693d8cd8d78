package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an [Error]. The set is closed.
type Kind int

const (
	// KindConnection is a transport failure before any response was received.
	KindConnection Kind = iota + 1
	// KindRequest is a generic 4xx client error.
	KindRequest
	// KindResource is a 422 validation failure.
	KindResource
	// KindRateLimit is a 429 response.
	KindRateLimit
	// KindServer is a 5xx response.
	KindServer
	// KindUnknown is a malformed JSON response or a status outside the taxonomy.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection error"
	case KindRequest:
		return "request error"
	case KindResource:
		return "resource error"
	case KindRateLimit:
		return "rate limit error"
	case KindServer:
		return "server error"
	case KindUnknown:
		return "unknown error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrConnection = errors.New("connection error")
	ErrRequest    = errors.New("request error")
	ErrResource   = errors.New("resource error")
	ErrRateLimit  = errors.New("rate limit error")
	ErrServer     = errors.New("server error")
	ErrUnknown    = errors.New("unknown error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindConnection:
		return ErrConnection
	case KindRequest:
		return ErrRequest
	case KindResource:
		return ErrResource
	case KindRateLimit:
		return ErrRateLimit
	case KindServer:
		return ErrServer
	case KindUnknown:
		return ErrUnknown
	default:
		return nil
	}
}

// Error is returned by every [Client] request operation that fails after the
// request was built.
type Error struct {
	Kind   Kind
	Method string
	URL    string

	// StatusCode is the HTTP status code. It is 0 for KindConnection.
	StatusCode int

	// Body is the decoded response body for KindRequest, KindResource and
	// KindServer. It is not unwrapped.
	Body any

	// RawBody is the response text for KindUnknown.
	RawBody string

	// Cause is the transport or JSON decoding error, if any.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	var b strings.Builder
	b.WriteString(e.Kind.String())

	if e.Method != "" || e.URL != "" {
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(e.Method + " " + e.URL))
	}

	if e.StatusCode != 0 {
		b.WriteString(fmt.Sprintf(": http %d", e.StatusCode))
		if t := http.StatusText(e.StatusCode); t != "" {
			b.WriteString(" ")
			b.WriteString(t)
		}
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	if e.Kind == KindUnknown && e.RawBody != "" {
		b.WriteString(": ")
		b.WriteString(e.RawBody)
	}

	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// AsError extracts *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	if e, ok := AsError(err); ok {
		return e.StatusCode
	}

	return 0
}

// classify maps a status code outside [200, 400) to an *Error. First match wins.
func classify(code int, decoded any, raw string) *Error {
	switch {
	case code == http.StatusUnprocessableEntity:
		return &Error{Kind: KindResource, StatusCode: code, Body: decoded}
	case code == http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimit, StatusCode: code}
	case code >= 400 && code < 500:
		return &Error{Kind: KindRequest, StatusCode: code, Body: decoded}
	case code >= 500 && code < 600:
		return &Error{Kind: KindServer, StatusCode: code, Body: decoded}
	default:
		return &Error{Kind: KindUnknown, StatusCode: code, RawBody: raw}
	}
}
