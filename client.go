package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-resty/resty/v2"
)

// APIVersionPrefix is prepended to every request path.
const APIVersionPrefix = "/v2"

// Client issues requests against the API. It holds no mutable state after
// construction and is safe for concurrent use.
type Client struct {
	config  Config
	baseURL string
	options *Options
	http    *resty.Client
}

// New returns a Client for cfg. The configuration and options are validated
// here; a returned Client is ready to use.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := newClientOptions()
	for _, o := range opts {
		o(options)
	}

	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	httpClient := resty.New().
		SetTimeout(options.timeout).
		SetLogger(options.requestLogger).
		SetDebug(cfg.Verbose).
		SetHeader("User-Agent", cfg.userAgent()).
		SetHeader("Accept", "application/json").
		SetAuthScheme("Bearer").
		SetAuthToken(cfg.AccessToken)

	if options.transport != nil {
		httpClient.SetTransport(options.transport)
	}

	for header, value := range options.requestHeaders {
		httpClient.SetHeader(header, value)
	}

	return &Client{
		config:  cfg,
		baseURL: strings.TrimRight(cfg.BaseURL, "/") + APIVersionPrefix,
		options: options,
		http:    httpClient,
	}, nil
}

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() {
	if c == nil || c.http == nil {
		return
	}

	c.http.GetClient().CloseIdleConnections()
}

// Get sends a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, params Params) (int, any, error) {
	return c.Request(ctx, http.MethodGet, path, params, nil)
}

// Post sends body wrapped in the data envelope.
func (c *Client) Post(ctx context.Context, path string, body any) (int, any, error) {
	return c.Request(ctx, http.MethodPost, path, nil, body)
}

// Put sends body wrapped in the data envelope.
func (c *Client) Put(ctx context.Context, path string, body any) (int, any, error) {
	return c.Request(ctx, http.MethodPut, path, nil, body)
}

// Patch sends body wrapped in the data envelope.
func (c *Client) Patch(ctx context.Context, path string, body any) (int, any, error) {
	return c.Request(ctx, http.MethodPatch, path, nil, body)
}

// Delete sends a DELETE request with optional query parameters.
func (c *Client) Delete(ctx context.Context, path string, params Params) (int, any, error) {
	return c.Request(ctx, http.MethodDelete, path, params, nil)
}

// Request performs a single call and returns the status code and the
// unwrapped resource. Failures after the request is built are returned as
// *Error; the resource is nil whenever err is non-nil.
//
// body is only sent for POST, PUT and PATCH. A nil body, including a nil map
// or slice, sends no payload and no Content-Type.
func (c *Client) Request(ctx context.Context, method, path string, params Params, body any) (int, any, error) {
	if c == nil || c.http == nil {
		return 0, nil, errors.New("api client is nil")
	}

	verb := strings.ToUpper(strings.TrimSpace(method))

	var sendsBody bool
	switch strings.ToLower(verb) {
	case "get", "delete":
	case "post", "put", "patch":
		sendsBody = !isNilBody(body)
	default:
		return 0, nil, fmt.Errorf("unsupported method %q", method)
	}

	url := c.url(path, params)

	req := c.http.R().SetContext(ctx)

	if sendsBody {
		payload, err := wrapBody(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}

		req.SetHeader("Content-Type", "application/json").SetBody(payload)
	}

	// resty reads and closes the response body before returning.
	resp, err := req.Execute(verb, url)
	if err != nil {
		c.options.requestLogger.Errorf("%s %s failed: %v", verb, url, err)
		return 0, nil, &Error{Kind: KindConnection, Method: verb, URL: url, Cause: err}
	}

	code := resp.StatusCode()
	raw := resp.Body()

	decoded, err := decodeBody(raw)
	if err != nil {
		c.options.requestLogger.Warnf("%s %s returned undecodable body (http %d)", verb, url, code)
		return code, nil, &Error{Kind: KindUnknown, Method: verb, URL: url, StatusCode: code, RawBody: string(raw), Cause: err}
	}

	if code < 200 || code >= 400 {
		apiErr := classify(code, decoded, string(raw))
		apiErr.Method = verb
		apiErr.URL = url
		c.options.requestLogger.Warnf("%s %s: %s (http %d)", verb, url, apiErr.Kind, code)

		return code, nil, apiErr
	}

	return code, Unwrap(decoded), nil
}

// isNilBody reports whether body is nil, including typed nils such as a nil
// map, slice or pointer.
func isNilBody(body any) bool {
	if body == nil {
		return true
	}

	v := reflect.ValueOf(body)
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// url joins the base URL, version prefix, path and encoded query.
func (c *Client) url(path string, params Params) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u := c.baseURL + path
	if q := params.Encode(); q != "" {
		u += "?" + q
	}

	return u
}
