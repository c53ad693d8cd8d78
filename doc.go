// Package client provides an HTTP client for a versioned REST API that wraps
// payloads in a data envelope.
//
// The client wraps [github.com/go-resty/resty/v2]. Every call is a single
// synchronous request: there are no retries and no batching.
//
// # Basic Usage
//
//	c, err := client.New(client.Config{
//	    BaseURL:     "https://api.example.com",
//	    AccessToken: "my-token",
//	    UserAgent:   "my-app/1.0",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	code, account, err := c.Get(ctx, "/account", nil)
//
// # Envelope
//
// Request bodies for POST, PUT and PATCH are sent as {"data": body}.
// Responses are unwrapped: the value of "data" is returned when present,
// otherwise the elements of "items", otherwise the decoded body as is.
// Paths are relative to the /v2 prefix. JSON numbers in responses decode
// to json.Number, so large integer IDs are returned exactly.
//
// # Errors
//
// Failed calls return an [*Error] whose [Kind] is one of connection,
// request (4xx), resource (422), rate limit (429), server (5xx) or unknown
// (undecodable body or unexpected status). Use [AsError], [IsKind] or
// errors.Is with the Err* sentinels to inspect them.
//
// # Configuration
//
// [Config] carries the base URL, access token, user agent and verbose flag.
// [LoadConfig] reads it from API_* environment variables, and
// [LoadConfigWithOverrides] lets a caller such as a CLI supply values on top.
// Transport details are supplied as [Option] functions passed to [New];
// invalid option values are silently ignored and the default is retained.
//
// # Logging
//
// Implement [RequestLogger] and supply it via [WithRequestLogger] to
// integrate with your logging library, or use [NewZerologLogger]. The
// default [NoopLogger] discards all log output. With [Config.Verbose] set,
// resty's request and response dumps are written to the logger at debug
// level; they include the Authorization header.
package client
