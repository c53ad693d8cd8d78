package client

import (
	"net/url"
	"strings"
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters. Unlike url.Values, encoding
// keeps the order in which the parameters were added.
type Params []Param

// NewParams builds Params from alternating key/value strings. A trailing key
// without a value gets an empty value.
func NewParams(kv ...string) Params {
	params := make(Params, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		p := Param{Key: kv[i]}
		if i+1 < len(kv) {
			p.Value = kv[i+1]
		}

		params = append(params, p)
	}

	return params
}

// Add appends a parameter and returns the extended list.
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// Encode returns the URL-encoded query string ("a=1&b=2") in insertion order.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}

	var b strings.Builder
	for i, param := range p {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(url.QueryEscape(param.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(param.Value))
	}

	return b.String()
}
