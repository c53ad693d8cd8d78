package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

const (
	envelopeDataKey  = "data"
	envelopeItemsKey = "items"
)

type envelope struct {
	Data any `json:"data"`
}

// wrapBody encodes body as {"data": body}.
func wrapBody(body any) ([]byte, error) {
	return json.Marshal(envelope{Data: body})
}

// decodeBody decodes a response body. An empty body decodes to nil. Numbers
// decode to json.Number so integer IDs keep every digit.
func decodeBody(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, err
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value in response body")
	}

	return decoded, nil
}

// Unwrap extracts the resource from a decoded response: the value under
// "data" if present, otherwise the elements under "items", otherwise the
// decoded value itself.
func Unwrap(decoded any) any {
	obj, ok := decoded.(map[string]any)
	if !ok {
		return decoded
	}

	if data, ok := obj[envelopeDataKey]; ok {
		return data
	}

	if items, ok := obj[envelopeItemsKey]; ok {
		return items
	}

	return decoded
}
