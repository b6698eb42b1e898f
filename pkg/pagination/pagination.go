// Package pagination decodes the list envelopes the sales backend wraps its
// collection responses in.
package pagination

import "encoding/json"

// Envelope is the DRF-style wrapper: {"count": N, "next": ..., "previous":
// ..., "results": [...]}.
type Envelope[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next,omitempty"`
	Previous *string `json:"previous,omitempty"`
	Results  []T     `json:"results"`
}

// UnwrapList decodes a list response body that may be either a bare JSON
// array or an Envelope. The backend serves both depending on the endpoint,
// so callers must not assume one shape.
func UnwrapList[T any](data []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	var env Envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Results == nil {
		return []T{}, nil
	}
	return env.Results, nil
}
