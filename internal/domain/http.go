package domain

import (
	"context"
	"net/http"
)

// HTTPRequest is a fully resolved outgoing request.
type HTTPRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte // nil means no payload
}

// HTTPAdapter issues HTTP requests and returns the raw, unparsed response.
type HTTPAdapter interface {
	Do(ctx context.Context, req HTTPRequest) (*http.Response, error)
}

// Param is a single query parameter. Value is rendered to its string form.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered set of query parameters; order is preserved on the wire.
type Params []Param
