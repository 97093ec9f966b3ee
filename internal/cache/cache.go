package cache

import (
	"context"
	"net/http"
)

// Response is a stored snapshot of an HTTP response. Entries are idempotent
// snapshots of the same URL, so concurrent writers may race freely; last
// write wins.
type Response struct {
	StatusCode int         `json:"status_code"`
	Header     http.Header `json:"header"`
	Body       []byte      `json:"body"`
}

func (r *Response) Clone() *Response {
	clone := &Response{
		StatusCode: r.StatusCode,
		Header:     make(http.Header, len(r.Header)),
		Body:       append([]byte(nil), r.Body...),
	}
	for k, v := range r.Header {
		clone.Header[k] = append([]string(nil), v...)
	}
	return clone
}

// Namespace is one named, versioned partition of request->response entries.
type Namespace interface {
	// Match returns the entry stored for key, or found=false on a miss.
	Match(ctx context.Context, key string) (resp *Response, found bool, err error)
	// Put stores or overwrites the entry for key.
	Put(ctx context.Context, key string, resp *Response) error
}

// Store manages the set of namespaces. Opening a namespace that does not
// exist creates it.
type Store interface {
	Open(ctx context.Context, name string) (Namespace, error)
	// Names lists every namespace currently present in storage, including
	// stale ones left behind by earlier versions.
	Names(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}
