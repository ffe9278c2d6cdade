package weather

import (
	"context"
	"io"
)

// Fetcher abstracts the feed transport. Fetch performs one request and passes the
// response body to handle; the body must be released on every return path.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, handle func(body io.Reader) error) error
}

// Store is the contract the in-memory record owner must satisfy.
type Store interface {
	// Snapshot returns a private copy of the held records, committed or not.
	Snapshot() Snapshot
	SaveSnapshot(snapshot Snapshot)
	GetLatest() (Snapshot, error)
	Reset()
}
