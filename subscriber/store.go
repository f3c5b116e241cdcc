package subscriber

import "context"

// Store is the persistence interface for subscriber records.
type Store interface {
	// Get returns the record for an identity, or a not-found error when
	// the identity never subscribed.
	Get(ctx context.Context, identity string) (*Record, error)
	// Put creates or overwrites the record for r.Identity.
	Put(ctx context.Context, r *Record) error
	// List returns all records, in no particular order.
	List(ctx context.Context, opts ListOpts) ([]*Record, error)
}

// ListOpts narrows a List call.
type ListOpts struct {
	Limit  int
	Offset int
}
