package catalog

import "context"

// Store is the persistence interface for the catalogue.
// The catalogue only grows: entries are appended, never removed.
type Store interface {
	// Append adds a movie at the end of the catalogue and assigns its
	// position.
	Append(ctx context.Context, m *Movie) error
	// List returns catalogue entries in insertion order.
	List(ctx context.Context, opts ListOpts) ([]*Movie, error)
}

// ListOpts narrows a List call.
type ListOpts struct {
	Limit  int
	Offset int
}
