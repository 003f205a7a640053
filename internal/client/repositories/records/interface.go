// Package records is the key/value repository behind the studio's local
// record store. Values are opaque strings; the typed stores above it own the
// encoding.
package records

import "context"

// UpdateFunc receives the current value (found is false when the key is
// absent) and returns the value to write back.
type UpdateFunc func(current string, found bool) (string, error)

type Repository interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	// List returns every record whose key starts with prefix.
	List(ctx context.Context, prefix string) (map[string]string, error)
	// Update reads and rewrites one key inside a single transaction.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
