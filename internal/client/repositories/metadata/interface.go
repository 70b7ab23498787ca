// Package metadata stores small named string values in the client's local
// database.
package metadata

import (
	"context"
)

// Repository is a string key/value table. Get reports a missing key with
// ok == false rather than an error.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
