package port

import (
	"context"
)

// Storage is a durable string key-value store. A missing key is reported
// with found == false and a nil error.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
