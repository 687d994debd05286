// internal/storage/store.go
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for unknown document ids.
var ErrNotFound = errors.New("document not found")

// DocumentStore is the persistence contract consumed by the pipeline.
// Create is an atomic single-document write: the store assigns the id and
// the created/updated timestamps. The pipeline exercises no update or
// delete path.
type DocumentStore interface {
	Create(ctx context.Context, collection string, doc interface{}) (string, error)
	Get(ctx context.Context, collection, id string, v interface{}) error
	List(ctx context.Context, collection string) ([]string, error)
}
