package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// Collection names. Each schema type maps to the lowercase collection
// of the same name, mirroring the frontend contract.
const (
	CollectionHomestay = "homestay"
	CollectionBooking  = "booking"
)

var ErrUnavailable = errors.New("store not available")

// Store is the document store boundary. Implementations own connection
// pooling and are safe for concurrent use.
type Store interface {
	// Insert persists a document and returns its store-assigned id as a string.
	Insert(ctx context.Context, collection string, doc any) (string, error)
	// Find returns up to limit documents matching the filter, in insertion order.
	Find(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error)
	// Available reports whether a live connection exists. Handlers must
	// check this before querying.
	Available() bool
	// Name returns the backing database name, or "" when unavailable.
	Name() string
	// Collections lists collection names, for diagnostics.
	Collections(ctx context.Context) ([]string, error)
}
