package storage

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ToDocument converts a schema struct (or bson.M) into the generic
// document shape the store persists, honoring bson tags the same way
// the driver would. Maps are copied so callers can add store-side
// fields without mutating their input.
func ToDocument(record any) (bson.M, error) {
	if m, ok := record.(bson.M); ok {
		copied := make(bson.M, len(m))
		for k, v := range m {
			copied[k] = v
		}
		return copied, nil
	}

	raw, err := bson.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return m, nil
}
