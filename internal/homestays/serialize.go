package homestays

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SerializeDoc converts a stored document into its JSON contract: the
// native "_id" becomes a string "id", temporal values become ISO-8601
// strings, everything else passes through untouched. Applying it to an
// already-serialized document is a no-op.
func SerializeDoc(doc bson.M) map[string]any {
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		out[key] = serializeValue(value)
	}
	if id, ok := out["_id"]; ok {
		delete(out, "_id")
		out["id"] = idString(id)
	}
	return out
}

// SerializeDocs serializes a result sequence. The result is never nil
// so an empty match renders as [] rather than null.
func SerializeDocs(docs []bson.M) []map[string]any {
	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, SerializeDoc(doc))
	}
	return out
}

func serializeValue(value any) any {
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case primitive.DateTime:
		return v.Time().UTC().Format(time.RFC3339)
	default:
		return value
	}
}

func idString(id any) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
