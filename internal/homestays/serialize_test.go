package homestays_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/toshihome/homestay-bookings/internal/homestays"
)

func TestSerializeDoc_RenamesNativeID(t *testing.T) {
	oid := primitive.NewObjectID()
	out := homestays.SerializeDoc(bson.M{"_id": oid, "title": "Cabin"})

	assert.NotContains(t, out, "_id")
	assert.Equal(t, oid.Hex(), out["id"])
	assert.Equal(t, "Cabin", out["title"])
}

func TestSerializeDoc_RendersTemporalsAsISO(t *testing.T) {
	created := time.Date(2026, 8, 29, 12, 30, 0, 0, time.UTC)
	out := homestays.SerializeDoc(bson.M{
		"created_at": created,
		"indexed_at": primitive.NewDateTimeFromTime(created),
	})

	assert.Equal(t, "2026-08-29T12:30:00Z", out["created_at"])
	assert.Equal(t, "2026-08-29T12:30:00Z", out["indexed_at"])
}

func TestSerializeDoc_PassesThroughUnknownFields(t *testing.T) {
	doc := bson.M{
		"_id":       "abc123",
		"rating":    4.5,
		"amenities": []string{"wifi", "onsen"},
		"host":      bson.M{"name": "Toshi"},
		"archived":  nil,
	}
	out := homestays.SerializeDoc(doc)

	assert.Equal(t, "abc123", out["id"])
	assert.Equal(t, 4.5, out["rating"])
	assert.Equal(t, []string{"wifi", "onsen"}, out["amenities"])
	assert.Equal(t, bson.M{"name": "Toshi"}, out["host"])
	assert.Contains(t, out, "archived")
}

func TestSerializeDoc_Idempotent(t *testing.T) {
	oid := primitive.NewObjectID()
	first := homestays.SerializeDoc(bson.M{
		"_id":        oid,
		"created_at": time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		"title":      "Cabin",
	})

	second := homestays.SerializeDoc(bson.M(first))
	assert.Equal(t, first, second)
}

func TestSerializeDocs_EmptyIsNotNil(t *testing.T) {
	out := homestays.SerializeDocs(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)
}
