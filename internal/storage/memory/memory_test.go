package memory_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/toshihome/homestay-bookings/internal/homestays"
	"github.com/toshihome/homestay-bookings/internal/storage"
	"github.com/toshihome/homestay-bookings/internal/storage/memory"
)

func seed(t *testing.T, store *memory.Store, docs ...bson.M) []string {
	t.Helper()
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		id, err := store.Insert(context.Background(), storage.CollectionHomestay, doc)
		require.NoError(t, err)
		require.NotEmpty(t, id)
		ids = append(ids, id)
	}
	return ids
}

func query(t *testing.T, rawQuery string) bson.M {
	t.Helper()
	values, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	filter, fields := homestays.ParseSearchFilter(values)
	require.Nil(t, fields)
	return filter.BuildQuery()
}

func find(t *testing.T, store *memory.Store, filter bson.M) []bson.M {
	t.Helper()
	docs, err := store.Find(context.Background(), storage.CollectionHomestay, filter, 24)
	require.NoError(t, err)
	return docs
}

func TestInsertAssignsUniqueIDs(t *testing.T) {
	store := memory.New()
	ids := seed(t, store,
		bson.M{"title": "A"},
		bson.M{"title": "B"},
	)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestFindPreservesInsertionOrder(t *testing.T) {
	store := memory.New()
	seed(t, store,
		bson.M{"title": "first"},
		bson.M{"title": "second"},
		bson.M{"title": "third"},
	)

	docs := find(t, store, bson.M{})
	require.Len(t, docs, 3)
	assert.Equal(t, "first", docs[0]["title"])
	assert.Equal(t, "third", docs[2]["title"])
}

func TestFindHonorsLimit(t *testing.T) {
	store := memory.New()
	seed(t, store, bson.M{"n": 1}, bson.M{"n": 2}, bson.M{"n": 3})

	docs, err := store.Find(context.Background(), storage.CollectionHomestay, bson.M{}, 2)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestFreeTextMatchesSubstringCaseInsensitive(t *testing.T) {
	store := memory.New()
	seed(t, store,
		bson.M{"title": "Mountain hut", "description": "Lakeside retreat with a view", "location": "Hakone", "country": "Japan"},
		bson.M{"title": "City loft", "description": "Downtown apartment", "location": "Osaka", "country": "Japan"},
	)

	docs := find(t, store, query(t, "q=lake"))
	require.Len(t, docs, 1)
	assert.Equal(t, "Mountain hut", docs[0]["title"])
}

func TestCountryMatchIsExactNotSubstring(t *testing.T) {
	store := memory.New()
	seed(t, store,
		bson.M{"title": "Ryokan", "country": "japan"},
		bson.M{"title": "Chalet", "country": "Japanese Alps"},
	)

	docs := find(t, store, query(t, "country=Japan"))
	require.Len(t, docs, 1)
	assert.Equal(t, "Ryokan", docs[0]["title"])
}

func TestPriceRangeBoundsAreInclusive(t *testing.T) {
	store := memory.New()
	seed(t, store,
		bson.M{"title": "cheap", "price_per_night": 40.0},
		bson.M{"title": "mid", "price_per_night": 75.0},
		bson.M{"title": "edge", "price_per_night": 100.0},
		bson.M{"title": "expensive", "price_per_night": 150.0},
	)

	docs := find(t, store, query(t, "minPrice=50&maxPrice=100"))
	require.Len(t, docs, 2)
	assert.Equal(t, "mid", docs[0]["title"])
	assert.Equal(t, "edge", docs[1]["title"])
}

func TestGuestCapacityFilter(t *testing.T) {
	store := memory.New()
	seed(t, store,
		bson.M{"title": "solo", "max_guests": 1},
		bson.M{"title": "family", "max_guests": 6},
	)

	docs := find(t, store, query(t, "guests=4"))
	require.Len(t, docs, 1)
	assert.Equal(t, "family", docs[0]["title"])
}

func TestEmptyFilterMatchesAll(t *testing.T) {
	store := memory.New()
	seed(t, store, bson.M{"title": "A"}, bson.M{"title": "B"})

	docs := find(t, store, query(t, ""))
	assert.Len(t, docs, 2)
}

func TestStructInsertHonorsBSONTags(t *testing.T) {
	store := memory.New()

	type record struct {
		Title string  `bson:"title"`
		Price float64 `bson:"price_per_night"`
	}
	_, err := store.Insert(context.Background(), storage.CollectionHomestay, &record{Title: "Cabin", Price: 80})
	require.NoError(t, err)

	docs := find(t, store, bson.M{"title": "Cabin"})
	require.Len(t, docs, 1)
	assert.Equal(t, 80.0, docs[0]["price_per_night"])
}
