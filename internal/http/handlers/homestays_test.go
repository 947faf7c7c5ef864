package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toshihome/homestay-bookings/internal/cache"
	"github.com/toshihome/homestay-bookings/internal/http/handlers"
	"github.com/toshihome/homestay-bookings/internal/http/response"
	"github.com/toshihome/homestay-bookings/internal/storage"
	"github.com/toshihome/homestay-bookings/internal/storage/memory"
	"github.com/toshihome/homestay-bookings/pkg/events"
)

func newHomestaysRouter(store storage.Store) chi.Router {
	featured, _ := cache.NewFeatured("", 0)
	h := handlers.NewHomestaysHandler(store, featured, events.NoopBus{})

	r := chi.NewRouter()
	r.Mount("/api/homestays", h.Routes())
	return r
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func homestayPayload() map[string]any {
	return map[string]any{
		"title":           "Lakeside Cabin",
		"description":     "A quiet cabin by the water",
		"location":        "Hakone",
		"country":         "Japan",
		"price_per_night": 120.0,
		"max_guests":      4,
		"amenities":       []string{"wifi", "onsen"},
	}
}

func TestCreateHomestay_ReturnsID(t *testing.T) {
	router := newHomestaysRouter(memory.New())

	rec := doJSON(t, router, http.MethodPost, "/api/homestays", homestayPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	assert.NotEmpty(t, body["id"])
}

func TestCreateHomestay_ValidationFailureNamesField(t *testing.T) {
	router := newHomestaysRouter(memory.New())

	payload := homestayPayload()
	payload["price_per_night"] = -1.0

	rec := doJSON(t, router, http.MethodPost, "/api/homestays", payload)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeBody[response.ErrorResponse](t, rec)
	assert.Equal(t, response.CodeValidationError, body.Code)
	assert.Contains(t, body.Fields, "price_per_night")
}

func TestListHomestays_SerializedAndFiltered(t *testing.T) {
	store := memory.New()
	router := newHomestaysRouter(store)

	for _, payload := range []map[string]any{
		homestayPayload(),
		{
			"title":           "City Loft",
			"location":        "Lisbon",
			"country":         "Portugal",
			"price_per_night": 90.0,
			"max_guests":      2,
		},
	} {
		rec := doJSON(t, router, http.MethodPost, "/api/homestays", payload)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/homestays?q=lake&country=Japan", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	docs := decodeBody[[]map[string]any](t, rec)
	require.Len(t, docs, 1)

	// Serialization boundary: native id renamed and stringified,
	// temporal field rendered as a string.
	id, ok := docs[0]["id"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, id)
	assert.NotContains(t, docs[0], "_id")
	_, ok = docs[0]["created_at"].(string)
	assert.True(t, ok)
}

func TestListHomestays_EmptyResult(t *testing.T) {
	router := newHomestaysRouter(memory.New())

	rec := doJSON(t, router, http.MethodGet, "/api/homestays?country=Iceland", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListHomestays_BadNumericParam(t *testing.T) {
	router := newHomestaysRouter(memory.New())

	rec := doJSON(t, router, http.MethodGet, "/api/homestays?minPrice=cheap", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeBody[response.ErrorResponse](t, rec)
	assert.Contains(t, body.Fields, "minPrice")
}

func TestFeaturedHomestays_LimitApplied(t *testing.T) {
	store := memory.New()
	router := newHomestaysRouter(store)

	for i := 0; i < 10; i++ {
		rec := doJSON(t, router, http.MethodPost, "/api/homestays", homestayPayload())
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/homestays/featured", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	docs := decodeBody[[]map[string]any](t, rec)
	assert.Len(t, docs, 8)

	rec = doJSON(t, router, http.MethodGet, "/api/homestays/featured?limit=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	docs = decodeBody[[]map[string]any](t, rec)
	assert.Len(t, docs, 3)
}

func TestHomestays_StoreUnavailable(t *testing.T) {
	router := newHomestaysRouter(&storage.MongoStore{})

	targets := []string{
		"/api/homestays",
		"/api/homestays?q=lake&country=Japan&minPrice=10&maxPrice=200&guests=2&limit=5",
		"/api/homestays/featured",
	}
	for _, target := range targets {
		rec := doJSON(t, router, http.MethodGet, target, nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code, target)

		body := decodeBody[response.ErrorResponse](t, rec)
		assert.Equal(t, response.CodeStoreUnavailable, body.Code, target)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/homestays", homestayPayload())
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody[response.ErrorResponse](t, rec)
	assert.Equal(t, response.CodeStoreUnavailable, body.Code)
}
