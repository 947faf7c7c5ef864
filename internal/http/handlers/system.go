package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/toshihome/homestay-bookings/internal/domain"
	"github.com/toshihome/homestay-bookings/internal/http/response"
	"github.com/toshihome/homestay-bookings/internal/storage"
)

// SystemHandler serves the liveness, diagnostics and schema
// introspection endpoints.
type SystemHandler struct {
	Store    storage.Store
	StoreURL bool // whether DATABASE_URL was configured
}

func NewSystemHandler(store storage.Store, storeURLSet bool) *SystemHandler {
	return &SystemHandler{Store: store, StoreURL: storeURLSet}
}

func (h *SystemHandler) Register(r chi.Router) {
	r.Get("/", h.root)
	r.Get("/api/hello", h.hello)
	r.Get("/test", h.probe)
	r.Get("/schema", h.schemas)
}

func (h *SystemHandler) root(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Toshi Home backend is running",
	})
}

func (h *SystemHandler) hello(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Hello from Toshi Home API",
	})
}

// probe reports store connectivity. It must never fail: every internal
// error degrades to a descriptive string in the payload.
func (h *SystemHandler) probe(w http.ResponseWriter, r *http.Request) {
	probe := map[string]any{
		"backend":           "✅ Running",
		"database":          "❌ Not Available",
		"database_url":      nil,
		"database_name":     nil,
		"connection_status": "Not Connected",
		"collections":       []string{},
	}

	if h.Store.Available() {
		probe["database"] = "✅ Available"
		if h.StoreURL {
			probe["database_url"] = "✅ Set"
		} else {
			probe["database_url"] = "❌ Not Set"
		}
		probe["database_name"] = h.Store.Name()
		probe["connection_status"] = "Connected"

		if collections, err := h.Store.Collections(r.Context()); err != nil {
			probe["database"] = "⚠️  Connected but Error: " + truncate(err.Error(), 50)
		} else {
			if len(collections) > 10 {
				collections = collections[:10]
			}
			probe["collections"] = collections
			probe["database"] = "✅ Connected & Working"
		}
	}

	response.WriteJSON(w, http.StatusOK, probe)
}

func (h *SystemHandler) schemas(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, domain.Schemas())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
