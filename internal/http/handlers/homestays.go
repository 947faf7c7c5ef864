package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/toshihome/homestay-bookings/internal/cache"
	"github.com/toshihome/homestay-bookings/internal/domain"
	"github.com/toshihome/homestay-bookings/internal/homestays"
	"github.com/toshihome/homestay-bookings/internal/http/response"
	"github.com/toshihome/homestay-bookings/internal/storage"
	"github.com/toshihome/homestay-bookings/pkg/events"
	"github.com/toshihome/homestay-bookings/pkg/logger"
)

type HomestaysHandler struct {
	Store storage.Store
	Cache *cache.FeaturedCache
	Bus   events.Publisher
}

func NewHomestaysHandler(store storage.Store, featured *cache.FeaturedCache, bus events.Publisher) *HomestaysHandler {
	return &HomestaysHandler{Store: store, Cache: featured, Bus: bus}
}

func (h *HomestaysHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/featured", h.featured)
	r.Post("/", h.create)
	return r
}

func (h *HomestaysHandler) list(w http.ResponseWriter, r *http.Request) {
	if !h.Store.Available() {
		response.StoreUnavailable(w)
		return
	}

	filter, fields := homestays.ParseSearchFilter(r.URL.Query())
	if fields != nil {
		response.ValidationFailed(w, fields)
		return
	}

	docs, err := h.Store.Find(r.Context(), storage.CollectionHomestay, filter.BuildQuery(), filter.Limit)
	if err != nil {
		logger.ErrorContext(r.Context(), "Homestay search failed", "error", err)
		response.InternalError(w, "failed to query homestays")
		return
	}

	response.WriteJSON(w, http.StatusOK, homestays.SerializeDocs(docs))
}

func (h *HomestaysHandler) featured(w http.ResponseWriter, r *http.Request) {
	if !h.Store.Available() {
		response.StoreUnavailable(w)
		return
	}

	limit := homestays.ParseLimit(r.URL.Query().Get("limit"), homestays.DefaultFeaturedLimit)

	if cached, ok := h.Cache.Get(r.Context(), limit); ok {
		response.WriteJSON(w, http.StatusOK, cached)
		return
	}

	docs, err := h.Store.Find(r.Context(), storage.CollectionHomestay, nil, limit)
	if err != nil {
		logger.ErrorContext(r.Context(), "Featured lookup failed", "error", err)
		response.InternalError(w, "failed to query homestays")
		return
	}

	serialized := homestays.SerializeDocs(docs)
	h.Cache.Set(r.Context(), limit, serialized)
	response.WriteJSON(w, http.StatusOK, serialized)
}

func (h *HomestaysHandler) create(w http.ResponseWriter, r *http.Request) {
	var listing domain.Homestay
	if fields := domain.DecodeAndValidate(r.Body, &listing); fields != nil {
		response.ValidationFailed(w, fields)
		return
	}
	listing.ApplyDefaults()

	doc, err := storage.ToDocument(&listing)
	if err != nil {
		logger.ErrorContext(r.Context(), "Homestay encode failed", "error", err)
		response.InternalError(w, "failed to store homestay")
		return
	}
	doc["created_at"] = time.Now().UTC()

	id, err := h.Store.Insert(r.Context(), storage.CollectionHomestay, doc)
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			response.StoreUnavailable(w)
			return
		}
		logger.ErrorContext(r.Context(), "Homestay insert failed", "error", err)
		response.InternalError(w, "failed to store homestay")
		return
	}

	if err := h.Bus.Publish(r.Context(), events.HomestayCreated, events.HomestayCreatedEvent{
		HomestayID:    id,
		Title:         listing.Title,
		Country:       listing.Country,
		PricePerNight: *listing.PricePerNight,
		CreatedAt:     time.Now().UTC(),
	}); err != nil {
		logger.WarnContext(r.Context(), "Failed to publish homestay.created", "error", err)
	}

	response.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}
