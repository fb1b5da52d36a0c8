package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/waygate-dev/waygate/internal/domain"
	"github.com/waygate-dev/waygate/internal/httpserver/deps"
	"github.com/waygate-dev/waygate/internal/logger"
)

type createItemRequest struct {
	Item string `json:"item"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// CreateItem registers a new tracked item. The response carries the
// placeholder row; the title/favicon fetch happens after the response.
func CreateItem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createItemRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			// An unreadable body carries no item either way.
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "item is required"})
			return
		}

		it, err := d.Enricher.Create(r.Context(), body.Item)
		if err != nil {
			if errors.Is(err, domain.ErrItemRequired) {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "item is required"})
				return
			}
			d.Logger.Error("failed to create item", logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		writeJSON(w, http.StatusCreated, it)
	}
}

// ListItems returns all items, newest first.
func ListItems(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := d.Store.List(r.Context())
		if err != nil {
			d.Logger.Error("failed to list items", logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

// DeleteItem removes an item by id. A non-numeric or unknown id is a 404;
// any enrichment job still in flight for the item becomes a harmless no-op.
func DeleteItem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Item not found"})
			return
		}

		changed, err := d.Store.Delete(r.Context(), id)
		if err != nil {
			d.Logger.Error("failed to delete item",
				logger.Int64("item_id", id),
				logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}
		if !changed {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Item not found"})
			return
		}

		writeJSON(w, http.StatusOK, deleteResponse{Success: true})
	}
}
