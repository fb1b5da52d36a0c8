package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/waygate-dev/waygate/internal/httpserver/deps"
	"github.com/waygate-dev/waygate/internal/logger"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz reports whether the service can take traffic: the store must
// answer a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := d.Store.Ping(ctx); err != nil {
			d.Logger.Warn("readiness check failed", logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{
				Ready: false,
				Error: "store unavailable",
			})
			return
		}

		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
