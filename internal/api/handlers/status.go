package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/saasify-labs/commerce-api/internal/api/middleware"
	"github.com/saasify-labs/commerce-api/internal/utils/response"
)

// StoreChecker is the slice of the store the diagnostics need.
type StoreChecker interface {
	Ping(ctx context.Context) error
	CollectionNames(ctx context.Context) ([]string, error)
}

type StatusHandler struct {
	store StoreChecker
}

func NewStatusHandler(s StoreChecker) *StatusHandler {
	return &StatusHandler{store: s}
}

func (h *StatusHandler) Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJson(w, http.StatusOK, map[string]string{"message": "E-commerce SaaS API running"})
	}
}

// Diagnostic reachability report for the document store.
func (h *StatusHandler) Test() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		resp := map[string]any{
			"backend":           "running",
			"database":          "not available",
			"database_url":      envStatus("MONGO_URI"),
			"database_name":     envStatus("MONGO_DB"),
			"connection_status": "not connected",
			"collections":       []string{},
		}

		if err := h.store.Ping(r.Context()); err != nil {
			logger.Warn("Store ping failed", slog.Any("error", err))
			resp["database"] = "error: " + truncate(err.Error(), 80)
			response.WriteJson(w, http.StatusOK, resp)
			return
		}

		resp["database"] = "connected"
		resp["connection_status"] = "connected"

		if names, err := h.store.CollectionNames(r.Context()); err == nil {
			resp["collections"] = names
		} else {
			logger.Warn("Listing collections failed", slog.Any("error", err))
			resp["database"] = "connected but error: " + truncate(err.Error(), 80)
		}

		response.WriteJson(w, http.StatusOK, resp)
	}
}

func envStatus(name string) string {
	if os.Getenv(name) != "" {
		return "set"
	}
	return "not set"
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
