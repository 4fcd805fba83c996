package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/eastlinkgh/connect/internal/domain"
)

const serviceName = "East Link Connect API"

// StoreDiagnostics — минимальный срез клиента базы для /test.
type StoreDiagnostics interface {
	Ping(ctx context.Context) error
	ListCollections(ctx context.Context) ([]string, error)
}

// SystemHandler — liveness, схема коллекций и диагностика хранилища.
type SystemHandler struct {
	store  StoreDiagnostics // nil, если база не сконфигурирована
	logger *slog.Logger
}

func NewSystemHandler(store StoreDiagnostics, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{store: store, logger: logger}
}

// Root — GET /
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"name":   serviceName,
		"status": "ok",
	}, h.logger)
}

// Schema — GET /schema: имена коллекций для админских инструментов.
func (h *SystemHandler) Schema(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"collections": domain.Collections(),
	}, h.logger)
}

// Test — GET /test: отчёт о доступности хранилища.
func (h *SystemHandler) Test(w http.ResponseWriter, r *http.Request) {
	report := map[string]any{
		"backend":           "running",
		"database":          "not available",
		"connection_status": "not connected",
		"collections":       []string{},
	}

	if h.store == nil {
		respondWithJSON(w, http.StatusOK, report, h.logger)
		return
	}

	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Error("database ping failed", "error", err)
		report["database"] = "error: " + err.Error()
		respondWithJSON(w, http.StatusOK, report, h.logger)
		return
	}

	report["database"] = "connected"
	report["connection_status"] = "connected"

	collections, err := h.store.ListCollections(r.Context())
	if err != nil {
		h.logger.Error("failed to list collections", "error", err)
		report["database"] = "connected but error: " + err.Error()
	} else {
		if len(collections) > 10 {
			collections = collections[:10]
		}
		report["collections"] = collections
	}

	respondWithJSON(w, http.StatusOK, report, h.logger)
}
