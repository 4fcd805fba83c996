package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/eastlinkgh/connect/internal/domain"
	"github.com/eastlinkgh/connect/internal/usecase"
)

// DirectoryHandler — обработчик HTTP-запросов к записям справочника.
// Все пять сущностей обслуживаются одним и тем же паттерном:
// decode → usecase → respond.
type DirectoryHandler struct {
	directory usecase.DirectoryUseCase
	logger    *slog.Logger
}

// NewDirectoryHandler создаёт новый экземпляр DirectoryHandler.
func NewDirectoryHandler(directory usecase.DirectoryUseCase, logger *slog.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		directory: directory,
		logger:    logger,
	}
}

// CreateBusiness — POST /api/businesses
func (h *DirectoryHandler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	var in domain.Business
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	id, err := h.directory.CreateBusiness(r.Context(), in)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"id": id}, h.logger)
}

// ListBusinesses — GET /api/businesses?q=&town=&category=&limit=
func (h *DirectoryHandler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	docs, err := h.directory.ListBusinesses(r.Context(),
		params.Get("q"),
		params.Get("town"),
		params.Get("category"),
		limitParam(r),
	)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, docs, h.logger)
}

// CreateProduct — POST /api/products
func (h *DirectoryHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in domain.Product
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	id, err := h.directory.CreateProduct(r.Context(), in)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"id": id}, h.logger)
}

// ListProducts — GET /api/products?business_id=&q=&limit=
func (h *DirectoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	docs, err := h.directory.ListProducts(r.Context(),
		params.Get("business_id"),
		params.Get("q"),
		limitParam(r),
	)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, docs, h.logger)
}

// CreateAttraction — POST /api/attractions
func (h *DirectoryHandler) CreateAttraction(w http.ResponseWriter, r *http.Request) {
	var in domain.Attraction
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	id, err := h.directory.CreateAttraction(r.Context(), in)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"id": id}, h.logger)
}

// ListAttractions — GET /api/attractions?q=&town=&limit=
func (h *DirectoryHandler) ListAttractions(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	docs, err := h.directory.ListAttractions(r.Context(),
		params.Get("q"),
		params.Get("town"),
		limitParam(r),
	)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, docs, h.logger)
}

// CreateReview — POST /api/reviews
func (h *DirectoryHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var in domain.Review
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	id, err := h.directory.CreateReview(r.Context(), in)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"id": id}, h.logger)
}

// ListReviews — GET /api/reviews?target_type=&target_id=&limit=
func (h *DirectoryHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	docs, err := h.directory.ListReviews(r.Context(),
		params.Get("target_type"),
		params.Get("target_id"),
		limitParam(r),
	)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, docs, h.logger)
}

// CreateUpdate — POST /api/updates
func (h *DirectoryHandler) CreateUpdate(w http.ResponseWriter, r *http.Request) {
	var in domain.Update
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	id, err := h.directory.CreateUpdate(r.Context(), in)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"id": id}, h.logger)
}

// ListUpdates — GET /api/updates?town=&category=&q=&limit=
func (h *DirectoryHandler) ListUpdates(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	docs, err := h.directory.ListUpdates(r.Context(),
		params.Get("town"),
		params.Get("category"),
		params.Get("q"),
		limitParam(r),
	)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, docs, h.logger)
}

// Stories — GET /stories?towns=&limit= : последние новости по
// подписанным городам, новые первыми.
func (h *DirectoryHandler) Stories(w http.ResponseWriter, r *http.Request) {
	docs, err := h.directory.Stories(r.Context(),
		r.URL.Query().Get("towns"),
		limitParam(r),
	)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, docs, h.logger)
}

// limitParam читает limit из query; нечисловое или отсутствующее
// значение оставляет 0 — usecase подставит дефолт.
func limitParam(r *http.Request) int64 {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	return limit
}
