package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/eastlinkgh/connect/internal/core/ports"
)

// maxMediaSize ограничивает размер загружаемого файла (10 МБ).
const maxMediaSize = 10 << 20

// MediaHandler — загрузка изображений в S3-совместимое хранилище.
// Возвращаемый URL клиент подставляет в поля images/avatar.
type MediaHandler struct {
	fileStorage ports.FileStorage // nil, если хранилище не сконфигурировано
	logger      *slog.Logger
}

func NewMediaHandler(fileStorage ports.FileStorage, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// Upload — POST /api/media (за Authenticator-ом), multipart поле "file".
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.fileStorage == nil {
		respondWithError(w, http.StatusInternalServerError, "Media storage not configured", h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxMediaSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form", h.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing file field", h.logger)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Ключ объекта — UUID, исходное расширение сохраняется.
	objectKey := fmt.Sprintf("media/%s%s", uuid.New().String(), filepath.Ext(header.Filename))

	url, err := h.fileStorage.UploadFile(r.Context(), objectKey, file, contentType)
	if err != nil {
		h.logger.Error("failed to upload media", "object_key", objectKey, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	h.logger.Info("media uploaded", "object_key", objectKey, "size", header.Size)
	respondWithJSON(w, http.StatusOK, map[string]string{"url": url}, h.logger)
}
