package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eastlinkgh/connect/internal/core/ports"
	"github.com/eastlinkgh/connect/internal/domain"
	"github.com/eastlinkgh/connect/internal/messaging/payloads"
)

// directoryUseCase implements DirectoryUseCase
type directoryUseCase struct {
	documents ports.DocumentStore
	publisher ports.UpdatePostedPublisher // nil, если брокер не сконфигурирован
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewDirectoryUseCase создаёт новый экземпляр DirectoryUseCase.
func NewDirectoryUseCase(
	documents ports.DocumentStore,
	publisher ports.UpdatePostedPublisher,
	logger *slog.Logger,
) DirectoryUseCase {
	return &directoryUseCase{
		documents: documents,
		publisher: publisher,
		validate:  validator.New(),
		logger:    logger,
	}
}

func (uc *directoryUseCase) CreateBusiness(ctx context.Context, in domain.Business) (string, error) {
	in.ApplyDefaults()
	if err := uc.validate.Struct(in); err != nil {
		return "", &ValidationError{Detail: err.Error()}
	}
	return uc.documents.Insert(ctx, domain.CollectionBusiness, in)
}

func (uc *directoryUseCase) ListBusinesses(ctx context.Context, q, town, category string, limit int64) ([]domain.Document, error) {
	filter := domain.Filter{Contains: map[string]string{}}
	if town != "" {
		filter.Contains["town"] = town
	}
	if category != "" {
		filter.Contains["category"] = category
	}
	if q != "" {
		filter.Search = domain.SearchGroup{
			Term:   q,
			Fields: []string{"name", "description", "town"},
		}
	}
	return uc.documents.Find(ctx, domain.CollectionBusiness, filter, normalizeLimit(limit, DefaultListLimit))
}

func (uc *directoryUseCase) CreateProduct(ctx context.Context, in domain.Product) (string, error) {
	in.ApplyDefaults()
	// Парсящийся business_id приводится к каноничному hex;
	// всё остальное сохраняется как прислали (ссылочная целостность
	// сознательно не проверяется).
	if in.BusinessID != "" {
		if oid, err := primitive.ObjectIDFromHex(in.BusinessID); err == nil {
			in.BusinessID = oid.Hex()
		}
	}
	if err := uc.validate.Struct(in); err != nil {
		return "", &ValidationError{Detail: err.Error()}
	}
	return uc.documents.Insert(ctx, domain.CollectionProduct, in)
}

func (uc *directoryUseCase) ListProducts(ctx context.Context, businessID, q string, limit int64) ([]domain.Document, error) {
	filter := domain.Filter{Equals: map[string]string{}}
	if businessID != "" {
		filter.Equals["business_id"] = businessID
	}
	if q != "" {
		filter.Search = domain.SearchGroup{
			Term:   q,
			Fields: []string{"title", "description"},
		}
	}
	return uc.documents.Find(ctx, domain.CollectionProduct, filter, normalizeLimit(limit, DefaultListLimit))
}

func (uc *directoryUseCase) CreateAttraction(ctx context.Context, in domain.Attraction) (string, error) {
	in.ApplyDefaults()
	if err := uc.validate.Struct(in); err != nil {
		return "", &ValidationError{Detail: err.Error()}
	}
	return uc.documents.Insert(ctx, domain.CollectionAttraction, in)
}

func (uc *directoryUseCase) ListAttractions(ctx context.Context, q, town string, limit int64) ([]domain.Document, error) {
	filter := domain.Filter{Contains: map[string]string{}}
	if town != "" {
		filter.Contains["town"] = town
	}
	if q != "" {
		filter.Search = domain.SearchGroup{
			Term:   q,
			Fields: []string{"name", "description", "tags"},
		}
	}
	return uc.documents.Find(ctx, domain.CollectionAttraction, filter, normalizeLimit(limit, DefaultListLimit))
}

func (uc *directoryUseCase) CreateReview(ctx context.Context, in domain.Review) (string, error) {
	// target_type — закрытое множество; проверяется до персистенции,
	// сообщение совпадает с публичным API.
	switch in.TargetType {
	case domain.TargetBusiness, domain.TargetProduct, domain.TargetAttraction:
	default:
		return "", &ValidationError{Detail: "Invalid target_type"}
	}
	if err := uc.validate.Struct(in); err != nil {
		return "", &ValidationError{Detail: err.Error()}
	}
	return uc.documents.Insert(ctx, domain.CollectionReview, in)
}

func (uc *directoryUseCase) ListReviews(ctx context.Context, targetType, targetID string, limit int64) ([]domain.Document, error) {
	filter := domain.Filter{Equals: map[string]string{}}
	if targetType != "" {
		filter.Equals["target_type"] = targetType
	}
	if targetID != "" {
		filter.Equals["target_id"] = targetID
	}
	return uc.documents.Find(ctx, domain.CollectionReview, filter, normalizeLimit(limit, DefaultListLimit))
}

func (uc *directoryUseCase) CreateUpdate(ctx context.Context, in domain.Update) (string, error) {
	in.ApplyDefaults()
	if err := uc.validate.Struct(in); err != nil {
		return "", &ValidationError{Detail: err.Error()}
	}

	id, err := uc.documents.Insert(ctx, domain.CollectionUpdate, in)
	if err != nil {
		return "", err
	}

	// Публикация события — best effort: отказ брокера не должен
	// ронять успешную вставку.
	if uc.publisher != nil {
		payload := payloads.UpdatePostedPayload{
			UpdateID: id,
			Title:    in.Title,
			Town:     in.Town,
			Category: in.Category,
		}
		if err := uc.publisher.PublishUpdatePosted(ctx, payload); err != nil {
			uc.logger.Error("failed to publish update.posted", "update_id", id, "error", err)
		}
	}

	return id, nil
}

func (uc *directoryUseCase) ListUpdates(ctx context.Context, town, category, q string, limit int64) ([]domain.Document, error) {
	filter := domain.Filter{Contains: map[string]string{}}
	if town != "" {
		filter.Contains["town"] = town
	}
	if category != "" {
		filter.Contains["category"] = category
	}
	if q != "" {
		filter.Search = domain.SearchGroup{
			Term:   q,
			Fields: []string{"title", "content"},
		}
	}
	return uc.documents.Find(ctx, domain.CollectionUpdate, filter, normalizeLimit(limit, DefaultListLimit))
}

func (uc *directoryUseCase) Stories(ctx context.Context, towns string, limit int64) ([]domain.Document, error) {
	return uc.documents.LatestUpdates(ctx, ParseTowns(towns), normalizeLimit(limit, DefaultStoriesLimit))
}

func (uc *directoryUseCase) TallyTownActivity(ctx context.Context, payload payloads.UpdatePostedPayload) error {
	if payload.Town == "" {
		// Новости без города не учитываются в счётчиках.
		return nil
	}
	if err := uc.documents.IncrementTownActivity(ctx, payload.Town, time.Now()); err != nil {
		return fmt.Errorf("tally town activity: %w", err)
	}
	uc.logger.Info("town activity tallied", "town", payload.Town, "update_id", payload.UpdateID)
	return nil
}

// ParseTowns разбирает csv-список городов: пробелы обрезаются,
// пустые элементы отбрасываются.
func ParseTowns(towns string) []string {
	if towns == "" {
		return nil
	}
	parts := strings.Split(towns, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func normalizeLimit(limit, fallback int64) int64 {
	if limit <= 0 {
		return fallback
	}
	return limit
}
