package usecase

import (
	"context"

	"github.com/eastlinkgh/connect/internal/domain"
	"github.com/eastlinkgh/connect/internal/messaging/payloads"
)

// Лимиты выборок по умолчанию.
const (
	DefaultListLimit    = 50
	DefaultStoriesLimit = 20
)

// DirectoryUseCase — создание и выборка записей справочника:
// бизнесы, товары, достопримечательности, отзывы и новости сообщества.
// Все Create-операции валидируют запись до вставки; ошибки валидации
// возвращаются как *ValidationError.
type DirectoryUseCase interface {
	CreateBusiness(ctx context.Context, in domain.Business) (string, error)
	// ListBusinesses — q ищет подстроку в name/description/town.
	ListBusinesses(ctx context.Context, q, town, category string, limit int64) ([]domain.Document, error)

	// CreateProduct нормализует business_id к каноничному hex, если тот
	// парсится как ObjectID; иначе значение сохраняется без изменений.
	CreateProduct(ctx context.Context, in domain.Product) (string, error)
	ListProducts(ctx context.Context, businessID, q string, limit int64) ([]domain.Document, error)

	CreateAttraction(ctx context.Context, in domain.Attraction) (string, error)
	ListAttractions(ctx context.Context, q, town string, limit int64) ([]domain.Document, error)

	CreateReview(ctx context.Context, in domain.Review) (string, error)
	ListReviews(ctx context.Context, targetType, targetID string, limit int64) ([]domain.Document, error)

	CreateUpdate(ctx context.Context, in domain.Update) (string, error)
	ListUpdates(ctx context.Context, town, category, q string, limit int64) ([]domain.Document, error)

	// Stories — последние новости по подписанным городам, новые первыми.
	// towns — строка вида "Koforidua, Mampong"; пустые элементы
	// отбрасываются, пустой итог отключает фильтр по городам.
	Stories(ctx context.Context, towns string, limit int64) ([]domain.Document, error)

	// TallyTownActivity обрабатывает событие update.posted (воркер).
	TallyTownActivity(ctx context.Context, payload payloads.UpdatePostedPayload) error
}
