package ports

import (
	"context"

	"github.com/eastlinkgh/connect/internal/messaging/payloads"
)

// UpdatePostedPublisher определяет методы для публикации событий о новостях.
// Используется usecase при создании community update.
type UpdatePostedPublisher interface {
	PublishUpdatePosted(ctx context.Context, payload payloads.UpdatePostedPayload) error
}

// UpdatePostedConsumer определяет методы для потребления событий о новостях.
// Используется воркером для получения задач из очереди.
type UpdatePostedConsumer interface {
	// StartConsumingUpdatePosted начинает прослушивание очереди;
	// принимает функцию-обработчик для каждого полученного сообщения.
	StartConsumingUpdatePosted(ctx context.Context, handler func(context.Context, payloads.UpdatePostedPayload) error) error
}
