package app

import (
	"context"
	"fmt"
	"time"

	"github.com/eastlinkgh/connect/internal/messaging/payloads"
)

// runWorker запускает потребителя RabbitMQ: события update.posted
// превращаются в счётчики активности городов.
func runWorker(ctx context.Context, a *App) error {
	if a.consumer == nil {
		return fmt.Errorf("воркеру нужен RabbitMQ: задайте RABBITMQ_URL")
	}

	a.logger.Info("worker started, waiting for update.posted events")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	messageHandler := func(ctx context.Context, payload payloads.UpdatePostedPayload) error {
		a.logger.Info("processing update.posted",
			"update_id", payload.UpdateID,
			"town", payload.Town,
		)
		return a.directory.TallyTownActivity(ctx, payload)
	}

	if err := a.consumer.StartConsumingUpdatePosted(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("shutdown signal received, stopping worker")

	cancelWorker()

	// Небольшая задержка, чтобы in-flight сообщения успели завершиться
	time.Sleep(2 * time.Second)
	a.logger.Info("worker stopped gracefully")

	return nil
}
