package di

import (
	"context"

	"github.com/eastlinkgh/connect/internal/adapter/storage/s3"
	"github.com/eastlinkgh/connect/internal/app"
	"github.com/eastlinkgh/connect/internal/auth"
	"github.com/eastlinkgh/connect/internal/config"
	"github.com/eastlinkgh/connect/internal/core/ports"
	"github.com/eastlinkgh/connect/internal/database/mongo"
	"github.com/eastlinkgh/connect/internal/database/storage"
	"github.com/eastlinkgh/connect/internal/logger"
	"github.com/eastlinkgh/connect/internal/rabbitmq"
	"github.com/eastlinkgh/connect/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp(ctx context.Context) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	if cfg.DevSecretInUse() {
		// Осознанное удобство разработки; в проде так жить нельзя.
		slogger.Warn("JWT_SECRET not set, using insecure development secret")
	}

	// 2. Инициализация MongoDB клиента
	dbClient, err := mongo.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	slogger.Info("connected to MongoDB", "database", cfg.DatabaseName)

	// 3. Инициализация хранилищ
	userStorage := storage.NewUserStorage(dbClient.Database(), slogger)
	documentStorage := storage.NewDocumentStorage(dbClient.Database(), slogger)

	// 4. Компоненты аутентификации
	hasher := auth.NewHasher()
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)

	// 5. Опциональные адаптеры: медиа-хранилище и брокер сообщений
	var fileStorage ports.FileStorage
	if cfg.MediaEnabled() {
		s3Client, err := s3.NewClient(cfg, slogger)
		if err != nil {
			return nil, err
		}
		fileStorage = s3Client
	} else {
		slogger.Info("media storage not configured, /api/media disabled")
	}

	var publisher ports.UpdatePostedPublisher
	var consumer ports.UpdatePostedConsumer
	if cfg.QueueEnabled() {
		rabbitClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			return nil, err
		}
		publisher = rabbitClient
		consumer = rabbitClient
	} else {
		slogger.Info("rabbitmq not configured, update.posted events disabled")
	}

	// 6. Инициализация бизнес-логики (usecases)
	authUseCase := usecase.NewAuthUseCase(userStorage, hasher, tokens, slogger)
	directoryUseCase := usecase.NewDirectoryUseCase(documentStorage, publisher, slogger)

	// 7. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		authUseCase,
		directoryUseCase,
		fileStorage,
		consumer,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
