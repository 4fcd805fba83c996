package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/eastlinkgh/connect/internal/config"
	"github.com/eastlinkgh/connect/internal/core/ports"
	"github.com/eastlinkgh/connect/internal/database/mongo"
	"github.com/eastlinkgh/connect/internal/usecase"
)

// App агрегирует зависимости приложения и управляет его жизненным циклом.
type App struct {
	cfg         *config.Config
	logger      *slog.Logger
	db          *mongo.Client
	authUseCase usecase.AuthUseCase
	directory   usecase.DirectoryUseCase
	fileStorage ports.FileStorage
	consumer    ports.UpdatePostedConsumer
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	db *mongo.Client,
	authUseCase usecase.AuthUseCase,
	directory usecase.DirectoryUseCase,
	fileStorage ports.FileStorage,
	consumer ports.UpdatePostedConsumer,
) *App {
	return &App{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		authUseCase: authUseCase,
		directory:   directory,
		fileStorage: fileStorage,
		consumer:    consumer,
	}
}

// Logger возвращает основной логгер приложения.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run запускает приложение в одном из режимов: server или worker.
func (a *App) Run(ctx context.Context, mode string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("application starting", "mode", mode)

	var err error

	switch mode {
	case "server":
		err = runServer(ctx, a)

	case "worker":
		err = runWorker(ctx, a)

	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", mode)
	}

	if closeErr := a.Shutdown(ctx); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	return err
}

// Shutdown закрывает все ресурсы приложения.
func (a *App) Shutdown(ctx context.Context) error {
	if a.db != nil {
		if err := a.db.Close(ctx); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}

	if closer, ok := a.consumer.(interface{ Close() }); ok && a.consumer != nil {
		closer.Close()
	}

	return nil
}
