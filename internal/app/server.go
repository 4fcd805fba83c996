package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/eastlinkgh/connect/internal/handler"
)

// runServer запускает HTTP сервер с graceful shutdown.
func runServer(ctx context.Context, a *App) error {
	authHandler := handler.NewAuthHandler(a.authUseCase, a.logger)
	directoryHandler := handler.NewDirectoryHandler(a.directory, a.logger)
	systemHandler := handler.NewSystemHandler(a.db, a.logger)
	mediaHandler := handler.NewMediaHandler(a.fileStorage, a.logger)

	requireUser := handler.Authenticator(a.authUseCase, a.logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(handler.RequestLogger(a.logger))
	r.Use(middleware.Timeout(a.cfg.RequestTimeout))

	r.Get("/", systemHandler.Root)
	r.Get("/schema", systemHandler.Schema)
	r.Get("/test", systemHandler.Test)
	r.Get("/stories", directoryHandler.Stories)

	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/auth/me", authHandler.Me)
		r.Patch("/auth/follow", authHandler.Follow)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/businesses", directoryHandler.ListBusinesses)
		r.Get("/products", directoryHandler.ListProducts)
		r.Get("/attractions", directoryHandler.ListAttractions)
		r.Get("/reviews", directoryHandler.ListReviews)
		r.Get("/updates", directoryHandler.ListUpdates)

		// Все мутирующие маршруты требуют bearer-токен.
		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Post("/businesses", directoryHandler.CreateBusiness)
			r.Post("/products", directoryHandler.CreateProduct)
			r.Post("/attractions", directoryHandler.CreateAttraction)
			r.Post("/reviews", directoryHandler.CreateReview)
			r.Post("/updates", directoryHandler.CreateUpdate)
			r.Post("/media", mediaHandler.Upload)
		})
	})

	serverAddr := fmt.Sprintf(":%s", a.cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", serverAddr)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ошибка при запуске сервера: %w", err)
		}
		return nil

	case <-ctx.Done():
		a.logger.Info("shutdown signal received, stopping server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		a.logger.Info("server stopped gracefully")
		return nil
	}
}
