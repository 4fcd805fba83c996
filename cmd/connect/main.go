package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/eastlinkgh/connect/internal/di"
)

func main() {

	mode := flag.String("mode", "server", "Режим запуска приложения: server или worker")
	flag.Parse()

	// bootstrap-логгер (используется только на этапе инициализации)
	bootstrapLogger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	bootstrapLogger.Info("starting application", "mode", *mode)

	ctx := context.Background()

	app, err := di.BuildApp(ctx)
	if err != nil {
		bootstrapLogger.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx, *mode); err != nil {
		app.Logger().Error("application run failed", "error", err)
		os.Exit(1)
	}

	app.Logger().Info("application stopped gracefully")
}
