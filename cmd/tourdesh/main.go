package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/tourdesh/tourdesh-api/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting tourdesh api",
		"addr", cfg.HTTP.Addr,
		"database", cfg.Mongo.Database,
		"auth_mode", cfg.Auth.Mode,
		"payments_enabled", cfg.Payments.Enabled(),
	)

	client, db, err := bootstrap.ConnectMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		return err
	}
	defer bootstrap.DisconnectMongo(context.Background(), client, logger)

	services, err := bootstrap.BuildServices(ctx, &cfg, db, logger)
	if err != nil {
		return err
	}

	return bootstrap.RunHTTPServer(ctx, &bootstrap.HTTPServerConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}
