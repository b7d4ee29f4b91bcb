package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"biocryptor/internal/app"
	"biocryptor/internal/config"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger := app.NewLogger(cfg, true)
	slog.SetDefault(logger)

	// ---- Clients ----
	creds, err := app.Credentials(ctx, cfg)
	if err != nil {
		logger.Error("failed to create credential source", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	h, err := app.NewHandler(cfg, creds, logger)
	if err != nil {
		logger.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
