package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"chirpify/handler"
	"chirpify/internal/config"
	"chirpify/internal/credentials"
	"chirpify/internal/integrations/huggingface"
	"chirpify/internal/integrations/paramstore"
	"chirpify/internal/logging"
	"chirpify/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	cfg := config.Load(os.LookupEnv, "json")
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	// ---- Credential (resolved once; absence is reported per request) ----
	var params credentials.TokenGetter
	if cfg.HFToken == "" && cfg.TokenParam != "" {
		ps, err := paramstore.NewFromDefaultConfig(ctx)
		if err != nil {
			slog.Error("failed to create SSM client", "err", err)
		} else {
			params = ps
		}
	}
	token, err := credentials.Resolve(ctx, cfg.HFToken, cfg.TokenParam, params)
	if err != nil {
		slog.Warn("credential lookup failed", "err", err)
	}
	if !token.Present() {
		slog.Warn("no inference token configured; requests will fail with CONFIGURATION_ERROR")
	} else {
		slog.Info("inference token loaded", "source", token.Source)
	}

	// ---- Clients ----
	hfClient, err := huggingface.NewClient(token.Value, huggingface.WithBaseURL(cfg.BaseURL))
	if err != nil {
		slog.Error("failed to create inference client", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	correctService, err := usecase.NewCorrectService(hfClient, usecase.Settings{
		Temperature:    cfg.Temperature,
		MaxTokens:      cfg.MaxTokens,
		MaxSentenceLen: cfg.MaxSentenceLen,
	}, usecase.WithLogger(logger))
	if err != nil {
		slog.Error("failed to create correct service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(correctService)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
