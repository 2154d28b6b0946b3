package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"chirpify/internal/config"
	"chirpify/internal/credentials"
	"chirpify/internal/domain"
	"chirpify/internal/integrations/huggingface"
	"chirpify/internal/integrations/paramstore"
	"chirpify/internal/logging"
	"chirpify/internal/usecase"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file to load before reading configuration")
	model := flag.String("model", domain.DefaultModel().ID, "model identifier (see -list)")
	list := flag.Bool("list", false, "list the available models and exit")
	flag.Parse()

	if *list {
		printModels(os.Stdout)
		return
	}
	if _, ok := domain.LookupModel(*model); !ok {
		fmt.Fprintf(os.Stderr, "unknown model %q\n\n", *model)
		printModels(os.Stderr)
		os.Exit(2)
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// restore default handling so a second signal terminates immediately
		<-ctx.Done()
		stop()
	}()

	cfg := config.Load(os.LookupEnv, "text")
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	token := resolveToken(ctx, cfg)
	if !token.Present() {
		fmt.Fprintln(os.Stderr, "⚠️  Missing HF token. Add HF_TOKEN=hf_xxx to your .env and restart.")
	}

	hfClient, err := huggingface.NewClient(token.Value, huggingface.WithBaseURL(cfg.BaseURL))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	svc, err := usecase.NewCorrectService(hfClient, usecase.Settings{
		Temperature:    cfg.Temperature,
		MaxTokens:      cfg.MaxTokens,
		MaxSentenceLen: cfg.MaxSentenceLen,
	}, usecase.WithLogger(logger), usecase.WithNotifier(newTerminalNotifier(os.Stdout)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := &app{corrector: svc, model: *model, in: os.Stdin, out: os.Stdout}
	if args := flag.Args(); len(args) > 0 {
		if err := app.once(ctx, strings.Join(args, " ")); err != nil {
			os.Exit(1)
		}
		return
	}
	app.loop(ctx)
}

func resolveToken(ctx context.Context, cfg config.Config) credentials.Token {
	var params credentials.TokenGetter
	if cfg.HFToken == "" && cfg.TokenParam != "" {
		ps, err := paramstore.NewFromDefaultConfig(ctx)
		if err != nil {
			slog.Warn("parameter store unavailable", "err", err)
		} else {
			params = ps
		}
	}
	token, err := credentials.Resolve(ctx, cfg.HFToken, cfg.TokenParam, params)
	if err != nil {
		slog.Warn("credential lookup failed", "err", err)
	}
	return token
}
