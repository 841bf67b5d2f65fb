package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/supplysight/assistant-core/internal/assist/classify"
	"github.com/supplysight/assistant-core/internal/assist/model"
	"github.com/supplysight/assistant-core/internal/assist/resolve"
	"github.com/supplysight/assistant-core/internal/assist/session"
	"github.com/supplysight/assistant-core/internal/core"
	"github.com/supplysight/assistant-core/internal/reply"
	"github.com/supplysight/assistant-core/internal/search"
	"github.com/supplysight/assistant-core/internal/transport"
	logx "github.com/supplysight/assistant-core/pkg/logger"
	pkgredis "github.com/supplysight/assistant-core/pkg/redis"
)

// AppConfig defines all configurable parameters for the service, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis     pkgredis.Config
	Transport transport.Config

	// LLM provider
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Assistant configs
	Search     model.SearchConfig
	Classifier model.ClassifierConfig
	Reply      model.ReplyConfig
	Session    model.SessionConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.Opts{Environment: core.ParseEnvironment(cfg.Environment)})

	rdb, err := cfg.Redis.New()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise Redis client")
	}
	defer rdb.Close()

	ttl, err := time.ParseDuration(cfg.Session.TTL)
	if err != nil {
		logx.Fatal().Err(err).Str("ttl", cfg.Session.TTL).Msg("invalid SESSION_TTL")
	}
	probeInterval, err := time.ParseDuration(cfg.Reply.ProbeInterval)
	if err != nil {
		logx.Fatal().Err(err).Str("interval", cfg.Reply.ProbeInterval).Msg("invalid REPLY_PROBE_INTERVAL")
	}

	engine, err := reply.NewEngine(ctx, cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.Reply)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build reply engine")
	}
	prober := reply.NewProber(engine, probeInterval)

	sessions := session.NewManager(
		session.NewRedisStore(rdb, ttl),
		classify.New(cfg.Classifier),
		resolve.New(search.NewClient(cfg.Search)),
		engine,
		func(action model.Action) {
			logx.Debug().Str("action", string(action.Type)).Msg("navigation dispatched")
		},
		cfg.Session,
	)

	nt, err := transport.NewNATSTransport(cfg.Transport, sessions, prober)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise NATS transport")
	}
	if err := nt.Start(); err != nil {
		logx.Fatal().Err(err).Msg("failed to start NATS transport")
	}

	prober.Start(ctx)

	logx.Info().
		Str("environment", cfg.Environment).
		Str("connectivity", string(prober.Status())).
		Msg("assistant-core started")

	<-ctx.Done()

	logx.Info().Msg("shutting down")
	prober.Stop()
	if err := nt.Close(); err != nil {
		logx.Error().Err(err).Msg("error closing NATS transport")
	}
}
