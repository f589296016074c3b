package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"adforge/internal/adapter/repo"
	"adforge/internal/cache"
	"adforge/internal/credits"
	"adforge/internal/genai"
	"adforge/internal/infra"
	"adforge/internal/pipeline"
	"adforge/internal/queue"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	gens := repo.NewGenerationRepository(runner)
	brands := repo.NewBrandRepository(runner)
	analytics := repo.NewAnalyticsRepository(runner)
	ledger := credits.NewPGLedger(pool)

	// Result cache: redis when configured, per-process memory otherwise.
	var resultCache cache.ResultCache
	if redisClient, err := infra.NewRedisClient(cfg); err != nil {
		logger.Warn().Err(err).Msg("worker: redis unavailable, using in-memory result cache")
		resultCache = cache.NewMemory()
	} else {
		defer redisClient.Close()
		resultCache = cache.NewRedis(redisClient, logger)
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	geminiClient, err := genai.NewClient(genai.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		Model:      cfg.GeminiModel,
		HTTPClient: httpClient,
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure gemini client")
	}

	retrier := genai.NewRetrier(logger)
	retrier.MaxAttempts = cfg.JobMaxAttempts
	retrier.BaseDelay = cfg.JobBackoffBase

	pipelineRunner := pipeline.NewRunner(gens, brands, geminiClient, resultCache, retrier, logger)

	worker := queue.NewWorker(
		queue.NewPGStore(runner),
		gens,
		brands,
		ledger,
		analytics,
		pipelineRunner,
		queue.NewLimiter(cfg.WorkerRatePerMin),
		logger,
		queue.WorkerConfig{
			Concurrency:  cfg.WorkerConcurrency,
			PollInterval: cfg.WorkerPollInterval,
			BackoffBase:  cfg.JobBackoffBase,
		},
	)

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}
