package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"adforge/internal/creative"
	"adforge/internal/credits"
	"adforge/internal/domain"
	"adforge/internal/pipeline"
)

// WorkerConfig tunes the worker pool. Zero values fall back to defaults in
// NewWorker.
type WorkerConfig struct {
	Concurrency  int
	PollInterval time.Duration
	BackoffBase  time.Duration
	ReapInterval time.Duration
	Retention    RetentionPolicy
}

// Worker claims jobs from the store and executes them against the pipeline.
// Each attempt is debited up front and refunded in full when the attempt
// fails, so a failed job never costs the team anything overall.
type Worker struct {
	store     Store
	gens      domain.GenerationRepository
	brands    domain.BrandRepository
	ledger    domain.CreditLedger
	analytics domain.AnalyticsRepository
	runner    *pipeline.Runner
	limiter   *Limiter
	logger    zerolog.Logger
	cfg       WorkerConfig
}

func NewWorker(
	store Store,
	gens domain.GenerationRepository,
	brands domain.BrandRepository,
	ledger domain.CreditLedger,
	analytics domain.AnalyticsRepository,
	runner *pipeline.Runner,
	limiter *Limiter,
	logger zerolog.Logger,
	cfg WorkerConfig,
) *Worker {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = time.Second
	}
	if cfg.ReapInterval <= 0 {
		cfg.ReapInterval = time.Hour
	}
	if cfg.Retention == (RetentionPolicy{}) {
		cfg.Retention = DefaultRetention()
	}
	return &Worker{
		store:     store,
		gens:      gens,
		brands:    brands,
		ledger:    ledger,
		analytics: analytics,
		runner:    runner,
		limiter:   limiter,
		logger:    logger,
		cfg:       cfg,
	}
}

// Run blocks until ctx ends, processing jobs on cfg.Concurrency goroutines
// and reaping finished jobs in the background.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info().Int("concurrency", w.cfg.Concurrency).Msg("worker: started")

	var wg sync.WaitGroup
	for i := 0; i < w.cfg.Concurrency; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			w.loop(ctx, slot)
		}(i)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.reapLoop(ctx)
	}()

	wg.Wait()
	w.logger.Info().Msg("worker: stopped")
	return ctx.Err()
}

func (w *Worker) loop(ctx context.Context, slot int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := w.store.Claim(ctx)
		if err != nil {
			if !errors.Is(err, ErrNoJob) && !errors.Is(err, context.Canceled) {
				w.logger.Error().Err(err).Int("slot", slot).Msg("worker: claim failed")
			}
			if !sleepCtx(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		w.handle(ctx, job)
	}
}

func (w *Worker) reapLoop(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.ReapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := w.store.Reap(ctx, w.cfg.Retention)
			if err != nil {
				w.logger.Error().Err(err).Msg("worker: reap failed")
				continue
			}
			if removed > 0 {
				w.logger.Info().Int64("removed", removed).Msg("worker: reaped finished jobs")
			}
		}
	}
}

func (w *Worker) handle(ctx context.Context, job *domain.Job) {
	w.logger.Info().
		Str("job_id", job.ID).
		Str("kind", string(job.Kind)).
		Int("attempt", job.Attempts).
		Msg("worker: picked job")

	if err := w.limiter.Wait(ctx); err != nil {
		// Shutdown while waiting for a rate slot. Put the job back untouched
		// so the next worker run picks it up.
		w.requeueOnShutdown(job)
		return
	}

	cost := jobCost(job)
	if err := w.debit(ctx, job, cost); err != nil {
		if errors.Is(err, domain.ErrInsufficientCredits) {
			w.finishFailed(ctx, job, err)
			return
		}
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("worker: debit failed")
		w.retryLater(ctx, job, err)
		return
	}

	err := w.dispatch(ctx, job)
	if err == nil {
		if setErr := w.store.Complete(ctx, job.ID); setErr != nil {
			w.logger.Error().Err(setErr).Str("job_id", job.ID).Msg("worker: complete failed")
		}
		w.recordSuccess(ctx, job, cost)
		return
	}

	w.refund(ctx, job, cost)

	if errors.Is(err, context.Canceled) {
		w.requeueOnShutdown(job)
		return
	}
	if isFatal(err) || job.Attempts >= job.MaxAttempts {
		w.finishFailed(ctx, job, err)
		return
	}
	w.retryLater(ctx, job, err)
}

func (w *Worker) dispatch(ctx context.Context, job *domain.Job) error {
	switch job.Kind {
	case domain.JobGenerate:
		return w.runGenerate(ctx, job)
	case domain.JobRegenerateSection:
		return w.runner.RegenerateSection(ctx, job.Payload.GenerationID, job.Payload.Section, job.Payload.Instructions)
	default:
		return errors.New("unsupported job kind " + string(job.Kind))
	}
}

func (w *Worker) runGenerate(ctx context.Context, job *domain.Job) error {
	g, err := w.gens.GetByID(ctx, job.Payload.GenerationID)
	if err != nil {
		return err
	}
	if err := w.gens.MarkProcessing(ctx, g.ID, job.ID); err != nil {
		return err
	}
	brand, err := w.brands.GetByID(ctx, g.BrandID)
	if err != nil {
		return err
	}
	var product *domain.Product
	if g.ProductID != "" {
		product, err = w.brands.GetProduct(ctx, g.ProductID)
		if err != nil {
			return err
		}
	}

	brief := creative.BuildBrief(brand, product, job.Payload.Input)
	cfg := creative.ConfigFromGeneration(g)

	_, err = w.runner.Run(ctx, g.ID, brief, cfg, func(step string, percent int) {
		if progressErr := w.store.SetProgress(ctx, job.ID, domain.Progress{Step: step, Percent: percent}); progressErr != nil {
			w.logger.Warn().Err(progressErr).Str("job_id", job.ID).Msg("worker: progress update failed")
		}
	})
	return err
}

func (w *Worker) debit(ctx context.Context, job *domain.Job, cost int) error {
	_, err := w.ledger.Debit(ctx, job.Payload.TeamID, job.Payload.UserID, cost, describeJob(job), map[string]any{
		"generationId": job.Payload.GenerationID,
		"jobId":        job.ID,
		"attempt":      job.Attempts,
	})
	return err
}

// refund reverses the attempt's debit. A shutdown-canceled job still owes
// the refund, so a done context is swapped for a detached one the same way
// requeueOnShutdown does; otherwise the requeued job would debit again on
// top of a debit that was never returned.
func (w *Worker) refund(ctx context.Context, job *domain.Job, cost int) {
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}
	if _, err := w.ledger.Refund(ctx, job.Payload.TeamID, job.Payload.UserID, cost, "Refund: "+describeJob(job)); err != nil {
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("worker: refund failed")
	}
}

func (w *Worker) recordSuccess(ctx context.Context, job *domain.Job, cost int) {
	if job.Kind == domain.JobGenerate {
		if err := w.gens.SetCreditsUsed(ctx, job.Payload.GenerationID, cost); err != nil {
			w.logger.Warn().Err(err).Str("job_id", job.ID).Msg("worker: credits_used update failed")
		}
	}
	event := &domain.AnalyticsEvent{
		ID:        uuid.NewString(),
		TeamID:    job.Payload.TeamID,
		EventType: eventTypeFor(job.Kind),
		Metadata: map[string]any{
			"generationId": job.Payload.GenerationID,
			"jobId":        job.ID,
			"creditsUsed":  cost,
		},
	}
	if err := w.analytics.Insert(ctx, event); err != nil {
		w.logger.Warn().Err(err).Str("job_id", job.ID).Msg("worker: analytics insert failed")
	}
	w.logger.Info().Str("job_id", job.ID).Int("credits", cost).Msg("worker: job completed")
}

func (w *Worker) finishFailed(ctx context.Context, job *domain.Job, cause error) {
	if err := w.store.Fail(ctx, job.ID, cause.Error()); err != nil {
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("worker: fail update failed")
	}
	// A terminally failed full generation surfaces its error on the record;
	// a failed section redo leaves the completed generation untouched.
	if job.Kind == domain.JobGenerate {
		if err := w.gens.MarkFailed(ctx, job.Payload.GenerationID, cause.Error()); err != nil && !errors.Is(err, domain.ErrNotFound) {
			w.logger.Error().Err(err).Str("job_id", job.ID).Msg("worker: generation fail update failed")
		}
	}
	w.logger.Error().Err(cause).Str("job_id", job.ID).Int("attempts", job.Attempts).Msg("worker: job failed")
}

func (w *Worker) retryLater(ctx context.Context, job *domain.Job, cause error) {
	delay := w.cfg.BackoffBase << (job.Attempts - 1)
	if err := w.store.Retry(ctx, job.ID, cause.Error(), time.Now().Add(delay)); err != nil {
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("worker: retry update failed")
		return
	}
	w.logger.Warn().Err(cause).Str("job_id", job.ID).Dur("delay", delay).Msg("worker: job requeued")
}

// requeueOnShutdown returns an interrupted job to the queue without counting
// the attempt against it, using a detached context since ctx is already done.
func (w *Worker) requeueOnShutdown(job *domain.Job) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := w.store.Retry(ctx, job.ID, "interrupted by shutdown", time.Now()); err != nil {
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("worker: shutdown requeue failed")
	}
}

func jobCost(job *domain.Job) int {
	if job.Kind == domain.JobRegenerateSection {
		return credits.SectionCost(job.Payload.Section)
	}
	return credits.CostFullPack
}

func describeJob(job *domain.Job) string {
	if job.Kind == domain.JobRegenerateSection {
		return "Section regeneration: " + string(job.Payload.Section)
	}
	return "Content generation"
}

func eventTypeFor(kind domain.JobKind) string {
	if kind == domain.JobRegenerateSection {
		return "section_regenerated"
	}
	return "generation_completed"
}

// isFatal reports errors that retrying cannot fix.
func isFatal(err error) bool {
	return errors.Is(err, domain.ErrContentBlocked) ||
		errors.Is(err, domain.ErrQuotaExceeded) ||
		errors.Is(err, domain.ErrInsufficientCredits) ||
		errors.Is(err, domain.ErrUnknownSection) ||
		errors.Is(err, domain.ErrNotFound)
}

// sleepCtx sleeps for d, returning false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
