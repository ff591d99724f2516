package enrich

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mattgrange/winescout/constants"
	"github.com/mattgrange/winescout/internal/entity"
)

// Lookup is the market-side dependency: nil means no usable match.
type Lookup interface {
	Lookup(ctx context.Context, rec entity.WineRecord) *entity.MarketMatch
}

// Config holds the batch pacing and backoff knobs.
type Config struct {
	PacingDelay  time.Duration // minimum delay between lookups
	MaxFailures  int           // consecutive misses before cooling down
	CooldownWait time.Duration // pause once MaxFailures is reached
}

// BatchRunner applies lookups over a record table strictly in order, one at a
// time. It owns the consecutive-failure counter; construct a fresh runner per
// batch so backoff state never leaks across runs.
type BatchRunner struct {
	lookup   Lookup
	cfg      Config
	logger   *slog.Logger
	sleep    func(time.Duration)
	failures int
}

func NewBatchRunner(lookup Lookup, cfg Config, logger *slog.Logger) *BatchRunner {
	if cfg.PacingDelay <= 0 {
		cfg.PacingDelay = 510 * time.Millisecond
	}
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.CooldownWait <= 0 {
		cfg.CooldownWait = 3 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchRunner{
		lookup: lookup,
		cfg:    cfg,
		logger: logger,
		sleep:  time.Sleep,
	}
}

// WithSleep swaps the wait function; tests use this to avoid real delays.
func (r *BatchRunner) WithSleep(sleep func(time.Duration)) *BatchRunner {
	r.sleep = sleep
	return r
}

// Enrich produces exactly one EnrichedRecord per input, in input order. A
// failed lookup fills its row with "N/A" markers instead of dropping it.
// After MaxFailures consecutive misses the runner pauses for CooldownWait,
// since a run of misses usually means the source is rate-limiting us, then
// starts counting again. Every lookup is followed by the pacing delay.
func (r *BatchRunner) Enrich(ctx context.Context, records []entity.WineRecord) []entity.EnrichedRecord {
	runID := uuid.New().String()
	start := time.Now()
	r.failures = 0

	r.logger.Info("enrich.batch.start", "run_id", runID, "rows", len(records))

	enriched := make([]entity.EnrichedRecord, 0, len(records))
	found := 0
	for i, rec := range records {
		match := r.lookup.Lookup(ctx, rec)
		if match != nil {
			found++
			r.failures = 0
		} else {
			r.failures++
			match = notFoundMatch()
		}
		enriched = append(enriched, entity.EnrichedRecord{WineRecord: rec, Match: *match})

		r.logger.Info("enrich.batch.progress",
			"run_id", runID,
			"row", i+1,
			"of", len(records),
			"found", found,
			"missed", i+1-found,
		)

		if r.failures >= r.cfg.MaxFailures {
			r.logger.Warn("enrich.batch.cooldown",
				"run_id", runID,
				"consecutive_failures", r.failures,
				"wait", r.cfg.CooldownWait.String(),
			)
			r.sleep(r.cfg.CooldownWait)
			r.failures = 0
		}

		// Stay under the source's informal rate limit.
		r.sleep(r.cfg.PacingDelay)
	}

	r.logger.Info("enrich.batch.ok",
		"run_id", runID,
		"rows", len(enriched),
		"found", found,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return enriched
}

// notFoundMatch fills every output column with the absence marker so the
// enriched table keeps its shape regardless of how many lookups missed.
func notFoundMatch() *entity.MarketMatch {
	return &entity.MarketMatch{
		MatchedName:    constants.NotAvailable,
		DetailLink:     constants.NotAvailable,
		MatchedCountry: constants.NotAvailable,
		MatchedRegion:  constants.NotAvailable,
		Rating:         constants.NotAvailable,
		NumRatings:     constants.NotAvailable,
		MarketPrice:    constants.NotAvailable,
		PriceRatio:     constants.NotAvailable,
		FoodPairings:   nil,
	}
}
