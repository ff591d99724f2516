package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mattgrange/winescout/internal/entity"
	"github.com/mattgrange/winescout/internal/export"
)

// RunSummary describes one persisted enrichment run.
type RunSummary struct {
	ID         uuid.UUID
	SourcePath string
	StartedAt  time.Time
	FinishedAt time.Time
	RowCount   int
}

// RunRepository persists enrichment runs and their rows.
type RunRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRunRepository(db *sql.DB, logger *slog.Logger) *RunRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &RunRepository{db: db, logger: logger}
}

// SaveRun stores a finished batch atomically: the run header plus one row per
// enriched record, positions preserved.
func (r *RunRepository) SaveRun(ctx context.Context, sourcePath string, startedAt time.Time, records []entity.EnrichedRecord) (uuid.UUID, error) {
	runID := uuid.New()
	finishedAt := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO enrichment_run (id, source_path, started_at, finished_at, row_count)
		 VALUES (?, ?, ?, ?, ?)`,
		runID.String(), sourcePath,
		startedAt.UTC().Format(time.RFC3339), finishedAt.Format(time.RFC3339),
		len(records),
	); err != nil {
		return uuid.Nil, fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO enriched_wine (
			run_id, position, wine_id, producer, name, type, main_type,
			region, country, vintage, menu_price, size,
			matched_name, detail_link, matched_country, matched_region,
			rating, num_ratings, market_price, price_ratio, food_pairings
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			runID.String(), i,
			rec.ID, rec.Producer, rec.Name, rec.Type, rec.MainType,
			rec.Region, rec.Country, rec.Vintage, rec.Price, rec.Size,
			rec.Match.MatchedName, rec.Match.DetailLink,
			rec.Match.MatchedCountry, rec.Match.MatchedRegion,
			rec.Match.Rating, rec.Match.NumRatings,
			rec.Match.MarketPrice, rec.Match.PriceRatio,
			export.PairingsCell(rec.Match),
		); err != nil {
			return uuid.Nil, fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}

	r.logger.Info("repository.run_saved",
		"run_id", runID.String(),
		"source", sourcePath,
		"rows", len(records),
	)
	return runID, nil
}

// ListRuns returns saved runs, newest first.
func (r *RunRepository) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source_path, started_at, finished_at, row_count
		 FROM enrichment_run ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			id, source, started, finished string
			count                         int
		)
		if err := rows.Scan(&id, &source, &started, &finished, &count); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		summary := RunSummary{SourcePath: source, RowCount: count}
		summary.ID, _ = uuid.Parse(id)
		summary.StartedAt, _ = time.Parse(time.RFC3339, started)
		summary.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, summary)
	}
	return out, rows.Err()
}
