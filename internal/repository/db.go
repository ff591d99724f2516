package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/mattgrange/winescout/internal/common"
)

// Open opens (or creates) the SQLite run store and applies the schema.
// An empty path opens a shared in-memory database, useful for tests and
// one-off runs.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", common.ErrDatabase, err)
	}
	// modernc sqlite is single-writer; one connection avoids lock churn.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping sqlite: %v", common.ErrDatabase, err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "migrate")
	}

	logger.Info("repository.open", "dsn", dsn)
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS enrichment_run (
	id          TEXT PRIMARY KEY,
	source_path TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	row_count   INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS enriched_wine (
	run_id          TEXT NOT NULL REFERENCES enrichment_run(id),
	position        INTEGER NOT NULL,
	wine_id         TEXT,
	producer        TEXT,
	name            TEXT,
	type            TEXT,
	main_type       TEXT,
	region          TEXT,
	country         TEXT,
	vintage         TEXT,
	menu_price      TEXT,
	size            TEXT,
	matched_name    TEXT,
	detail_link     TEXT,
	matched_country TEXT,
	matched_region  TEXT,
	rating          TEXT,
	num_ratings     TEXT,
	market_price    TEXT,
	price_ratio     TEXT,
	food_pairings   TEXT,
	PRIMARY KEY (run_id, position)
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return err
	}
	return nil
}
