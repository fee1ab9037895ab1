package main

import (
	"context"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/repositories"
	"github.com/OPSAF/Anime/internal/sqlite"
	"github.com/OPSAF/Anime/internal/testhelpers"
	"log/slog"
	"os"
	"slices"
	"time"
)

// requiredTables must exist after the schema has been applied to the database.
var requiredTables = []string{"sessions", "snapshot_characters", "snapshots"}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err       error
		start     = time.Now()
		ctx       context.Context
		sqliteURL string
		ok        bool
		cancel    context.CancelFunc
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if sqliteURL, ok = os.LookupEnv("ANIME_SQLITE_URL"); !ok {
		logger.LogAttrs(ctx, slog.LevelError, "ANIME_SQLITE_URL not set")
		os.Exit(1)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, sqliteURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating database",
			slog.String("url", sqliteURL), errors.SlogError(err))
		os.Exit(1)
	}

	tables, err := db.Tables(ctx)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error listing tables", errors.SlogError(err))
		os.Exit(1)
	}
	for _, table := range requiredTables {
		if !slices.Contains(tables, table) {
			logger.LogAttrs(ctx, slog.LevelError, "table missing after migration", slog.String("table", table))
			os.Exit(1)
		}
	}

	// An existing snapshot must still be readable with the current schema.
	chars, fetchedAt, err := repositories.NewSnapshotRepository(db, logger).Latest(ctx)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error reading snapshot", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "snapshot", slog.Int("count", len(chars)), slog.Time("fetched_at", fetchedAt))

	if err = db.Close(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error closing database", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	os.Exit(0)
}
