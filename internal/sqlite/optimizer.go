package sqlite

import (
	"context"
	"github.com/OPSAF/Anime/internal/errors"
	"log/slog"
	"time"
)

// optimizeInterval follows the advice for long-lived connections at https://www.sqlite.org/pragma.html#pragma_optimize.
const optimizeInterval = time.Hour

// StartDatabaseOptimizer runs PRAGMA optimize and removes superseded snapshots until ctx is done.
func (db *Database) StartDatabaseOptimizer(ctx context.Context) {
	ticker := time.NewTicker(optimizeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			db.optimize(ctx)
		}
	}
}

func (db *Database) optimize(ctx context.Context) {
	start := time.Now()
	if _, err := db.ReadWrite.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
		err = errors.Wrap(err, "optimize database")
		db.logger.LogAttrs(ctx, slog.LevelError, "failed to optimize database", errors.SlogError(err))
		return
	}
	res, err := db.ReadWrite.ExecContext(ctx, `DELETE FROM snapshots WHERE id < (SELECT MAX(id) FROM snapshots)`)
	if err != nil {
		err = errors.Wrap(err, "prune snapshots")
		db.logger.LogAttrs(ctx, slog.LevelError, "failed to prune snapshots", errors.SlogError(err))
		return
	}
	pruned, _ := res.RowsAffected()
	db.logger.LogAttrs(ctx, slog.LevelInfo, "optimized database",
		slog.Int64("pruned_snapshots", pruned), slog.Duration("duration", time.Since(start)))
}
