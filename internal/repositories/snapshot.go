package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/models"
	"github.com/OPSAF/Anime/internal/sqlite"
	"github.com/jmoiron/sqlx"
	"log/slog"
	"time"
)

// SnapshotRepository stores the characters of successful scrapes so that a restarted server can serve them
// without fetching again.
type SnapshotRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewSnapshotRepository(db *sqlite.Database, logger *slog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		db:     db,
		logger: logger.With(slog.String("source", "SnapshotRepository")),
	}
}

type snapshotRow struct {
	ID        int64  `db:"id"`
	FetchedAt string `db:"fetched_at"`
	Count     int    `db:"count"`
}

type characterRow struct {
	SnapshotID int64  `db:"snapshot_id"`
	Position   int    `db:"position"`
	Name       string `db:"name"`
	Anime      string `db:"anime"`
	Hint       string `db:"hint"`
	URL        string `db:"url"`
	CaseFile   string `db:"case_file"`
}

// Save stores chars as the newest snapshot. Saving no characters is a no-op.
func (r *SnapshotRepository) Save(ctx context.Context, chars []models.Character, fetchedAt time.Time) error {
	if len(chars) == 0 {
		return nil
	}
	var (
		err  error
		tx   *sqlx.Tx
		res  sql.Result
		id   int64
		rows = make([]characterRow, 0, len(chars))
	)
	if tx, err = r.db.ReadWrite.BeginTxx(ctx, nil); err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "failed to rollback transaction", errors.SlogError(rbErr))
		}
	}()

	if res, err = tx.ExecContext(ctx, `INSERT INTO snapshots (fetched_at, count) VALUES (?, ?)`,
		fetchedAt.UTC().Format(time.RFC3339Nano), len(chars)); err != nil {
		return errors.Wrap(err, "insert snapshot")
	}
	if id, err = res.LastInsertId(); err != nil {
		return errors.Wrap(err, "snapshot id")
	}

	for i, c := range chars {
		var caseFile []byte
		if caseFile, err = json.Marshal(c.Case); err != nil {
			return errors.Wrap(err, "marshal case file", slog.String("name", c.Name))
		}
		rows = append(rows, characterRow{
			SnapshotID: id,
			Position:   i,
			Name:       c.Name,
			Anime:      c.Anime,
			Hint:       c.Hint,
			URL:        c.URL,
			CaseFile:   string(caseFile),
		})
	}
	if _, err = tx.NamedExecContext(ctx, `INSERT INTO snapshot_characters
    (snapshot_id, position, name, anime, hint, url, case_file)
VALUES (:snapshot_id, :position, :name, :anime, :hint, :url, :case_file)`, rows); err != nil {
		return errors.Wrap(err, "insert snapshot characters", slog.Int64("snapshot_id", id))
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	r.logger.LogAttrs(ctx, slog.LevelDebug, "saved snapshot", slog.Int64("id", id), slog.Int("count", len(chars)))
	return nil
}

// Latest returns the characters of the newest snapshot. It returns no characters and the zero time when nothing
// has been saved yet.
func (r *SnapshotRepository) Latest(ctx context.Context) ([]models.Character, time.Time, error) {
	var (
		err       error
		snapshot  snapshotRow
		rows      []characterRow
		fetchedAt time.Time
	)
	err = r.db.ReadOnly.GetContext(ctx, &snapshot,
		`SELECT id, fetched_at, count FROM snapshots ORDER BY id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, errors.Wrap(err, "select latest snapshot")
	}
	if fetchedAt, err = time.Parse(time.RFC3339Nano, snapshot.FetchedAt); err != nil {
		return nil, time.Time{}, errors.Wrap(err, "parse fetched_at", slog.String("fetched_at", snapshot.FetchedAt))
	}

	if err = r.db.ReadOnly.SelectContext(ctx, &rows, `SELECT snapshot_id, position, name, anime, hint, url, case_file
FROM snapshot_characters
WHERE snapshot_id = ?
ORDER BY position`, snapshot.ID); err != nil {
		return nil, time.Time{}, errors.Wrap(err, "select snapshot characters", slog.Int64("snapshot_id", snapshot.ID))
	}

	chars := make([]models.Character, 0, len(rows))
	for _, row := range rows {
		c := models.Character{
			Name:   row.Name,
			Anime:  row.Anime,
			Hint:   row.Hint,
			URL:    row.URL,
			Source: models.ProvenanceScraped,
		}
		if err = json.Unmarshal([]byte(row.CaseFile), &c.Case); err != nil {
			return nil, time.Time{}, errors.Wrap(err, "unmarshal case file", slog.String("name", row.Name))
		}
		chars = append(chars, c)
	}
	return chars, fetchedAt, nil
}
