package sqlite

import (
	"context"
	"fmt"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/random"
	"github.com/jmoiron/sqlx"
	"log/slog"
	"strings"
	"time"

	_ "embed"
	_ "github.com/mattn/go-sqlite3" // Enable sqlite3 driver
)

//go:embed schema.sql
var schemaDefinition string

type Database struct {
	ReadWrite *sqlx.DB
	ReadOnly  *sqlx.DB
	logger    *slog.Logger
}

// NewDatabase connects to the database and migrates it to schema.sql.
//
// It establishes two connection pools, one for read/write operations and one for read-only operations.
// See https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995.
//
// The url parameter is the path to the SQLite database file or ":memory:" for an in-memory database.
func NewDatabase(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	db, err := connect(ctx, url, logger)
	if err != nil {
		return nil, err
	}
	if err = db.migrate(ctx, schemaDefinition); err != nil {
		return nil, errors.Join(errors.Wrap(err, "migrate"), db.Close())
	}
	go db.StartDatabaseOptimizer(ctx)

	return db, nil
}

func connect(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	var (
		err         error
		readWriteDB *sqlx.DB
		readDB      *sqlx.DB
	)

	// In-memory databases need shared cache so that both pools see the same data. Every database gets its own
	// random name so that parallel tests stay isolated. See https://www.sqlite.org/inmemorydb.html.
	inMemoryConfig := ""
	if strings.Contains(url, ":memory:") {
		var (
			randomID     string
			dbNameLength uint = 20
		)
		if randomID, err = random.Letters(dbNameLength); err != nil {
			return nil, errors.Wrap(err, "generate random ID")
		}
		url = randomID
		inMemoryConfig = "mode=memory&cache=shared"
	}
	commonConfig := strings.Join([]string{
		// Write-ahead logging enables concurrent readers.
		"_journal_mode=wal",
		// Avoids SQLITE_BUSY errors when database is under load.
		"_busy_timeout=5000",
		"_synchronous=normal",
		"_foreign_keys=on",
		"_temp_store=memory",
		// See https://www.sqlite.org/pragma.html#pragma_optimize.
		"_optimize=0x10002",
	}, "&")

	// Options prefixed with '_' are pragmas, see https://www.sqlite.org/pragma.html.
	// The rest are URI parameters, see https://www.sqlite.org/uri.html.
	readWriteMode, readMode := "mode=rwc", "mode=ro"
	if inMemoryConfig != "" {
		readWriteMode, readMode = inMemoryConfig, inMemoryConfig
	}
	readWriteConfig := fmt.Sprintf("file:%s?%s&_txlock=immediate&%s", url, readWriteMode, commonConfig)
	readConfig := fmt.Sprintf("file:%s?%s&_txlock=deferred&_query_only=true&%s", url, readMode, commonConfig)

	if readWriteDB, err = sqlx.ConnectContext(ctx, "sqlite3", readWriteConfig); err != nil {
		return nil, errors.Wrap(err, "open read-write database")
	}
	readWriteDB.SetMaxOpenConns(1)
	readWriteDB.SetMaxIdleConns(1)
	readWriteDB.SetConnMaxLifetime(time.Hour)
	readWriteDB.SetConnMaxIdleTime(time.Hour)

	if readDB, err = sqlx.ConnectContext(ctx, "sqlite3", readConfig); err != nil {
		_ = readWriteDB.Close()
		return nil, errors.Wrap(err, "open read database")
	}
	maxReadConns := 10
	readDB.SetMaxOpenConns(maxReadConns)
	readDB.SetMaxIdleConns(maxReadConns)
	readDB.SetConnMaxLifetime(time.Hour)
	readDB.SetConnMaxIdleTime(time.Hour)

	return &Database{
		ReadWrite: readWriteDB,
		ReadOnly:  readDB,
		logger:    logger.With(slog.String("source", "Database")),
	}, nil
}

// Close closes both connection pools.
func (db *Database) Close() error {
	return errors.Join(
		errors.Wrap(db.ReadOnly.Close(), "close read database"),
		errors.Wrap(db.ReadWrite.Close(), "close read-write database"),
	)
}

// Tables lists the user tables, it is used to verify the schema after deployments.
func (db *Database) Tables(ctx context.Context) ([]string, error) {
	var tables []string
	if err := db.ReadOnly.SelectContext(ctx, &tables, `SELECT name
FROM sqlite_schema
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "select tables")
	}
	return tables, nil
}
