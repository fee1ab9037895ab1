package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/random"
	"github.com/jmoiron/sqlx"
	"log/slog"
	"strings"
)

// migrate brings the database in line with schema. The schema is created in a scratch in-memory database that is
// attached next to main, and the two sqlite_schema tables are compared:
//
//   - tables missing from schema are dropped and new tables are created,
//   - changed tables are rebuilt following https://www.sqlite.org/lang_altertable.html#otheralter, keeping the
//     columns both versions have,
//   - indexes and triggers are dropped and recreated when their SQL differs.
//
// SQLite stores CREATE statements without IF NOT EXISTS, so schema.sql can use it and still compare equal.
func (db *Database) migrate(ctx context.Context, schema string) (err error) {
	var (
		targetName   string
		dbNameLength uint = 20
	)
	if targetName, err = random.Letters(dbNameLength); err != nil {
		return errors.Wrap(err, "generate random ID")
	}
	targetDSN := fmt.Sprintf("file:%s?mode=memory&cache=shared", targetName)
	target, err := sql.Open("sqlite3", targetDSN)
	if err != nil {
		return errors.Wrap(err, "open schema target")
	}
	defer func() {
		err = errors.Join(err, errors.Wrap(target.Close(), "close schema target"))
	}()
	// The shared in-memory database lives as long as one of its connections.
	if err = target.PingContext(ctx); err != nil {
		return errors.Wrap(err, "connect schema target")
	}
	if strings.TrimSpace(schema) != "" {
		if _, err = target.ExecContext(ctx, schema); err != nil {
			return errors.Wrap(err, "create schema target")
		}
	}

	var conn *sqlx.Conn
	if conn, err = db.ReadWrite.Connx(ctx); err != nil {
		return errors.Wrap(err, "reserve connection")
	}
	defer func() {
		err = errors.Join(err, errors.Wrap(conn.Close(), "release connection"))
	}()

	// Foreign keys cannot be toggled inside a transaction.
	if _, err = conn.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return errors.Wrap(err, "disable foreign keys")
	}
	defer func() {
		_, fkErr := conn.ExecContext(context.WithoutCancel(ctx), "PRAGMA foreign_keys = ON")
		err = errors.Join(err, errors.Wrap(fkErr, "enable foreign keys"))
	}()

	if _, err = conn.ExecContext(ctx, "ATTACH DATABASE ? AS schema_target", targetDSN); err != nil {
		return errors.Wrap(err, "attach schema target")
	}
	defer func() {
		_, detachErr := conn.ExecContext(context.WithoutCancel(ctx), "DETACH DATABASE schema_target")
		err = errors.Join(err, errors.Wrap(detachErr, "detach schema target"))
	}()

	var tx *sqlx.Tx
	if tx, err = conn.BeginTxx(ctx, nil); err != nil {
		return errors.Wrap(err, "begin migration")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	m := migration{tx: tx, logger: db.logger}
	if err = m.syncTables(ctx); err != nil {
		return err
	}
	if err = m.syncIndexesAndTriggers(ctx); err != nil {
		return err
	}
	if err = m.checkForeignKeys(ctx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit migration")
	}

	level := slog.LevelDebug
	if m.changes > 0 {
		level = slog.LevelInfo
	}
	db.logger.LogAttrs(ctx, level, "database schema in sync", slog.Int("changes", m.changes))
	return nil
}

type migration struct {
	tx      *sqlx.Tx
	logger  *slog.Logger
	changes int
}

type changedTable struct {
	Name       string `db:"name"`
	CurrentSQL string `db:"current_sql"`
	TargetSQL  string `db:"target_sql"`
}

type schemaObject struct {
	Type string `db:"type"`
	Name string `db:"name"`
}

func (m *migration) exec(ctx context.Context, query string, attrs ...slog.Attr) error {
	attrs = append(attrs, slog.String("query", query))
	m.logger.LogAttrs(ctx, slog.LevelInfo, "migrating schema", attrs...)
	if _, err := m.tx.ExecContext(ctx, query); err != nil {
		return errors.Wrap(err, "execute migration", attrs...)
	}
	m.changes++
	return nil
}

func (m *migration) syncTables(ctx context.Context) error {
	var dropped []string
	if err := m.tx.SelectContext(ctx, &dropped, `SELECT c.name
FROM main.sqlite_schema AS c
         LEFT JOIN schema_target.sqlite_schema AS t ON t.type = c.type AND t.name = c.name
WHERE c.type = 'table' AND c.name NOT LIKE 'sqlite_%' AND t.name IS NULL`); err != nil {
		return errors.Wrap(err, "select dropped tables")
	}
	for _, name := range dropped {
		if err := m.exec(ctx, fmt.Sprintf(`DROP TABLE main."%s"`, name), slog.String("table", name)); err != nil {
			return err
		}
	}

	var created []string
	if err := m.tx.SelectContext(ctx, &created, `SELECT t.sql
FROM schema_target.sqlite_schema AS t
         LEFT JOIN main.sqlite_schema AS c ON c.type = t.type AND c.name = t.name
WHERE t.type = 'table' AND t.name NOT LIKE 'sqlite_%' AND c.name IS NULL`); err != nil {
		return errors.Wrap(err, "select new tables")
	}
	for _, query := range created {
		if err := m.exec(ctx, query); err != nil {
			return err
		}
	}

	var changed []changedTable
	if err := m.tx.SelectContext(ctx, &changed, `SELECT c.name, c.sql AS current_sql, t.sql AS target_sql
FROM main.sqlite_schema AS c
         JOIN schema_target.sqlite_schema AS t ON t.type = c.type AND t.name = c.name
WHERE c.type = 'table' AND c.name NOT LIKE 'sqlite_%' AND c.sql <> t.sql`); err != nil {
		return errors.Wrap(err, "select changed tables")
	}
	for _, table := range changed {
		if err := m.rebuild(ctx, table); err != nil {
			return err
		}
	}
	return nil
}

// rebuild replaces a table whose definition changed. Indexes and triggers go with the old table and are recreated
// by syncIndexesAndTriggers.
func (m *migration) rebuild(ctx context.Context, table changedTable) error {
	attr := slog.String("table", table.Name)
	tempName := table.Name + "_migration"

	if err := m.exec(ctx, strings.Replace(table.TargetSQL, table.Name, tempName, 1), attr); err != nil {
		return err
	}

	var columns []string
	if err := m.tx.SelectContext(ctx, &columns, `SELECT '"' || t.name || '"'
FROM pragma_table_info(?, 'main') AS c
         JOIN pragma_table_info(?, 'schema_target') AS t ON t.name = c.name`, table.Name, table.Name); err != nil {
		return errors.Wrap(err, "select common columns", attr)
	}
	if len(columns) > 0 {
		list := strings.Join(columns, ", ")
		//nolint:gosec // names come from sqlite_schema
		copySQL := fmt.Sprintf(`INSERT INTO main."%s" (%s) SELECT %s FROM main."%s"`, tempName, list, list, table.Name)
		if err := m.exec(ctx, copySQL, attr); err != nil {
			return err
		}
	}

	if err := m.exec(ctx, fmt.Sprintf(`DROP TABLE main."%s"`, table.Name), attr); err != nil {
		return err
	}
	return m.exec(ctx, fmt.Sprintf(`ALTER TABLE main."%s" RENAME TO "%s"`, tempName, table.Name), attr)
}

func (m *migration) syncIndexesAndTriggers(ctx context.Context) error {
	// Automatic indexes have no SQL and follow their table.
	var stale []schemaObject
	if err := m.tx.SelectContext(ctx, &stale, `SELECT c.type, c.name
FROM main.sqlite_schema AS c
         LEFT JOIN schema_target.sqlite_schema AS t ON t.type = c.type AND t.name = c.name
WHERE c.type IN ('index', 'trigger') AND c.sql IS NOT NULL AND (t.sql IS NULL OR t.sql <> c.sql)`); err != nil {
		return errors.Wrap(err, "select stale indexes and triggers")
	}
	for _, obj := range stale {
		query := fmt.Sprintf(`DROP %s main."%s"`, strings.ToUpper(obj.Type), obj.Name)
		if err := m.exec(ctx, query, slog.String(obj.Type, obj.Name)); err != nil {
			return err
		}
	}

	var missing []string
	if err := m.tx.SelectContext(ctx, &missing, `SELECT t.sql
FROM schema_target.sqlite_schema AS t
         LEFT JOIN main.sqlite_schema AS c ON c.type = t.type AND c.name = t.name
WHERE t.type IN ('index', 'trigger') AND t.sql IS NOT NULL AND (c.sql IS NULL OR c.sql <> t.sql)`); err != nil {
		return errors.Wrap(err, "select missing indexes and triggers")
	}
	for _, query := range missing {
		if err := m.exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func (m *migration) checkForeignKeys(ctx context.Context) error {
	rows, err := m.tx.QueryContext(ctx, "PRAGMA main.foreign_key_check")
	if err != nil {
		return errors.Wrap(err, "foreign key check")
	}
	defer func() {
		_ = rows.Close()
	}()
	if rows.Next() {
		var table string
		var rowID sql.NullInt64
		var parent string
		var fkID int
		if err = rows.Scan(&table, &rowID, &parent, &fkID); err != nil {
			return errors.Wrap(err, "scan foreign key violation")
		}
		return errors.New("foreign key violation after migration",
			slog.String("table", table), slog.String("parent", parent))
	}
	return errors.Wrap(rows.Err(), "foreign key check rows")
}
