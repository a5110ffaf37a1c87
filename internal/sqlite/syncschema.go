package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/myrjola/detectivequest/internal/random"
	"log/slog"
	"strings"
)

// migrateTo ensures that the db schema matches the target schema.
//
// We employ a very simple declarative schema migration that:
//
// 1. Drops indexes, triggers and views that were removed or changed,
// 2. Deletes deleted tables,
// 3. Creates new tables,
// 4. Migrates changed tables using 12-step schema migration https://www.sqlite.org/lang_altertable.html#otheralter,
// 5. Creates the missing indexes, triggers and views.
//
// Inspired by https://david.rothlis.net/declarative-schema-migration-for-sqlite/
func (db *Database) migrateTo(ctx context.Context, schema string) (err error) {
	// Foreign key enforcement cannot be toggled inside a transaction. The read-write pool has a single connection so
	// the pragma applies to the transaction below.
	if _, err = db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return errors.Wrap(err, "disable foreign key validation")
	}
	defer func() {
		if _, fkErr := db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = ON"); fkErr != nil {
			err = errors.Join(err, errors.Wrap(fkErr, "re-enable foreign key validation"))
		}
	}()

	// Create schema against a temporary database so that we know what has changed.
	var (
		randomID     string
		dbNameLength uint = 20
		target       *sqlx.DB
	)
	if randomID, err = random.Letters(dbNameLength); err != nil {
		return errors.Wrap(err, "generate random ID")
	}
	targetDataSourceName := fmt.Sprintf("file:%s?mode=memory&cache=shared", randomID)
	if target, err = sqlx.Open("sqlite3", targetDataSourceName); err != nil {
		return errors.Wrap(err, "open schema target database")
	}
	defer func() {
		if closeErr := target.Close(); closeErr != nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to close schema target database",
				errors.SlogError(errors.Wrap(closeErr, "close schema target database")))
		}
	}()
	// Keep the in-memory database alive until it has been attached.
	target.SetMaxIdleConns(1)
	if _, err = target.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "create schema target database")
	}

	if _, err = db.ReadWrite.ExecContext(ctx, "ATTACH DATABASE ? AS schemaTarget", targetDataSourceName); err != nil {
		return errors.Wrap(err, "attach schema target database")
	}
	defer func() {
		if _, detachErr := db.ReadWrite.ExecContext(ctx, "DETACH DATABASE schemaTarget"); detachErr != nil {
			err = errors.Join(err, errors.Wrap(detachErr, "detach schema target database"))
		}
	}()

	var tx *sqlx.Tx
	if tx, err = db.ReadWrite.BeginTxx(ctx, nil); err != nil {
		return errors.Wrap(err, "start transaction")
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to rollback transaction",
				errors.SlogError(rollbackErr))
		}
	}()

	if err = db.dropStaleObjects(ctx, tx); err != nil {
		return errors.Wrap(err, "drop stale objects")
	}
	if err = db.migrateTables(ctx, tx); err != nil {
		return errors.Wrap(err, "migrate tables")
	}
	if err = db.createMissingObjects(ctx, tx); err != nil {
		return errors.Wrap(err, "create missing objects")
	}

	var violations []string
	if err = tx.SelectContext(ctx, &violations, `SELECT "table" FROM pragma_foreign_key_check`); err != nil {
		return errors.Wrap(err, "foreign key check")
	}
	if len(violations) > 0 {
		return errors.New("foreign key violations", slog.Any("tables", violations))
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// migrateTables ensures table schema is synchronized between databases.
func (db *Database) migrateTables(ctx context.Context, tx *sqlx.Tx) error {
	var (
		deletedTables []string
		newTableSQLs  []string
		changedTables []changedTable
		err           error
	)

	if err = tx.SelectContext(ctx, &deletedTables, `SELECT current.name
FROM main.sqlite_schema AS current
         LEFT JOIN schemaTarget.sqlite_schema AS target ON current.name = target.name AND current.type = target.type
WHERE current.type = 'table' AND target.name IS NULL AND current.name NOT LIKE 'sqlite_%'`); err != nil {
		return errors.Wrap(err, "query deleted tables")
	}
	for _, table := range deletedTables {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping table", slog.String("table", table))
		if _, err = tx.ExecContext(ctx, "DROP TABLE "+quote(table)); err != nil {
			return errors.Wrap(err, "drop table", slog.String("table", table))
		}
	}

	if err = tx.SelectContext(ctx, &newTableSQLs, `SELECT target.sql
FROM schemaTarget.sqlite_schema AS target
         LEFT JOIN main.sqlite_schema AS current ON current.name = target.name AND current.type = target.type
WHERE target.type = 'table' AND current.name IS NULL AND target.name NOT LIKE 'sqlite_%'`); err != nil {
		return errors.Wrap(err, "query new tables")
	}
	for _, newTableSQL := range newTableSQLs {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "creating table", slog.String("query", newTableSQL))
		if _, err = tx.ExecContext(ctx, newTableSQL); err != nil {
			return errors.Wrap(err, "create table")
		}
	}

	if err = tx.SelectContext(ctx, &changedTables, `SELECT current.name AS name,
       current.sql  AS current_sql,
       target.sql   AS new_sql
FROM main.sqlite_schema AS current
         JOIN schemaTarget.sqlite_schema AS target ON current.name = target.name AND current.type = target.type
WHERE current.type = 'table' AND current.name NOT LIKE 'sqlite_%' AND current.sql <> target.sql`); err != nil {
		return errors.Wrap(err, "query changed tables")
	}
	for _, table := range changedTables {
		if err = db.rebuildTable(ctx, tx, table); err != nil {
			return errors.Wrap(err, "rebuild table", slog.String("table", table.Name))
		}
	}
	return nil
}

type changedTable struct {
	Name       string `db:"name"`
	CurrentSQL string `db:"current_sql"`
	NewSQL     string `db:"new_sql"`
}

// rebuildTable creates the new table definition under a temporary name, copies the common columns and swaps the
// tables.
func (db *Database) rebuildTable(ctx context.Context, tx *sqlx.Tx, table changedTable) error {
	db.logger.LogAttrs(ctx, slog.LevelInfo, "migrating table",
		slog.String("table", table.Name),
		slog.String("current_sql", table.CurrentSQL),
		slog.String("new_sql", table.NewSQL))

	var (
		err           error
		commonColumns []string
	)
	tempName := table.Name + "_migration_temp"
	tempNameSQL := strings.Replace(table.NewSQL, table.Name, tempName, 1)
	if _, err = tx.ExecContext(ctx, tempNameSQL); err != nil {
		return errors.Wrap(err, "create new table to temporary name", slog.String("query", tempNameSQL))
	}

	// Column names are quoted because some may be SQLite keywords.
	if err = tx.SelectContext(ctx, &commonColumns, `SELECT '"' || target.name || '"'
FROM pragma_table_info(?) AS current
         JOIN pragma_table_info(?, 'schemaTarget') AS target ON target.name = current.name`,
		table.Name, table.Name); err != nil {
		return errors.Wrap(err, "query common columns")
	}
	if len(commonColumns) > 0 {
		common := strings.Join(commonColumns, ", ")
		copySQL := fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s", //nolint:gosec // we trust the schema.
			quote(tempName), common, common, quote(table.Name))
		if _, err = tx.ExecContext(ctx, copySQL); err != nil {
			return errors.Wrap(err, "copy data", slog.String("query", copySQL))
		}
	}

	if _, err = tx.ExecContext(ctx, "DROP TABLE "+quote(table.Name)); err != nil {
		return errors.Wrap(err, "drop old table")
	}
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
		quote(tempName), quote(table.Name))); err != nil {
		return errors.Wrap(err, "rename new table")
	}
	return nil
}

type schemaObject struct {
	Type string `db:"type"`
	Name string `db:"name"`
}

// dropStaleObjects drops the indexes, triggers and views that are gone from the target schema or defined differently.
func (db *Database) dropStaleObjects(ctx context.Context, tx *sqlx.Tx) error {
	var stale []schemaObject
	if err := tx.SelectContext(ctx, &stale, `SELECT current.type AS type, current.name AS name
FROM main.sqlite_schema AS current
         LEFT JOIN schemaTarget.sqlite_schema AS target ON current.name = target.name AND current.type = target.type
WHERE current.type IN ('index', 'trigger', 'view')
  AND current.sql IS NOT NULL
  AND (target.name IS NULL OR target.sql IS NOT current.sql)`); err != nil {
		return errors.Wrap(err, "query stale objects")
	}
	for _, obj := range stale {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping schema object",
			slog.String("type", obj.Type), slog.String("name", obj.Name))
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP %s IF EXISTS %s",
			strings.ToUpper(obj.Type), quote(obj.Name))); err != nil {
			return errors.Wrap(err, "drop schema object", slog.String("name", obj.Name))
		}
	}
	return nil
}

// createMissingObjects creates the indexes, triggers and views of the target schema that do not exist yet.
func (db *Database) createMissingObjects(ctx context.Context, tx *sqlx.Tx) error {
	var missing []string
	if err := tx.SelectContext(ctx, &missing, `SELECT target.sql
FROM schemaTarget.sqlite_schema AS target
         LEFT JOIN main.sqlite_schema AS current ON current.name = target.name AND current.type = target.type
WHERE target.type IN ('index', 'trigger', 'view')
  AND target.sql IS NOT NULL
  AND current.name IS NULL`); err != nil {
		return errors.Wrap(err, "query missing objects")
	}
	for _, objectSQL := range missing {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "creating schema object", slog.String("query", objectSQL))
		if _, err := tx.ExecContext(ctx, objectSQL); err != nil {
			return errors.Wrap(err, "create schema object", slog.String("query", objectSQL))
		}
	}
	return nil
}

func quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}
