package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Column is one row of PRAGMA table_info.
type Column struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// TableInfo summarises a user table for diagnostics.
type TableInfo struct {
	Name    string
	Columns []Column
	Rows    int64
}

// Inspect lists every user table with its columns and row count.
// sqlite_* internal tables are skipped.
func Inspect(ctx context.Context, db *sql.DB) ([]TableInfo, error) {
	names, err := tableNames(ctx, db)
	if err != nil {
		return nil, err
	}

	out := make([]TableInfo, 0, len(names))
	for _, name := range names {
		cols, colErr := tableColumns(ctx, db, name)
		if colErr != nil {
			return nil, colErr
		}
		var count int64
		// name comes from sqlite_master, quoting guards odd identifiers.
		q := fmt.Sprintf(`SELECT COUNT(*) FROM %q`, name)
		if scanErr := db.QueryRowContext(ctx, q).Scan(&count); scanErr != nil {
			return nil, fmt.Errorf("sqlite.Inspect: count %s: %w", name, scanErr)
		}
		out = append(out, TableInfo{Name: name, Columns: cols, Rows: count})
	}
	return out, nil
}

func tableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Inspect: list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if strings.HasPrefix(name, "sqlite_") {
			continue
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func tableColumns(ctx context.Context, db *sql.DB, table string) ([]Column, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%q)`, table))
	if err != nil {
		return nil, fmt.Errorf("sqlite.Inspect: table_info %s: %w", table, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var (
			cid       int
			col       Column
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &dfltValue, &pk); err != nil {
			return nil, err
		}
		col.NotNull = notNull == 1
		col.PrimaryKey = pk > 0
		cols = append(cols, col)
	}
	return cols, rows.Err()
}
