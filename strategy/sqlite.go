package strategy

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// The sqlite fixture is a single kv(k, v) table: a fixed binary layout
// that skips textual parsing entirely on load.

func loadSQLite(path string) (Dataset, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT k, v FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("query kv: %w", err)
	}
	defer rows.Close()

	ds := make(Dataset)

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan kv row: %w", err)
		}

		ds[k] = v
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate kv rows: %w", err)
	}

	return ds, nil
}

func encodeSQLite(path string, ds Dataset) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(
		`CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT NOT NULL)`,
	); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO kv (k, v) VALUES (?, ?)`)
	if err != nil {
		tx.Rollback()

		return fmt.Errorf("prepare insert: %w", err)
	}

	for k, v := range ds {
		if _, err := stmt.Exec(k, v); err != nil {
			stmt.Close()
			tx.Rollback()

			return fmt.Errorf("insert %q: %w", k, err)
		}
	}

	stmt.Close()

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}
