//go:build !cgo

package snp

// If cgo is not enabled, we will use the modernc.org/sqlite non-cgo sqlite
// driver. It is slower than the sqlite3 cgo driver.

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite"
)

const whichSQLiteDriver = "sqlite"

// Imports are written in one transaction, so durability of each statement
// buys nothing.
func configureDB(db *sqlx.DB) error {
	_, err := db.DB.Exec(`
	PRAGMA journal_mode = WAL;
	PRAGMA synchronous = OFF;
	`)
	if err != nil {
		return fmt.Errorf("unable to set pragmas: %w", err)
	}

	return nil
}
