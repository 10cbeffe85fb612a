package store

import (
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-sqlite3"
)

// Sentinel errors for the expected outcomes of valid input. Callers
// check these with errors.Is; anything else is an unexpected storage
// failure and propagates as-is.
var (
	// ErrConflict indicates a duplicate value or id on insert.
	ErrConflict = errors.New("value already exists")

	// ErrNotFound indicates no record matches the given value or id.
	ErrNotFound = errors.New("string not found")
)

// isConstraintViolation reports whether err is SQLite telling us a
// UNIQUE or PRIMARY KEY constraint fired on the write itself.
func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
