package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/GonzoDMX/string-anywhere/internal/analyzer"
	"github.com/GonzoDMX/string-anywhere/internal/filter"
)

// StringRecord is a stored value plus everything derived from it.
// Records are immutable: created on first insert, gone on delete,
// never updated.
type StringRecord struct {
	ID         string
	Value      string
	Properties analyzer.Properties
	CreatedAt  time.Time
}

// Store wraps the SQLite handle for all persistence operations.
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// Open opens (or creates) the database at path with WAL mode, foreign
// keys and a busy timeout, applies the schema, and stamps/verifies the
// schema version. If logger is nil the store operates silently.
func Open(path string, logger *zap.SugaredLogger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	logger.Debugw("Opening database", "path", path)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	// WAL lets readers proceed while a writer is active
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "failed to apply %q", pragma)
		}
	}

	s := &Store{db: db, log: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Infow("Database ready", "path", path, "schema_version", SchemaVersion)
	return s, nil
}

// OpenDB wraps an existing handle without running migrations.
// Used by tests that inject a mocked or pre-built database.
func OpenDB(db *sql.DB, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{db: db, log: logger}
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate applies the schema and stamps a fresh database with its
// version and creation time. An existing database with a different
// schema version is refused rather than silently misread.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(SchemaSQL); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}

	var stamped string
	err := s.db.QueryRow(`SELECT value FROM config WHERE key = 'schema_version'`).Scan(&stamped)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.Exec(`
			INSERT INTO config (key, value) VALUES
			('schema_version', ?),
			('created_at', ?)
		`, SchemaVersion, time.Now().UTC().Format(time.RFC3339))
		return errors.Wrap(err, "failed to stamp config")
	case err != nil:
		return errors.Wrap(err, "failed to read schema version")
	case stamped != SchemaVersion:
		return errors.Newf("database schema version %s is not supported (want %s)", stamped, SchemaVersion)
	}
	return nil
}

// Insert computes properties for value and persists a new record.
// Returns ErrConflict if a record with the same id or value already
// exists. There is no pre-check: the UNIQUE constraints decide at the
// write, so of two concurrent inserts of the same value exactly one
// wins.
func (s *Store) Insert(value string) (StringRecord, error) {
	props := analyzer.Compute(value)
	createdAt := time.Now().UTC()

	freqJSON, err := json.Marshal(props.CharacterFrequencyMap)
	if err != nil {
		return StringRecord{}, errors.Wrap(err, "failed to encode frequency map")
	}

	_, err = s.db.Exec(`
		INSERT INTO strings (id, value, length, is_palindrome, unique_characters,
		                     word_count, character_frequency_map, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, props.ID, value, props.Length, boolToInt(props.IsPalindrome),
		props.UniqueCharacters, props.WordCount, string(freqJSON),
		createdAt.Format(time.RFC3339))
	if err != nil {
		if isConstraintViolation(err) {
			return StringRecord{}, errors.Wrapf(ErrConflict, "value with id %s", props.ID)
		}
		return StringRecord{}, errors.Wrap(err, "failed to insert string")
	}

	s.log.Debugw("Stored string", "id", props.ID, "length", props.Length)

	return StringRecord{
		ID:         props.ID,
		Value:      value,
		Properties: props,
		CreatedAt:  createdAt,
	}, nil
}

const selectColumns = `id, value, length, is_palindrome, unique_characters,
                       word_count, character_frequency_map, created_at`

// GetByValue returns the record for an exact value, or ErrNotFound.
func (s *Store) GetByValue(value string) (StringRecord, error) {
	row := s.db.QueryRow(`SELECT `+selectColumns+` FROM strings WHERE value = ?`, value)
	return s.scanRecord(row)
}

// GetByID returns the record for a content hash, or ErrNotFound.
func (s *Store) GetByID(id string) (StringRecord, error) {
	row := s.db.QueryRow(`SELECT `+selectColumns+` FROM strings WHERE id = ?`, id)
	return s.scanRecord(row)
}

// DeleteByValue removes the record for value. A miss is ErrNotFound,
// including the second delete of the same value — never a silent no-op.
func (s *Store) DeleteByValue(value string) error {
	return s.deleteWhere(`DELETE FROM strings WHERE value = ?`, value)
}

// DeleteByID removes the record for id, with the same miss semantics.
func (s *Store) DeleteByID(id string) error {
	return s.deleteWhere(`DELETE FROM strings WHERE id = ?`, id)
}

func (s *Store) deleteWhere(query string, arg string) error {
	res, err := s.db.Exec(query, arg)
	if err != nil {
		return errors.Wrap(err, "failed to delete string")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read rows affected")
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFiltered returns all records matching the filters, newest first.
// SQL narrows on the property columns, then every row passes through
// filter.Match so this path and the in-memory predicate can never
// drift apart (contains_character in particular is matched in Go,
// where case folding is Unicode-aware).
func (s *Store) ListFiltered(f filter.Filters) ([]StringRecord, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	query := `SELECT ` + selectColumns + ` FROM strings`
	var clauses []string
	var args []interface{}

	if f.IsPalindrome != nil {
		clauses = append(clauses, "is_palindrome = ?")
		args = append(args, boolToInt(*f.IsPalindrome))
	}
	if f.MinLength != nil {
		clauses = append(clauses, "length >= ?")
		args = append(args, *f.MinLength)
	}
	if f.MaxLength != nil {
		clauses = append(clauses, "length <= ?")
		args = append(args, *f.MaxLength)
	}
	if f.WordCount != nil {
		clauses = append(clauses, "word_count = ?")
		args = append(args, *f.WordCount)
	}

	for i, c := range clauses {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list strings")
	}
	defer rows.Close()

	records := []StringRecord{}
	for rows.Next() {
		rec, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		if f.Match(rec.Value, rec.Properties) {
			records = append(records, rec)
		}
	}
	return records, errors.Wrap(rows.Err(), "failed while scanning strings")
}

// Count returns the number of stored strings.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM strings`).Scan(&n)
	return n, errors.Wrap(err, "failed to count strings")
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func (s *Store) scanRecord(row *sql.Row) (StringRecord, error) {
	rec, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return StringRecord{}, ErrNotFound
	}
	return rec, err
}

func scanRow(sc scanner) (StringRecord, error) {
	var rec StringRecord
	var isPalindrome int
	var freqJSON, createdAt string

	err := sc.Scan(&rec.ID, &rec.Value, &rec.Properties.Length, &isPalindrome,
		&rec.Properties.UniqueCharacters, &rec.Properties.WordCount,
		&freqJSON, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StringRecord{}, err
		}
		return StringRecord{}, errors.Wrap(err, "failed to scan string row")
	}

	rec.Properties.ID = rec.ID
	rec.Properties.IsPalindrome = isPalindrome != 0

	// Tolerant read: malformed frequency data degrades to an empty map
	// instead of failing the whole row.
	freq := make(map[string]int)
	if err := json.Unmarshal([]byte(freqJSON), &freq); err != nil {
		freq = make(map[string]int)
	}
	rec.Properties.CharacterFrequencyMap = freq

	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = ts
	}
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
