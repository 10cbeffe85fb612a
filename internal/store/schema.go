package store

// SchemaVersion is stamped into new databases and checked on open.
// Bump it when SchemaSQL changes shape in a way old binaries can't read.
const SchemaVersion = "1"

// SchemaSQL defines the database structure
const SchemaSQL = `
-- ========================================================
-- 1. SYSTEM & CONFIG
-- ========================================================
CREATE TABLE IF NOT EXISTS config (
    key TEXT PRIMARY KEY,
    value TEXT
);

-- ========================================================
-- 2. STRINGS
-- ========================================================

-- Strings: one row per stored value, keyed by content hash.
-- Uniqueness of both id and value is enforced HERE, at the write,
-- so concurrent duplicate inserts can never both land.
CREATE TABLE IF NOT EXISTS strings (
    id TEXT PRIMARY KEY,                     -- hex SHA-256 of the raw value
    value TEXT NOT NULL UNIQUE,              -- the original text, exactly as submitted
    length INTEGER NOT NULL,                 -- Unicode code points
    is_palindrome INTEGER NOT NULL,          -- 0 or 1
    unique_characters INTEGER NOT NULL,
    word_count INTEGER NOT NULL,
    character_frequency_map TEXT NOT NULL,   -- JSON: {"a": 2, " ": 1, ...}
    created_at TEXT NOT NULL                 -- RFC3339 UTC
);

CREATE INDEX IF NOT EXISTS idx_strings_created ON strings(created_at);
CREATE INDEX IF NOT EXISTS idx_strings_length ON strings(length);
CREATE INDEX IF NOT EXISTS idx_strings_word_count ON strings(word_count);

-- ========================================================
-- 3. EXCHANGE RATES
-- ========================================================

-- Refreshed periodically by the background rates pipeline.
CREATE TABLE IF NOT EXISTS exchange_rates (
    code TEXT PRIMARY KEY,                   -- ISO currency code, e.g. "EUR"
    country TEXT,
    rate REAL NOT NULL,                      -- units per base currency
    updated_at TEXT NOT NULL
);
`
