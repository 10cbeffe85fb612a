package filter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/GonzoDMX/string-anywhere/internal/analyzer"
)

// ==========================================
// FILTER ENGINE
// ==========================================

// ErrInvalid marks a filter set that failed validation. Callers check it
// with errors.Is to map the failure to a client error, whatever the
// filters' origin (query params or the NL parser).
var ErrInvalid = errors.New("invalid filters")

// Filters is the one structured filter representation shared by the
// structured-query and natural-language paths. All fields are optional;
// present fields combine conjunctively (AND).
type Filters struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// IsEmpty reports whether no filter field is set.
func (f Filters) IsEmpty() bool {
	return f.IsPalindrome == nil && f.MinLength == nil && f.MaxLength == nil &&
		f.WordCount == nil && f.ContainsCharacter == nil
}

// Validate applies the rules every filter set must pass before use,
// regardless of where it came from.
func (f Filters) Validate() error {
	if f.MinLength != nil && *f.MinLength < 0 {
		return errors.Wrap(ErrInvalid, "min_length must be >= 0")
	}
	if f.MaxLength != nil && *f.MaxLength < 0 {
		return errors.Wrap(ErrInvalid, "max_length must be >= 0")
	}
	if f.WordCount != nil && *f.WordCount < 0 {
		return errors.Wrap(ErrInvalid, "word_count must be >= 0")
	}
	if f.ContainsCharacter != nil && utf8.RuneCountInString(*f.ContainsCharacter) != 1 {
		return errors.Wrap(ErrInvalid, "contains_character must be a single character")
	}
	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		return errors.Wrap(ErrInvalid,
			fmt.Sprintf("min_length (%d) cannot exceed max_length (%d)", *f.MinLength, *f.MaxLength))
	}
	return nil
}

// Match is the single definition of "record matches filters". The store's
// SQL narrowing must agree with it; tests hold both paths to this one.
//
// contains_character is deliberately a case-insensitive substring test
// against the raw value, not a frequency-map lookup. That asymmetry with
// the case-sensitive frequency map is inherited behavior and kept as-is.
func (f Filters) Match(value string, props analyzer.Properties) bool {
	if f.IsPalindrome != nil && props.IsPalindrome != *f.IsPalindrome {
		return false
	}
	if f.MinLength != nil && props.Length < *f.MinLength {
		return false
	}
	if f.MaxLength != nil && props.Length > *f.MaxLength {
		return false
	}
	if f.WordCount != nil && props.WordCount != *f.WordCount {
		return false
	}
	if f.ContainsCharacter != nil {
		needle := strings.ToLower(*f.ContainsCharacter)
		if !strings.Contains(strings.ToLower(value), needle) {
			return false
		}
	}
	return true
}

// Applied returns the set fields as a plain map, used by list responses
// to echo back which filters were applied.
func (f Filters) Applied() map[string]interface{} {
	applied := make(map[string]interface{})
	if f.IsPalindrome != nil {
		applied["is_palindrome"] = *f.IsPalindrome
	}
	if f.MinLength != nil {
		applied["min_length"] = *f.MinLength
	}
	if f.MaxLength != nil {
		applied["max_length"] = *f.MaxLength
	}
	if f.WordCount != nil {
		applied["word_count"] = *f.WordCount
	}
	if f.ContainsCharacter != nil {
		applied["contains_character"] = *f.ContainsCharacter
	}
	return applied
}
