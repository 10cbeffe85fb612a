package nlparse

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/GonzoDMX/string-anywhere/internal/filter"
)

// ==========================================
// NATURAL-LANGUAGE FILTER PARSER
// ==========================================

// The parser maps a free-text query onto the same filter.Filters the
// structured endpoint uses. It is rule-based: a fixed list of phrase
// patterns, each evaluated independently against the lower-cased query.
// Rules are order-insensitive and a single query may trigger several.

// Outcome classifies a parse attempt.
type Outcome int

const (
	// Unparsed means no phrase pattern matched at all.
	Unparsed Outcome = iota
	// Conflict means patterns matched but assigned contradictory values
	// to the same filter field, or produced an invalid filter set.
	Conflict
	// Success means at least one pattern matched and the accumulated
	// filters are consistent.
	Success
)

// Result is the outcome of parsing one query.
type Result struct {
	Outcome Outcome
	Filters filter.Filters
	Message string
}

// field identifies a filter field an assignment targets.
type field string

const (
	fieldWordCount    field = "word_count"
	fieldIsPalindrome field = "is_palindrome"
	fieldMinLength    field = "min_length"
	fieldContainsChar field = "contains_character"
)

// assignment is one field value produced by one matched phrase.
type assignment struct {
	field field
	value interface{}
}

// rule matches phrases in a lower-cased query and emits assignments.
// Every occurrence counts: "letter a ... letter b" emits two contains
// assignments, which the conflict pass then rejects.
type rule func(lowered string) []assignment

var (
	longerThanRe = regexp.MustCompile(`\blonger than (\d+)\b`)
	letterRe     = regexp.MustCompile(`\bcontain(?:s|ing)?\s+(?:the\s+)?letter\s+(\S)`)
	characterRe  = regexp.MustCompile(`\bcontain(?:s|ing)?\s+(?:the\s+)?character\s+(\S)`)
	palindromeRe = regexp.MustCompile(`\bpalindrom(?:e|ic)`)
)

var rules = []rule{
	// "single word" -> word_count = 1
	func(q string) []assignment {
		if strings.Contains(q, "single word") {
			return []assignment{{fieldWordCount, 1}}
		}
		return nil
	},

	// "palindrome" / "palindromic" -> is_palindrome = true
	func(q string) []assignment {
		if palindromeRe.MatchString(q) {
			return []assignment{{fieldIsPalindrome, true}}
		}
		return nil
	},

	// "longer than N" -> min_length = N + 1
	func(q string) []assignment {
		var out []assignment
		for _, m := range longerThanRe.FindAllStringSubmatch(q, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue // digits too large for an int; ignore the phrase
			}
			out = append(out, assignment{fieldMinLength, n + 1})
		}
		return out
	},

	// "first vowel" -> contains_character = 'a'
	func(q string) []assignment {
		if strings.Contains(q, "first vowel") {
			return []assignment{{fieldContainsChar, "a"}}
		}
		return nil
	},

	// "contain(s|ing) [the] letter X" -> contains_character = X
	func(q string) []assignment {
		var out []assignment
		for _, m := range letterRe.FindAllStringSubmatch(q, -1) {
			out = append(out, assignment{fieldContainsChar, m[1]})
		}
		return out
	},

	// "contain(s|ing) [the] character X" -> contains_character = X
	func(q string) []assignment {
		var out []assignment
		for _, m := range characterRe.FindAllStringSubmatch(q, -1) {
			out = append(out, assignment{fieldContainsChar, m[1]})
		}
		return out
	},
}

// Parse maps a free-text query into structured filters.
func Parse(query string) Result {
	if strings.TrimSpace(query) == "" {
		return Result{Outcome: Unparsed, Message: "query is empty"}
	}

	lowered := strings.ToLower(query)

	byField := make(map[field][]interface{})
	for _, r := range rules {
		for _, a := range r(lowered) {
			byField[a.field] = append(byField[a.field], a.value)
		}
	}

	if len(byField) == 0 {
		return Result{Outcome: Unparsed, Message: "could not recognize any filter phrases in query"}
	}

	// Conflict pass: every assignment to a field must agree. This runs
	// after all rules so phrase order never changes the verdict.
	var conflicting []string
	for f, values := range byField {
		for _, v := range values[1:] {
			if v != values[0] {
				conflicting = append(conflicting, string(f))
				break
			}
		}
	}
	if len(conflicting) > 0 {
		sort.Strings(conflicting)
		return Result{
			Outcome: Conflict,
			Message: fmt.Sprintf("query assigns conflicting values to: %s", strings.Join(conflicting, ", ")),
		}
	}

	filters := buildFilters(byField)
	if err := filters.Validate(); err != nil {
		return Result{Outcome: Conflict, Message: err.Error()}
	}

	return Result{Outcome: Success, Filters: filters}
}

func buildFilters(byField map[field][]interface{}) filter.Filters {
	var filters filter.Filters
	if vs, ok := byField[fieldWordCount]; ok {
		n := vs[0].(int)
		filters.WordCount = &n
	}
	if vs, ok := byField[fieldIsPalindrome]; ok {
		b := vs[0].(bool)
		filters.IsPalindrome = &b
	}
	if vs, ok := byField[fieldMinLength]; ok {
		n := vs[0].(int)
		filters.MinLength = &n
	}
	if vs, ok := byField[fieldContainsChar]; ok {
		c := vs[0].(string)
		filters.ContainsCharacter = &c
	}
	return filters
}
