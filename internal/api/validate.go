package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/GonzoDMX/string-anywhere/internal/filter"
)

// Request validation is deliberately explicit: typed request structs
// plus pure validation functions, with "field missing" and "wrong type"
// kept apart because they map to different status codes.

// ValidationKind distinguishes the validation failure subkinds.
type ValidationKind int

const (
	// ValidationMissing: a required field is absent (or the body is not
	// valid JSON at all).
	ValidationMissing ValidationKind = iota
	// ValidationType: a field is present but has the wrong JSON type.
	ValidationType
	// ValidationInvalid: a field is present and well-typed but its
	// value is not acceptable.
	ValidationInvalid
)

// ValidationError carries the subkind alongside the message.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// status maps a validation subkind to its HTTP status. Missing/invalid
// input is a plain bad request; a type mismatch is unprocessable.
func (e *ValidationError) status() int {
	if e.Kind == ValidationType {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

// decodeStringAdd parses and validates the create-string payload.
func decodeStringAdd(body io.Reader) (string, *ValidationError) {
	var req StringAddRequest
	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return "", &ValidationError{ValidationType, "field 'value' must be a string"}
		}
		return "", &ValidationError{ValidationMissing, "request body must be valid JSON"}
	}

	if req.Value == nil {
		return "", &ValidationError{ValidationMissing, "field 'value' is required"}
	}
	if strings.TrimSpace(*req.Value) == "" {
		return "", &ValidationError{ValidationInvalid, "field 'value' must not be blank"}
	}
	return *req.Value, nil
}

// filtersFromQuery builds filter.Filters from list query parameters.
// Unknown parameters are ignored; malformed known ones are rejected.
func filtersFromQuery(r *http.Request) (filter.Filters, *ValidationError) {
	var f filter.Filters
	q := r.URL.Query()

	if raw := q.Get("is_palindrome"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return f, &ValidationError{ValidationType, "is_palindrome must be true or false"}
		}
		f.IsPalindrome = &b
	}

	for _, p := range []struct {
		name string
		dest **int
	}{
		{"min_length", &f.MinLength},
		{"max_length", &f.MaxLength},
		{"word_count", &f.WordCount},
	} {
		if raw := q.Get(p.name); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return f, &ValidationError{ValidationType, p.name + " must be an integer"}
			}
			*p.dest = &n
		}
	}

	if raw := q.Get("contains_character"); raw != "" {
		f.ContainsCharacter = &raw
	}

	if err := f.Validate(); err != nil {
		return f, &ValidationError{ValidationInvalid, err.Error()}
	}
	return f, nil
}
