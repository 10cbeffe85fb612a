package api

import (
	"time"

	"github.com/GonzoDMX/string-anywhere/internal/store"
)

// ==========================================
// 1. STANDARD ENVELOPE
// ==========================================

// StandardResponse wraps all API responses to ensure consistency.
// Clients check "success" first. If false, display "error".
type StandardResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`    // The actual payload (one of the structs below)
	Message string      `json:"message,omitempty"` // User-friendly message
	Error   string      `json:"error,omitempty"`   // User-friendly error message
}

// ==========================================
// 2. STRING OPERATIONS
// ==========================================

// StringAddRequest is the create payload. Value is a pointer so the
// validator can tell "field missing" apart from "field blank".
type StringAddRequest struct {
	Value *string `json:"value"`
}

// StringResponse is the persisted-record representation.
type StringResponse struct {
	ID                    string         `json:"id"`    // 64 lowercase hex chars
	Value                 string         `json:"value"` // exactly as submitted
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
	CreatedAt             string         `json:"created_at"` // RFC3339 UTC
}

// newStringResponse flattens a store record into the wire shape.
func newStringResponse(rec store.StringRecord) StringResponse {
	return StringResponse{
		ID:                    rec.ID,
		Value:                 rec.Value,
		Length:                rec.Properties.Length,
		IsPalindrome:          rec.Properties.IsPalindrome,
		UniqueCharacters:      rec.Properties.UniqueCharacters,
		WordCount:             rec.Properties.WordCount,
		CharacterFrequencyMap: rec.Properties.CharacterFrequencyMap,
		CreatedAt:             rec.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func newStringResponses(recs []store.StringRecord) []StringResponse {
	out := make([]StringResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, newStringResponse(rec))
	}
	return out
}

// StringListResponse answers structured list queries.
type StringListResponse struct {
	Data           []StringResponse       `json:"data"`
	Count          int                    `json:"count"`
	FiltersApplied map[string]interface{} `json:"filters_applied"`
}

// InterpretedQuery echoes how a free-text query was understood.
type InterpretedQuery struct {
	Original      string                 `json:"original"`
	ParsedFilters map[string]interface{} `json:"parsed_filters"`
}

// NaturalLanguageResponse answers free-text queries.
type NaturalLanguageResponse struct {
	Data             []StringResponse `json:"data"`
	Count            int              `json:"count"`
	InterpretedQuery InterpretedQuery `json:"interpreted_query"`
}

// FunFactResponse decorates a stored string with number trivia.
type FunFactResponse struct {
	Value  string `json:"value"`
	Length int    `json:"length"`
	Fact   string `json:"fact"`
}

// ==========================================
// 3. SERVICE
// ==========================================

type StatusResponse struct {
	Status      string `json:"status"` // "healthy"
	Uptime      string `json:"uptime"` // Human readable duration
	StringCount int    `json:"string_count"`
	Version     string `json:"version"`
}
