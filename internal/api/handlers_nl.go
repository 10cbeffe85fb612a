package api

import (
	"net/http"

	"github.com/GonzoDMX/string-anywhere/internal/nlparse"
)

// ==========================================
// NATURAL-LANGUAGE FILTERING
// ==========================================

// HandleStringNLFilter - GET /api/v1/strings/filter-by-natural-language
// Parses the free-text ?query= into the same structured filters the
// list endpoint uses, then runs the same listing. A query we cannot
// read at all is a 400; a query we read but that contradicts itself is
// a 422 — the distinction is the point.
func (s *Server) HandleStringNLFilter(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	result := nlparse.Parse(query)
	switch result.Outcome {
	case nlparse.Unparsed:
		errorResponse(w, http.StatusBadRequest, result.Message)
		return
	case nlparse.Conflict:
		errorResponse(w, http.StatusUnprocessableEntity, result.Message)
		return
	}

	records, err := s.store.ListFiltered(result.Filters)
	if err != nil {
		s.log.Errorw("NL list failed", "error", err, "query", query)
		errorResponse(w, http.StatusInternalServerError, "failed to list strings")
		return
	}

	jsonResponse(w, http.StatusOK, StandardResponse{
		Success: true,
		Data: NaturalLanguageResponse{
			Data:  newStringResponses(records),
			Count: len(records),
			InterpretedQuery: InterpretedQuery{
				Original:      query,
				ParsedFilters: result.Filters.Applied(),
			},
		},
	})
}
