package api

import (
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/GonzoDMX/string-anywhere/internal/funfact"
	"github.com/GonzoDMX/string-anywhere/internal/store"
)

// ==========================================
// FUN FACT PASSTHROUGH
// ==========================================

// HandleStringFunFact - GET /api/v1/strings/{value}/fun-fact
// Looks up the stored record, then asks the numbers API for trivia
// about its length. Upstream failures surface as 502, not 500: the
// record itself is fine.
func (s *Server) HandleStringFunFact(w http.ResponseWriter, r *http.Request) {
	if s.funFact == nil {
		errorResponse(w, http.StatusServiceUnavailable, "fun facts are not configured")
		return
	}

	rec, err := s.store.GetByValue(r.PathValue("value"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			errorResponse(w, http.StatusNotFound, "string not found")
			return
		}
		s.log.Errorw("Get failed", "error", err)
		errorResponse(w, http.StatusInternalServerError, "failed to read string")
		return
	}

	fact, err := s.funFact.NumberFact(r.Context(), rec.Properties.Length)
	if err != nil {
		if errors.Is(err, funfact.ErrUpstream) {
			errorResponse(w, http.StatusBadGateway, "fun fact service unavailable")
			return
		}
		s.log.Errorw("Fun fact failed", "error", err)
		errorResponse(w, http.StatusInternalServerError, "failed to fetch fun fact")
		return
	}

	jsonResponse(w, http.StatusOK, StandardResponse{
		Success: true,
		Data: FunFactResponse{
			Value:  rec.Value,
			Length: rec.Properties.Length,
			Fact:   fact,
		},
	})
}
