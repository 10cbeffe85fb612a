package api

import (
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/GonzoDMX/string-anywhere/internal/filter"
	"github.com/GonzoDMX/string-anywhere/internal/store"
)

// ==========================================
// STRING OPERATIONS
// ==========================================

// These handlers manage string submission, retrieval, deletion, and
// structured filtered listing.

// HandleStringAdd - POST /api/v1/strings
// Computes properties, stores the value content-addressably, and
// returns the new record. Duplicates (by value or id) are a 409.
func (s *Server) HandleStringAdd(w http.ResponseWriter, r *http.Request) {
	value, verr := decodeStringAdd(r.Body)
	if verr != nil {
		errorResponse(w, verr.status(), verr.Message)
		return
	}

	rec, err := s.store.Insert(value)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			errorResponse(w, http.StatusConflict, "string already exists")
			return
		}
		s.log.Errorw("Insert failed", "error", err)
		errorResponse(w, http.StatusInternalServerError, "failed to store string")
		return
	}

	jsonResponse(w, http.StatusCreated, StandardResponse{
		Success: true,
		Data:    newStringResponse(rec),
		Message: "string created",
	})
}

// HandleStringList - GET /api/v1/strings
// Structured filtering via query parameters. All provided filters are
// conjunctive; results come back newest first.
func (s *Server) HandleStringList(w http.ResponseWriter, r *http.Request) {
	f, verr := filtersFromQuery(r)
	if verr != nil {
		errorResponse(w, verr.status(), verr.Message)
		return
	}

	records, err := s.store.ListFiltered(f)
	if err != nil {
		if errors.Is(err, filter.ErrInvalid) {
			errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Errorw("List failed", "error", err)
		errorResponse(w, http.StatusInternalServerError, "failed to list strings")
		return
	}

	jsonResponse(w, http.StatusOK, StandardResponse{
		Success: true,
		Data: StringListResponse{
			Data:           newStringResponses(records),
			Count:          len(records),
			FiltersApplied: f.Applied(),
		},
	})
}

// HandleStringGet - GET /api/v1/strings/{value}
func (s *Server) HandleStringGet(w http.ResponseWriter, r *http.Request) {
	value := r.PathValue("value")

	rec, err := s.store.GetByValue(value)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			errorResponse(w, http.StatusNotFound, "string not found")
			return
		}
		s.log.Errorw("Get failed", "error", err)
		errorResponse(w, http.StatusInternalServerError, "failed to read string")
		return
	}

	jsonResponse(w, http.StatusOK, StandardResponse{Success: true, Data: newStringResponse(rec)})
}

// HandleStringDelete - DELETE /api/v1/strings/{value}
// Not an idempotent no-op: deleting a value that is already gone is 404
// every time.
func (s *Server) HandleStringDelete(w http.ResponseWriter, r *http.Request) {
	s.deleteWith(w, func() error { return s.store.DeleteByValue(r.PathValue("value")) })
}

// HandleStringDeleteByID - DELETE /api/v1/strings/id/{id}
func (s *Server) HandleStringDeleteByID(w http.ResponseWriter, r *http.Request) {
	s.deleteWith(w, func() error { return s.store.DeleteByID(r.PathValue("id")) })
}

func (s *Server) deleteWith(w http.ResponseWriter, del func() error) {
	if err := del(); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			errorResponse(w, http.StatusNotFound, "string not found")
			return
		}
		s.log.Errorw("Delete failed", "error", err)
		errorResponse(w, http.StatusInternalServerError, "failed to delete string")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
