package api

import (
	"net/http"
	"time"
)

// ==========================================
// SERVICE OPERATIONS
// ==========================================

// These handlers provide basic service operations: health checks and
// status reporting.

// HandleHealth - GET /health
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HandleStatus - GET /api/v1/system/status
func (s *Server) HandleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Count()
	if err != nil {
		s.log.Errorw("Status count failed", "error", err)
		errorResponse(w, http.StatusInternalServerError, "failed to read store status")
		return
	}

	jsonResponse(w, http.StatusOK, StandardResponse{
		Success: true,
		Data: StatusResponse{
			Status:      "healthy",
			Uptime:      time.Since(s.startedAt).Round(time.Second).String(),
			StringCount: count,
			Version:     Version,
		},
	})
}
