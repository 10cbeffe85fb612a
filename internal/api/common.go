package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/GonzoDMX/string-anywhere/internal/funfact"
	"github.com/GonzoDMX/string-anywhere/internal/store"
)

// Version reported by the status endpoint.
const Version = "0.1.0"

// Server holds the handlers' dependencies. Handlers are methods so main
// can register them on the mux it builds.
type Server struct {
	store     *store.Store
	funFact   *funfact.Client
	log       *zap.SugaredLogger
	startedAt time.Time
}

// NewServer wires the handler dependencies. funFact may be nil, which
// disables the fun-fact endpoint with a 503.
func NewServer(s *store.Store, ff *funfact.Client, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Server{
		store:     s,
		funFact:   ff,
		log:       logger,
		startedAt: time.Now(),
	}
}

// jsonResponse sends a standard JSON response
func jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorResponse sends a standard Error response
func errorResponse(w http.ResponseWriter, status int, msg string) {
	jsonResponse(w, status, StandardResponse{
		Success: false,
		Error:   msg,
	})
}
