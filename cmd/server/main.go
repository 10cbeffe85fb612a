package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/GonzoDMX/string-anywhere/internal/api"
	"github.com/GonzoDMX/string-anywhere/internal/config"
	"github.com/GonzoDMX/string-anywhere/internal/funfact"
	"github.com/GonzoDMX/string-anywhere/internal/logger"
	"github.com/GonzoDMX/string-anywhere/internal/rates"
	"github.com/GonzoDMX/string-anywhere/internal/store"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config file")
	flag.Parse()

	// 1. Load Config
	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// 2. Setup Logger
	log, err := logger.New(cfg.Server.JSONLogs)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Initialize Store
	log.Infow("Initializing SQLite", "path", cfg.Storage.Path)
	st, err := store.Open(cfg.Storage.Path, log)
	if err != nil {
		log.Fatalw("Failed to open store", "error", err)
	}
	defer st.Close()

	// 4. External Collaborators
	ffClient := funfact.New(cfg.FunFact.BaseURL, cfg.FunFact.Timeout.Duration)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Rates.Enabled {
		refresher := rates.NewRefresher(
			rates.NewClient(cfg.Rates.BaseURL, cfg.Rates.CountriesURL),
			st,
			cfg.Rates.RefreshInterval.Duration,
			log,
		)
		go refresher.Run(ctx)
	}

	// 5. Setup Router
	srv := api.NewServer(st, ffClient, log)
	mux := http.NewServeMux()

	// --- General ---
	mux.HandleFunc("GET /health", srv.HandleHealth)
	mux.HandleFunc("GET /api/v1/system/status", srv.HandleStatus)

	// --- Strings ---
	mux.HandleFunc("POST /api/v1/strings", srv.HandleStringAdd)
	mux.HandleFunc("GET /api/v1/strings", srv.HandleStringList)                                // Structured filters
	mux.HandleFunc("GET /api/v1/strings/filter-by-natural-language", srv.HandleStringNLFilter) // Free-text filters
	mux.HandleFunc("GET /api/v1/strings/{value}", srv.HandleStringGet)
	mux.HandleFunc("GET /api/v1/strings/{value}/fun-fact", srv.HandleStringFunFact)
	mux.HandleFunc("DELETE /api/v1/strings/{value}", srv.HandleStringDelete)
	mux.HandleFunc("DELETE /api/v1/strings/id/{id}", srv.HandleStringDeleteByID)

	// 6. Middleware Chain
	handler := MiddlewareChain(mux, log)

	// 7. Start Server
	log.Infow("Server starting", "port", cfg.Server.Port)
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
		IdleTimeout:  cfg.Server.IdleTimeout.Duration,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("Server failed", "error", err)
		}
	}()

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Infow("Shutting down")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Shutdown error", "error", err)
	}
}

// MiddlewareChain wraps the router with Logging and CORS
func MiddlewareChain(next http.Handler, log *zap.SugaredLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// CORS (permissive: this service has no auth surface)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)

		log.Infow("Request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
