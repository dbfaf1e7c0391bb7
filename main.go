package main

import (
	"encoding/json"
	"flag"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/username/ceifolio/backend/src/b3"
	"github.com/username/ceifolio/backend/src/config"
	"github.com/username/ceifolio/backend/src/database"
	"github.com/username/ceifolio/backend/src/formatting"
	"github.com/username/ceifolio/backend/src/handlers"
	"github.com/username/ceifolio/backend/src/logger"
	"github.com/username/ceifolio/backend/src/processors"
	"github.com/username/ceifolio/backend/src/services"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000": true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// newStatementService wires the pipeline stages behind the service.
func newStatementService(rates b3.RateSource) services.StatementService {
	reportCache := cache.New(services.DefaultCacheExpiration, services.CacheCleanupInterval)
	return services.NewStatementService(
		processors.NewTradeGrouper(),
		processors.NewFeeCalculator(rates),
		processors.NewBuySellSplitter(),
		processors.NewPositionAggregator(),
		processors.NewAveragePriceCalculator(),
		reportCache,
	)
}

// runStatementFile is the one-shot CLI mode: process a single CEI
// statement and print the fee and holdings reports to stdout.
func runStatementFile(path string) {
	if path == "auto" {
		found, err := services.FindStatementFile(config.Cfg.DownloadsDir)
		if err != nil {
			logger.L.Error("Statement file not found", "error", err)
			os.Exit(1)
		}
		path = found
	}

	file, err := os.Open(path)
	if err != nil {
		logger.L.Error("Failed to open statement file", "path", path, "error", err)
		os.Exit(1)
	}
	defer file.Close()

	statementService := newStatementService(b3.DefaultRateSource())
	result, err := statementService.ProcessStatement(file, "cei", filepath.Base(path))
	if err != nil {
		logger.L.Error("Statement processing failed", "path", path, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Filename: %s\n\n", path)
	if err := formatting.WriteFeeReport(os.Stdout, result.FeeReport); err != nil {
		logger.L.Error("Failed to render fee report", "error", err)
		os.Exit(1)
	}
	fmt.Println()
	if err := formatting.WritePositionsReport(os.Stdout, result.Positions, result.ReferenceYear, result.Institution); err != nil {
		logger.L.Error("Failed to render positions report", "error", err)
		os.Exit(1)
	}
}

func main() {
	statementFlag := flag.String("statement", "", "process the given CEI statement file and print the reports ('auto' searches the current and Downloads directories)")
	flag.Parse()

	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	statementPath := *statementFlag
	if statementPath == "" {
		statementPath = config.Cfg.StatementFile
	}
	if statementPath != "" {
		runStatementFile(statementPath)
		return
	}

	logger.L.Info("ceifolio backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	rates, err := b3.NewStoreRateSource(database.DB)
	if err != nil {
		logger.L.Error("Failed to load fee rate schedule", "error", err)
		stdlog.Fatalf("failed to load fee rate schedule: %v", err)
	}

	statementService := newStatementService(rates)

	statementHandler := handlers.NewStatementHandler(statementService)
	feeHandler := handlers.NewFeeHandler(statementService)
	positionHandler := handlers.NewPositionHandler(statementService)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "ceifolio Backend is running"})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/statement", statementHandler.HandleUpload)
		r.Get("/fees", feeHandler.HandleGetFees)
		r.Get("/fees/export", feeHandler.HandleExportFeesCSV)
		r.Get("/positions", positionHandler.HandleGetPositions)
		r.Get("/positions/export", positionHandler.HandleExportPositionsCSV)
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
