package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/username/tradereport/src/categories"
	"github.com/username/tradereport/src/config"
	"github.com/username/tradereport/src/handlers"
	"github.com/username/tradereport/src/logger"
	"github.com/username/tradereport/src/parsers"
	"github.com/username/tradereport/src/processors"
	"github.com/username/tradereport/src/services"
	"golang.org/x/time/rate"
)

func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				logger.L.Warn("Rate limit exceeded",
					"method", r.Method,
					"path", r.URL.Path,
					"remoteAddr", r.RemoteAddr)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, If-None-Match")
		w.Header().Set("Access-Control-Expose-Headers", "ETag")

		if r.Method == http.MethodOptions {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Trade report server starting...")

	table := categories.DefaultTable()
	if path := config.Cfg.CategoryTablePath; path != "" {
		loaded, err := categories.LoadTable(path)
		if err != nil {
			logger.L.Error("Failed to load category table, using built-in table", "path", path, "error", err)
		} else {
			table = loaded
			logger.L.Info("Loaded category table override", "path", path, "categories", len(table))
		}
	}
	classifier := categories.NewClassifier(table)

	logger.L.Info("Initializing report cache...")
	reportCache := cache.New(config.Cfg.ReportCacheExpiry, config.Cfg.CacheCleanupEvery)

	logger.L.Info("Initializing services and handlers...")
	normalizer := parsers.NewTransactionNormalizer(classifier)
	stockProcessor := processors.NewStockProcessor(classifier, config.Cfg.FifoWorkers)
	summaryProcessor := processors.NewSummaryProcessor(classifier)

	reportService := services.NewReportService(
		normalizer, stockProcessor, summaryProcessor,
		reportCache, config.Cfg.ReportCacheExpiry,
	)

	uploadHandler := handlers.NewUploadHandler(reportService)
	txHandler := handlers.NewTransactionHandler(reportService)
	reportHandler := handlers.NewReportHandler(reportService)

	logger.L.Info("Configuring routes...")
	limiter := rate.NewLimiter(rate.Every(config.Cfg.RateLimitEvery), config.Cfg.RateLimitBurst)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(rateLimitMiddleware(limiter))
	router.Use(enableCORS)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Trade report backend is running"})
	})

	router.Route("/api", func(api chi.Router) {
		api.Post("/upload", uploadHandler.HandleUpload)
		api.Get("/uploads/{uploadID}", uploadHandler.HandleGetUpload)
		api.Get("/transactions", txHandler.HandleGetTransactions)
		api.Get("/dividends", txHandler.HandleGetDividends)
		api.Get("/sales", reportHandler.HandleGetSales)
		api.Get("/holdings", reportHandler.HandleGetHoldings)
		api.Get("/summary/stocks", reportHandler.HandleGetStockSummary)
		api.Get("/summary/categories", reportHandler.HandleGetCategorySummary)
		api.Get("/summary/monthly", reportHandler.HandleGetMonthlySummary)
		api.Get("/reports/{kind}", reportHandler.HandleGetRankedReport)
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
