package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/complykit/compliance-service/internal/assess"
	"github.com/complykit/compliance-service/internal/config"
	"github.com/complykit/compliance-service/internal/engine"
	"github.com/complykit/compliance-service/internal/handler"
	"github.com/complykit/compliance-service/internal/integrations/fxrates"
	"github.com/complykit/compliance-service/internal/middleware"
	"github.com/complykit/compliance-service/internal/repository"
	"github.com/complykit/compliance-service/internal/scheduler"
	"github.com/complykit/compliance-service/internal/service"
	"github.com/complykit/compliance-service/internal/tariff"
	"github.com/complykit/compliance-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Load tariff tables and refresh exchange rates from the central bank
	tariffs := tariff.Default()
	ratesClient := fxrates.NewClient(cfg, logger)
	if current, err := tariffs.ForDate(time.Now()); err == nil {
		if err := ratesClient.Refresh(current); err != nil {
			logger.Warnf("Using compiled-in exchange rates: %v", err)
		}
	}

	// Build the assessor registry and the engine
	registry, err := assess.Default(tariffs)
	if err != nil {
		logger.Fatalf("Failed to build assessor registry: %v", err)
	}
	eng, err := engine.New(registry, tariffs, engine.DefaultWeights(), logger)
	if err != nil {
		logger.Fatalf("Failed to build engine: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, eng, logger, cfg)
	h := handler.NewHandler(svc)
	sender := email.NewSender(cfg, logger)

	// Start the periodic assessment batch
	sched := scheduler.NewScheduler(repo, eng, sender, cfg, logger)
	if err := sched.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/businesses", h.CreateBusiness).Methods("POST")
	authRouter.HandleFunc("/businesses/{id}/filings", h.RecordFiling).Methods("POST")
	authRouter.HandleFunc("/businesses/{id}/score", h.GetComplianceScore).Methods("GET")
	authRouter.HandleFunc("/businesses/{id}/results", h.GetComplianceResults).Methods("GET")
	authRouter.HandleFunc("/businesses/{id}/deadlines", h.GetDeadlines).Methods("GET")
	authRouter.HandleFunc("/businesses/{id}/action-plan", h.GetActionPlan).Methods("GET")
	authRouter.HandleFunc("/businesses/{id}/setup", h.ValidateSetup).Methods("GET")
	authRouter.HandleFunc("/businesses/{id}/report", h.GenerateReport).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
