package router

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/llm"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New wires the full application: database pools, repositories, services,
// handlers and the middleware chain. The returned pools are owned by the
// caller and must be closed on shutdown.
func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *sql.DB, *pgxpool.Pool, error) {
	dsn := cfg.DBConnectionString
	// Local development runs against Postgres without TLS.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := "?"
		if strings.Contains(dsn, "?") {
			separator = "&"
		}
		dsn += separator + "sslmode=disable"
	}

	// CRUD repositories go through database/sql; the usage repository keeps
	// its own pgx pool for native upserts.
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, nil, nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	if err := pool.Ping(context.Background()); err != nil {
		db.Close()
		pool.Close()
		return nil, nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	validate := validator.New(validator.WithRequiredStructEnabled())

	leadRepo := repository.NewLeadRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	filterRepo := repository.NewSavedFilterRepository(db)
	usageRepo := repository.NewUsageRepo(pool)

	generator := llm.NewClient(llm.ClientConfig{
		BaseURL:     cfg.LLMBaseURL,
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
		Timeout:     time.Duration(cfg.LLMTimeoutSec) * time.Second,
	}, logger)

	leadSvc := service.NewLeadService(leadRepo, usageRepo, generator, service.LeadServiceConfig{
		DailyLimit:       cfg.DailyGenerationLimit,
		DefaultLeadCount: cfg.DefaultLeadCount,
	}, logger)
	campaignSvc := service.NewCampaignService(campaignRepo, leadRepo, logger)
	filterSvc := service.NewSavedFilterService(filterRepo)

	leadHandler := handler.NewLeadHandler(leadSvc, validate, logger)
	campaignHandler := handler.NewCampaignHandler(campaignSvc, validate, logger)
	filterHandler := handler.NewFilterHandler(filterSvc, validate)
	healthHandler := handler.NewHealthHandler(db)

	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, logger)
	throttle := middleware.NewThrottle(cfg.ThrottleRPS, cfg.ThrottleBurst)

	apiV1Mux := http.NewServeMux()
	leadHandler.RegisterRoutes(apiV1Mux, authMiddleware, throttle.Handler)
	campaignHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	filterHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))
	mux.Handle("/metrics", promhttp.Handler())
	healthHandler.RegisterRoutes(mux)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	chain := middleware.LoggerMiddleware(logger)(middleware.Metrics(c.Handler(mux)))
	return chain, db, pool, nil
}
