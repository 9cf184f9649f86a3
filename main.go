package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/audit"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/auth"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/config"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/database"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/generator"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/handlers"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/logging"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/middleware"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

const migrationsPath = "./migrations"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.String("generator_provider", cfg.Generator.Provider),
		zap.String("generator_model", cfg.Generator.Model))

	ctx := context.Background()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()

	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection",
			zap.String("error", logging.SanitizeError(err)))
	}
	if err := database.RunMigrations(migrationDB, migrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations",
			zap.String("error", logging.SanitizeError(err)))
	}
	_ = migrationDB.Close()

	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		JWKSEndpoints:      cfg.Auth.JWKSEndpoints,
	})
	if err != nil {
		logger.Fatal("Failed to create JWKS client", zap.Error(err))
	}
	authService := auth.NewAuthService(jwksClient, logger)
	authMiddleware := auth.NewMiddleware(authService, logger)

	gen, err := generator.NewGenerator(&generator.Config{
		Provider: cfg.Generator.Provider,
		Endpoint: cfg.Generator.Endpoint,
		Model:    cfg.Generator.Model,
		APIKey:   cfg.Generator.APIKey,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create generator", zap.Error(err))
	}

	store := services.NewStore(db)
	resolver := services.NewSubdomainResolver(store, cfg.Pipeline.MaxSubdomainAttempts, logger)
	auditor := audit.NewSecurityAuditor(logger)
	pipeline := services.NewSitePipeline(gen, resolver, store, auditor, services.PipelineConfig{
		MaxSubdomainAttempts:  cfg.Pipeline.MaxSubdomainAttempts,
		YearlyPriceMultiplier: cfg.Pipeline.YearlyPriceMultiplier,
		PromptMinLength:       cfg.Pipeline.PromptMinLength,
		PromptMaxLength:       cfg.Pipeline.PromptMaxLength,
		Temperature:           cfg.Generator.Temperature,
	}, logger)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(cfg, logger)
	healthHandler.RegisterRoutes(mux)

	sitesHandler := handlers.NewSitesHandler(pipeline, logger)
	sitesHandler.RegisterRoutes(mux, authMiddleware)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting sitesmith-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
