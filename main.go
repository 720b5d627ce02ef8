package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/config"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/database"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/guard"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/handlers"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/llm"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/middleware"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/repositories"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("database", cfg.Database.Database),
		zap.Bool("ai_configured", cfg.AI.IsConfigured()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := migrationDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	generator, err := llm.NewClient(llm.Config{
		BaseURL: cfg.AI.BaseURL,
		APIKey:  cfg.AI.APIKey,
		Timeout: cfg.AI.RequestTimeout,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create AI client", zap.Error(err))
	}

	projectRepo := repositories.NewProjectRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	cardRepo := repositories.NewCardRepository(db)
	worldviewRepo := repositories.NewWorldviewRepository(db)
	relationshipRepo := repositories.NewRelationshipRepository(db)
	scenarioRepo := repositories.NewScenarioRepository(db)
	manuscriptRepo := repositories.NewManuscriptRepository(db)

	projectService := services.NewProjectService(db,
		projectRepo, groupRepo, cardRepo, worldviewRepo, relationshipRepo, scenarioRepo, manuscriptRepo, logger)
	castService := services.NewCastService(groupRepo, cardRepo, relationshipRepo, logger)
	worldviewService := services.NewWorldviewService(worldviewRepo, logger)
	storyService := services.NewStoryService(db, scenarioRepo, manuscriptRepo, logger)
	generationService := services.NewGenerationService(db, generator, cfg.AI,
		cardRepo, groupRepo, worldviewRepo, scenarioRepo, relationshipRepo, logger)

	guardMW := guard.Middleware(projectRepo, logger)
	txMW := database.WithRequestTx(db, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewProjectHandler(projectService, logger).RegisterRoutes(mux, guardMW, txMW)
	handlers.NewCastHandler(castService, logger).RegisterRoutes(mux, guardMW, txMW)
	handlers.NewWorldviewHandler(worldviewService, logger).RegisterRoutes(mux, guardMW, txMW)
	handlers.NewScenarioHandler(storyService, logger).RegisterRoutes(mux, guardMW, txMW)
	handlers.NewManuscriptHandler(storyService, logger).RegisterRoutes(mux, guardMW, txMW)
	handlers.NewGeneratorHandler(generationService, logger).RegisterRoutes(mux, guardMW)

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.BindAddr, cfg.Port),
		Handler:           middleware.RequestLogger(logger)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting universe-builder",
			zap.String("addr", server.Addr), zap.String("version", cfg.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" || env == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
