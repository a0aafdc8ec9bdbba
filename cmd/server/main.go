package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rulezero/playerconnector/internal/config"
	"github.com/rulezero/playerconnector/internal/database"
	"github.com/rulezero/playerconnector/internal/handler"
	"github.com/rulezero/playerconnector/internal/middleware"
	"github.com/rulezero/playerconnector/internal/repository"
	"github.com/rulezero/playerconnector/internal/service"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)

	// Initialize services
	userService := service.NewUserService(service.UserServiceConfig{
		Users:        userRepo,
		Games:        gameRepo,
		Availability: availabilityRepo,
	})
	gamesService := service.NewGamesService(service.GamesServiceConfig{
		Games: gameRepo,
		Users: userRepo,
	})
	availabilityService := service.NewAvailabilityService(service.AvailabilityServiceConfig{
		Availability: availabilityRepo,
		Users:        userRepo,
	})

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	gameHandler := handler.NewGameHandler(gamesService)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	// User endpoints
	mux.HandleFunc("POST /v1/users", userHandler.Create)
	mux.HandleFunc("GET /v1/users", userHandler.List)
	mux.HandleFunc("DELETE /v1/users", userHandler.BulkDelete)
	mux.HandleFunc("GET /v1/users/search", userHandler.Search)
	mux.HandleFunc("GET /v1/users/{userId}", userHandler.Get)
	mux.HandleFunc("PATCH /v1/users/{userId}", userHandler.Update)
	mux.HandleFunc("DELETE /v1/users/{userId}", userHandler.Delete)
	mux.HandleFunc("PATCH /v1/users/{userId}/availability", userHandler.LinkAvailability)

	// Per-user availability endpoints
	mux.HandleFunc("POST /v1/users/{userId}/availability", availabilityHandler.CreateForUser)
	mux.HandleFunc("GET /v1/users/{userId}/availability", availabilityHandler.ListForUser)

	// Availability endpoints
	mux.HandleFunc("GET /v1/availability", availabilityHandler.List)
	mux.HandleFunc("GET /v1/availability/{availabilityId}", availabilityHandler.Get)
	mux.HandleFunc("PUT /v1/availability/{availabilityId}", availabilityHandler.Update)
	mux.HandleFunc("DELETE /v1/availability/{availabilityId}", availabilityHandler.Delete)

	// Game endpoints
	mux.HandleFunc("POST /v1/games", gameHandler.Create)
	mux.HandleFunc("GET /v1/games", gameHandler.List)
	mux.HandleFunc("DELETE /v1/games", gameHandler.BulkDelete)
	mux.HandleFunc("GET /v1/games/search", gameHandler.Search)
	mux.HandleFunc("GET /v1/games/{gameId}", gameHandler.Get)
	mux.HandleFunc("PATCH /v1/games/{gameId}", gameHandler.Update)
	mux.HandleFunc("DELETE /v1/games/{gameId}", gameHandler.Delete)
	mux.HandleFunc("PATCH /v1/games/{gameId}/players", gameHandler.UpdatePlayers)

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
