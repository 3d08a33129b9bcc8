package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	_ "github.com/mongarerobert3/todo-list-api/docs" // Swagger docs (generated)
	"github.com/mongarerobert3/todo-list-api/internal/auth"
	"github.com/mongarerobert3/todo-list-api/internal/config"
	"github.com/mongarerobert3/todo-list-api/internal/database"
	httpServer "github.com/mongarerobert3/todo-list-api/internal/http"
	"github.com/mongarerobert3/todo-list-api/internal/logging"
	"github.com/mongarerobert3/todo-list-api/internal/task"
	"github.com/mongarerobert3/todo-list-api/internal/user"
)

// @title           To-Do List API
// @version         1.0
// @description     A task-tracking REST API with token-based authentication and per-user task lists.

// @contact.name   API Support
// @contact.email  mongarerobert3@gmail.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	db, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	redisClient, err := initRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	// Repositories and cache
	userRepo := user.NewRepository(db)
	taskRepo := task.NewRepository(db)
	taskCache := task.NewRedisCache(redisClient)

	// Token service
	tokenService, err := auth.NewPasetoService(cfg.Auth.TokenKey)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Services
	authService := auth.NewService(userRepo, tokenService, logger, cfg.Auth.TokenDuration)
	taskService := task.NewService(taskRepo, taskCache, logger)

	// HTTP handlers and middleware
	authHandler := auth.NewHandler(authService, logger)
	authMiddleware := auth.NewMiddleware(tokenService)
	taskHandler := task.NewHandler(taskService, logger)

	router := httpServer.NewRouter(cfg, authHandler, authMiddleware, taskHandler, logger)

	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initDB initializes the database connection and returns a Bun DB instance
func initDB(cfg config.DatabaseConfig) (*bun.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return database.NewBunDB(sqlDB), nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
