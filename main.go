// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"luminacine/cmd"
	"luminacine/internal/checkout"
	"luminacine/internal/data/repository"
	"luminacine/internal/usecase"
	"luminacine/internal/wire"
	"luminacine/pkg/backend"
	"luminacine/pkg/database"
	"luminacine/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("backend", config.Backend.BaseURL),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.InitialiseSchema(ctx, db); err != nil {
		logger.Fatal("Failed to initialise schema", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	// catalog cache is optional
	rdb := database.NewRedisClient(ctx, config.Redis, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	sealer, err := utils.NewSealer(config.Session.Secret)
	if err != nil {
		logger.Fatal("Failed to init token sealer", zap.Error(err))
	}

	api := backend.NewClient(config.Backend, logger)
	repos := repository.NewRepository(db, api, rdb, config, logger)
	checkouts := checkout.NewStore(time.Duration(config.Checkout.FlowTTLMinutes) * time.Minute)
	service := usecase.NewService(repos, sealer, checkouts, config, logger)

	// Wire all dependencies
	app := wire.Wiring(service, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, app.Service, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
