package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-gudang/internal/config"
	"go-gudang/internal/model"
	"go-gudang/internal/server"
	"go-gudang/internal/service"
	"go-gudang/pkg/database"
	"go-gudang/pkg/logger"
	"go-gudang/pkg/rabbitmq"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", false)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	// 2. Setup Database
	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	if err := model.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// 3. Optional activity event publisher
	var publisher service.EventPublisher
	if cfg.RabbitMQURL != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer client.Close()
		publisher = client
		log.Info().Str("queue", rabbitmq.DefaultQueue).Msg("activity events enabled")
	}

	// 4. Setup Fiber
	app := server.New(server.Options{
		Config:    cfg,
		DB:        db,
		Log:       log,
		Publisher: publisher,
	})

	// 5. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
