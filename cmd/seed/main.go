package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"medical-appointments-api/config"
	"medical-appointments-api/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	log := logrus.StandardLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.MigrateUp(cfg.DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB, database.LogLevelFor(cfg.App.Env))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newSeeder(db, log, cfg.Seed).Run(ctx); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	log.Info("Seed complete")
}
