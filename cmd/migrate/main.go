// Command migrate brings the database schema up to date. The deploy pipeline
// runs it once per release before the service layer starts.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/avollmer/userd/internal/config"
	"github.com/avollmer/userd/internal/logger"
	"github.com/avollmer/userd/internal/repository/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	// NewConnection waits for the database and applies embedded migrations.
	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		logger.Fatal("database did not answer after migration", "error", err)
	}

	logger.Info("database schema is up to date")
}
