package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"qbank/database/migrations"
	"qbank/internal/config"
	"qbank/internal/database"
	"qbank/internal/logger"

	"go.uber.org/zap"
)

func main() {
	var (
		down  = flag.Int("down", 0, "roll back this many migrations instead of migrating up")
		force = flag.Int("force", -1, "set the schema version without running anything and clear the dirty flag")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	migrator, err := database.NewMigrator(db, migrations.FS, ".")
	if err != nil {
		l.Fatal("Failed to open migrations", zap.Error(err))
	}
	defer migrator.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case *force >= 0:
		if err := migrator.Force(ctx, uint(*force)); err != nil {
			l.Fatal("Failed to force schema version", zap.Error(err))
		}
		l.Info("Schema version forced", zap.Int("version", *force))
	case *down > 0:
		n, err := migrator.Down(ctx, *down)
		if err != nil {
			l.Error("Rollback stopped", zap.Int("reverted", n), zap.Error(err))
			os.Exit(1)
		}
		l.Info("Rollback finished", zap.Int("reverted", n))
	default:
		n, err := migrator.Up(ctx)
		if err != nil {
			l.Error("Migration stopped", zap.Int("applied", n), zap.Error(err))
			os.Exit(1)
		}
		l.Info("Migrations applied", zap.Int("applied", n))
	}
}
