package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"qbank/internal/adapter"
	"qbank/internal/cache"
	"qbank/internal/config"
	"qbank/internal/database"
	"qbank/internal/domain"
	"qbank/internal/logger"
	"qbank/internal/repository"
	"qbank/internal/service"

	"go.uber.org/zap"
)

func main() {
	var (
		batchSize = flag.Int("batch", 0, "questions per batch (defaults to migration.batch_size)")
		dryRun    = flag.Bool("dry-run", false, "report what would change without writing")
		resume    = flag.Bool("resume", false, "continue after the last committed cursor")
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

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		l.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	runner := service.NewMigrationRunner(
		service.NewMigrationSteps(repository.NewSQLXQuestionRepository(db), repository.NewSQLXTaxonomyRepository(db)),
		adapter.NewRedisRunLock(redisClient),
		adapter.NewRedisCacheAdapter(redisClient),
		cfg.Migration,
	)

	ctx := context.Background()
	handle, err := runner.Start(ctx, service.StartMigrationInput{
		BatchSize: *batchSize,
		DryRun:    *dryRun,
		Resume:    *resume,
	})
	if err != nil {
		l.Fatal("Failed to start backfill", zap.Error(err))
	}

	// First signal asks the run to stop after the current batch.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		l.Info("Cancelling backfill after the current batch", zap.String("handle", handle))
		if err := runner.Cancel(ctx, handle); err != nil {
			l.Error("Failed to cancel backfill", zap.Error(err))
		}
	}()

	status, err := runner.Wait(ctx, handle)
	if err != nil {
		l.Fatal("Failed waiting for backfill", zap.Error(err))
	}

	l.Info("Backfill finished",
		zap.String("handle", status.Handle),
		zap.String("state", string(status.State)),
		zap.Int64("initial", status.InitialCount),
		zap.Int("processed", status.Processed),
		zap.Int("updated", status.Updated),
		zap.Int("errors", status.ErrorCount),
		zap.Int64("remaining", status.Remaining),
		zap.Bool("converged", status.Converged))
	for _, itemErr := range status.Errors {
		l.Warn("Question not migrated", zap.String("questionId", itemErr.QuestionID), zap.String("reason", itemErr.Reason))
	}

	if status.State == domain.MigrationFailed {
		os.Exit(1)
	}
}
