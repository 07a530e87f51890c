package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"qbank/internal/cache"
	"qbank/internal/config"
	"qbank/internal/domain"
	"qbank/internal/logger"
	"qbank/internal/util"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultLockTTL  = 10 * time.Minute
	statusRetention = 24 * time.Hour
)

type StartMigrationInput struct {
	BatchSize int
	DryRun    bool
	// Resume continues after the last cursor committed by a previous run.
	Resume bool
}

// MigrationRunner drives MigrationSteps in the background, one run at a time.
// Status lives in memory and is mirrored to a Redis hash so other processes
// can read it.
type MigrationRunner struct {
	steps *MigrationSteps
	lock  domain.RunLock
	cache domain.Cache
	cfg   config.MigrationConfig

	mu     sync.Mutex
	runs   map[string]*migrationRun
	active string
}

type migrationRun struct {
	mu        sync.Mutex
	status    domain.MigrationStatus
	cancelled atomic.Bool
	done      chan struct{}
}

func (r *migrationRun) snapshot() *domain.MigrationStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.status
	s.Errors = append([]domain.ItemError(nil), r.status.Errors...)
	return &s
}

func NewMigrationRunner(steps *MigrationSteps, lock domain.RunLock, c domain.Cache, cfg config.MigrationConfig) *MigrationRunner {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultLockTTL
	}
	return &MigrationRunner{
		steps: steps,
		lock:  lock,
		cache: c,
		cfg:   cfg,
		runs:  make(map[string]*migrationRun),
	}
}

// Start launches a run and returns its handle. It refuses while another run
// is active in this process or holds the shared lock.
func (r *MigrationRunner) Start(ctx context.Context, in StartMigrationInput) (string, error) {
	size := in.BatchSize
	if size <= 0 {
		size = r.cfg.BatchSize
	}
	if size <= 0 {
		return "", domain.NewInvalidArgumentError("batch size must be positive")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != "" {
		return "", domain.NewConflictError("a migration run is already active").WithContext("handle", r.active)
	}

	handle := util.NewULID()
	ok, err := r.lock.Acquire(ctx, handle, r.cfg.LockTTL)
	if err != nil {
		return "", domain.NewInternalError("Failed to acquire migration lock", err)
	}
	if !ok {
		return "", domain.NewConflictError("a migration run is already active in another process")
	}

	initial, err := r.steps.CountPending(ctx)
	if err != nil {
		r.releaseLock(ctx, handle)
		return "", err
	}

	cursor := domain.StartCursor
	if in.Resume {
		cursor = r.loadCursor(ctx)
	}

	run := &migrationRun{
		status: domain.MigrationStatus{
			Handle:       handle,
			State:        domain.MigrationRunning,
			DryRun:       in.DryRun,
			BatchSize:    size,
			InitialCount: initial,
			Errors:       []domain.ItemError{},
			Cursor:       cursor.String(),
			StartedAt:    time.Now(),
		},
		done: make(chan struct{}),
	}
	r.runs[handle] = run
	r.active = handle
	r.mirror(ctx, run.snapshot())

	logger.Get().Info("Taxonomy migration started",
		zap.String("handle", handle),
		zap.Bool("dryRun", in.DryRun),
		zap.Int("batchSize", size),
		zap.Int64("pending", initial),
		zap.String("cursor", cursor.String()))

	go r.execute(context.WithoutCancel(ctx), handle, run, cursor)
	return handle, nil
}

// Status reads a run from memory, or from the shared hash when another process owns it.
func (r *MigrationRunner) Status(ctx context.Context, handle string) (*domain.MigrationStatus, error) {
	r.mu.Lock()
	run, ok := r.runs[handle]
	r.mu.Unlock()
	if ok {
		return run.snapshot(), nil
	}

	fields, err := r.cache.HGetAll(ctx, cache.MigrationRunKey(handle))
	if errors.Is(err, domain.ErrCacheMiss) {
		return nil, domain.NewNotFoundError("migration run not found: " + handle)
	}
	if err != nil {
		return nil, domain.NewInternalError("Failed to read migration status", err)
	}
	return statusFromHash(handle, fields)
}

// Cancel stops scheduling further batches. The batch in flight completes.
func (r *MigrationRunner) Cancel(ctx context.Context, handle string) error {
	r.mu.Lock()
	run, ok := r.runs[handle]
	r.mu.Unlock()
	if ok {
		run.cancelled.Store(true)
		return nil
	}

	status, err := r.Status(ctx, handle)
	if err != nil {
		return err
	}
	if status.Done {
		return nil
	}
	return domain.NewConflictError("migration run is owned by another process")
}

// Wait blocks until a run started by this process finishes.
func (r *MigrationRunner) Wait(ctx context.Context, handle string) (*domain.MigrationStatus, error) {
	r.mu.Lock()
	run, ok := r.runs[handle]
	r.mu.Unlock()
	if !ok {
		return nil, domain.NewNotFoundError("migration run not found: " + handle)
	}
	select {
	case <-run.done:
		return run.snapshot(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *MigrationRunner) execute(ctx context.Context, handle string, run *migrationRun, cursor domain.Cursor) {
	defer close(run.done)

	limiter := rate.NewLimiter(rate.Inf, 1)
	if r.cfg.BatchDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(r.cfg.BatchDelay), 1)
	}
	status := run.snapshot()

	for {
		if run.cancelled.Load() {
			r.finish(ctx, handle, run, domain.MigrationCancelled, "")
			return
		}
		if err := limiter.Wait(ctx); err != nil {
			r.finish(ctx, handle, run, domain.MigrationFailed, err.Error())
			return
		}
		if run.cancelled.Load() {
			r.finish(ctx, handle, run, domain.MigrationCancelled, "")
			return
		}

		res, err := r.steps.ProcessBatch(ctx, cursor, status.BatchSize, status.DryRun)
		if err != nil {
			logger.Get().Error("Taxonomy migration batch failed", zap.String("handle", handle), zap.String("cursor", cursor.String()), zap.Error(err))
			r.finish(ctx, handle, run, domain.MigrationFailed, err.Error())
			return
		}
		cursor = res.NextCursor

		r.record(run, res)
		if !status.DryRun && res.Processed > 0 {
			if err := r.cache.Set(ctx, cache.MigrationCursorKey(), cursor.After(), 0); err != nil {
				logger.Get().Warn("Failed to persist migration cursor", zap.String("cursor", cursor.String()), zap.Error(err))
			}
		}
		if err := r.lock.Refresh(ctx, handle, r.cfg.LockTTL); err != nil {
			logger.Get().Warn("Failed to refresh migration lock", zap.String("handle", handle), zap.Error(err))
		}
		r.mirror(ctx, run.snapshot())

		if res.Exhausted {
			break
		}
	}

	remaining, err := r.steps.Verify(ctx)
	if err != nil {
		r.finish(ctx, handle, run, domain.MigrationFailed, err.Error())
		return
	}
	run.mu.Lock()
	run.status.Remaining = remaining
	run.status.Converged = remaining == 0
	run.mu.Unlock()

	if !status.DryRun {
		if err := r.cache.Delete(ctx, cache.MigrationCursorKey()); err != nil {
			logger.Get().Warn("Failed to clear migration cursor", zap.Error(err))
		}
	}
	r.finish(ctx, handle, run, domain.MigrationCompleted, "")
}

func (r *MigrationRunner) record(run *migrationRun, res *domain.BatchResult) {
	run.mu.Lock()
	defer run.mu.Unlock()

	s := &run.status
	s.Batches++
	s.Processed += res.Processed
	s.Updated += res.Updated
	s.ErrorCount += len(res.Errors)
	for _, e := range res.Errors {
		if r.cfg.MaxRecordedErrors > 0 && len(s.Errors) >= r.cfg.MaxRecordedErrors {
			break
		}
		s.Errors = append(s.Errors, e)
	}
	s.Cursor = res.NextCursor.String()
}

func (r *MigrationRunner) finish(ctx context.Context, handle string, run *migrationRun, state domain.MigrationState, reason string) {
	now := time.Now()
	run.mu.Lock()
	run.status.State = state
	run.status.Done = true
	run.status.FailureReason = reason
	run.status.FinishedAt = &now
	run.mu.Unlock()

	final := run.snapshot()
	r.mirror(ctx, final)
	r.releaseLock(ctx, handle)

	r.mu.Lock()
	if r.active == handle {
		r.active = ""
	}
	r.mu.Unlock()

	logger.Get().Info("Taxonomy migration finished",
		zap.String("handle", handle),
		zap.String("state", string(state)),
		zap.Int("processed", final.Processed),
		zap.Int("updated", final.Updated),
		zap.Int("errors", final.ErrorCount),
		zap.Int64("remaining", final.Remaining),
		zap.String("reason", reason))
}

func (r *MigrationRunner) releaseLock(ctx context.Context, handle string) {
	if err := r.lock.Release(ctx, handle); err != nil {
		logger.Get().Warn("Failed to release migration lock", zap.String("handle", handle), zap.Error(err))
	}
}

func (r *MigrationRunner) loadCursor(ctx context.Context) domain.Cursor {
	after, err := r.cache.Get(ctx, cache.MigrationCursorKey())
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Failed to load migration cursor, starting from the beginning", zap.Error(err))
		}
		return domain.StartCursor
	}
	return domain.CursorAfter(after)
}

func (r *MigrationRunner) mirror(ctx context.Context, s *domain.MigrationStatus) {
	fields, err := statusToHash(s)
	if err != nil {
		logger.Get().Error("Failed to encode migration status", zap.Error(err))
		return
	}
	if err := r.cache.HSetAll(ctx, cache.MigrationRunKey(s.Handle), fields, statusRetention); err != nil {
		logger.Get().Warn("Failed to mirror migration status", zap.String("handle", s.Handle), zap.Error(err))
	}
}

func statusToHash(s *domain.MigrationStatus) (map[string]string, error) {
	errs, err := json.Marshal(s.Errors)
	if err != nil {
		return nil, err
	}
	fields := map[string]string{
		"state":          string(s.State),
		"dry_run":        strconv.FormatBool(s.DryRun),
		"batch_size":     strconv.Itoa(s.BatchSize),
		"initial_count":  strconv.FormatInt(s.InitialCount, 10),
		"processed":      strconv.Itoa(s.Processed),
		"updated":        strconv.Itoa(s.Updated),
		"error_count":    strconv.Itoa(s.ErrorCount),
		"errors":         string(errs),
		"batches":        strconv.Itoa(s.Batches),
		"cursor":         s.Cursor,
		"remaining":      strconv.FormatInt(s.Remaining, 10),
		"converged":      strconv.FormatBool(s.Converged),
		"done":           strconv.FormatBool(s.Done),
		"failure_reason": s.FailureReason,
		"started_at":     s.StartedAt.Format(time.RFC3339Nano),
	}
	if s.FinishedAt != nil {
		fields["finished_at"] = s.FinishedAt.Format(time.RFC3339Nano)
	}
	return fields, nil
}

func statusFromHash(handle string, f map[string]string) (*domain.MigrationStatus, error) {
	s := &domain.MigrationStatus{
		Handle:        handle,
		State:         domain.MigrationState(f["state"]),
		Cursor:        f["cursor"],
		FailureReason: f["failure_reason"],
		Errors:        []domain.ItemError{},
	}
	s.DryRun, _ = strconv.ParseBool(f["dry_run"])
	s.BatchSize, _ = strconv.Atoi(f["batch_size"])
	s.InitialCount, _ = strconv.ParseInt(f["initial_count"], 10, 64)
	s.Processed, _ = strconv.Atoi(f["processed"])
	s.Updated, _ = strconv.Atoi(f["updated"])
	s.ErrorCount, _ = strconv.Atoi(f["error_count"])
	s.Batches, _ = strconv.Atoi(f["batches"])
	s.Remaining, _ = strconv.ParseInt(f["remaining"], 10, 64)
	s.Converged, _ = strconv.ParseBool(f["converged"])
	s.Done, _ = strconv.ParseBool(f["done"])
	if raw := f["errors"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.Errors); err != nil {
			return nil, domain.NewInternalError("Failed to decode migration errors", err)
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, f["started_at"]); err == nil {
		s.StartedAt = t
	}
	if raw, ok := f["finished_at"]; ok {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			s.FinishedAt = &t
		}
	}
	return s, nil
}
