package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"qbank/internal/config"
	"qbank/internal/domain"
	"qbank/internal/logger"
	"qbank/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const reseedTimeout = 2 * time.Minute

// ReconcileResult reports an explicit counter verification.
type ReconcileResult struct {
	Namespace string `json:"namespace"`
	Counted   int64  `json:"counted"`
	Scanned   int64  `json:"scanned"`
	Missing   bool   `json:"missing"`
	Reseeded  bool   `json:"reseeded"`
}

// CountingService answers namespace counts from the aggregate counter and
// falls back to an index-scoped scan when the counter is missing, failing or
// disagrees with a verification recount.
type CountingService struct {
	counter     domain.AggregateCounter
	questions   domain.QuestionRepository
	verifyEvery uint64
	reads       atomic.Uint64
	reseeds     singleflight.Group
	// spawn runs background reseeds. Tests replace it to run inline.
	spawn func(func())
}

func NewCountingService(counter domain.AggregateCounter, questions domain.QuestionRepository, cfg config.EngineConfig) *CountingService {
	verify := uint64(0)
	if cfg.CounterVerifyEvery > 0 {
		verify = uint64(cfg.CounterVerifyEvery)
	}
	return &CountingService{
		counter:     counter,
		questions:   questions,
		verifyEvery: verify,
		spawn:       func(fn func()) { go fn() },
	}
}

// Count returns the number of questions in ns created within bounds.
func (s *CountingService) Count(ctx context.Context, ns domain.Namespace, bounds *domain.CountBounds) (int64, error) {
	counted, err := s.counter.Count(ctx, ns, bounds)
	if err != nil {
		reason := "error"
		if errors.Is(err, domain.ErrCounterMiss) {
			reason = "miss"
		}
		metrics.CounterFallbacks.WithLabelValues(reason).Inc()
		logger.Get().Warn("Aggregate counter unavailable, falling back to index scan",
			zap.String("namespace", ns.String()),
			zap.String("reason", reason),
			zap.Error(err))

		scanned, scanErr := s.scan(ctx, ns, bounds)
		if scanErr != nil {
			return 0, scanErr
		}
		if reason == "miss" {
			s.reseedInBackground(ctx, ns)
		}
		return scanned, nil
	}

	if s.verifyEvery == 0 || s.reads.Add(1)%s.verifyEvery != 0 {
		return counted, nil
	}

	scanned, err := s.scan(ctx, ns, bounds)
	if err != nil {
		// The counter answer stands when verification itself fails.
		logger.Get().Warn("Counter verification scan failed", zap.String("namespace", ns.String()), zap.Error(err))
		return counted, nil
	}
	if scanned != counted {
		s.reportInconsistency(ns, counted, scanned)
		s.reseedInBackground(ctx, ns)
		return scanned, nil
	}
	return counted, nil
}

// Reconcile verifies ns against a full recount and reseeds it when the two differ
// or the aggregate is missing.
func (s *CountingService) Reconcile(ctx context.Context, ns domain.Namespace) (*ReconcileResult, error) {
	result := &ReconcileResult{Namespace: ns.String()}

	counted, err := s.counter.Count(ctx, ns, nil)
	switch {
	case errors.Is(err, domain.ErrCounterMiss):
		result.Missing = true
	case err != nil:
		return nil, domain.NewInternalError("Failed to read aggregate counter", err)
	default:
		result.Counted = counted
	}

	scanned, err := s.scan(ctx, ns, nil)
	if err != nil {
		return nil, err
	}
	result.Scanned = scanned

	if result.Missing || scanned != counted {
		if !result.Missing {
			s.reportInconsistency(ns, counted, scanned)
		}
		if err := s.Reseed(ctx, ns); err != nil {
			return nil, err
		}
		result.Reseeded = true
	}
	return result, nil
}

// Reseed rebuilds the aggregate of ns from the question store.
func (s *CountingService) Reseed(ctx context.Context, ns domain.Namespace) error {
	refs, err := s.questions.ListRefsInNamespace(ctx, ns)
	if err != nil {
		return domain.NewInternalError("Failed to scan namespace for reseed", err)
	}
	if err := s.counter.Reseed(ctx, ns, refs); err != nil {
		return domain.NewInternalError("Failed to reseed aggregate counter", err)
	}
	logger.Get().Info("Aggregate counter reseeded", zap.String("namespace", ns.String()), zap.Int("questions", len(refs)))
	return nil
}

// Seed marks the aggregate of a new namespace authoritative. Questions that
// reached it between the node insert and this call stay counted.
func (s *CountingService) Seed(ctx context.Context, ns domain.Namespace) {
	if err := s.counter.Init(ctx, ns); err != nil {
		logger.Get().Warn("Failed to seed aggregate counter", zap.String("namespace", ns.String()), zap.Error(err))
	}
}

// Drop forgets the aggregate of a deleted namespace.
func (s *CountingService) Drop(ctx context.Context, ns domain.Namespace) {
	if err := s.counter.Drop(ctx, ns); err != nil {
		logger.Get().Warn("Failed to drop aggregate counter", zap.String("namespace", ns.String()), zap.Error(err))
	}
}

// OnInsert and OnDelete run after the store write has committed; counter
// failures are logged and left for verification to repair.
func (s *CountingService) OnInsert(ctx context.Context, q *domain.Question) {
	if err := s.counter.OnInsert(ctx, q); err != nil {
		logger.Get().Error("Failed to record question in aggregate counters", zap.String("questionID", q.ID), zap.Error(err))
	}
}

func (s *CountingService) OnDelete(ctx context.Context, q *domain.Question) {
	if err := s.counter.OnDelete(ctx, q); err != nil {
		logger.Get().Error("Failed to remove question from aggregate counters", zap.String("questionID", q.ID), zap.Error(err))
	}
}

// CountStored counts through the store index only. Checks that must not act
// on a stale aggregate use it instead of Count.
func (s *CountingService) CountStored(ctx context.Context, ns domain.Namespace) (int64, error) {
	return s.scan(ctx, ns, nil)
}

func (s *CountingService) scan(ctx context.Context, ns domain.Namespace, bounds *domain.CountBounds) (int64, error) {
	n, err := s.questions.CountInNamespace(ctx, ns, bounds)
	if err != nil {
		return 0, domain.NewInternalError("Failed to count questions", err)
	}
	return n, nil
}

func (s *CountingService) reportInconsistency(ns domain.Namespace, counted, scanned int64) {
	kind := "over"
	if counted < scanned {
		kind = "under"
	}
	metrics.CounterInconsistencies.WithLabelValues(kind).Inc()
	logger.Get().Warn("Aggregate counter inconsistency detected",
		zap.Error(domain.NewInconsistencyError(ns.String(), counted, scanned)),
		zap.String("namespace", ns.String()),
		zap.Int64("counted", counted),
		zap.Int64("scanned", scanned))
}

// reseedInBackground collapses concurrent reseeds of one namespace.
func (s *CountingService) reseedInBackground(ctx context.Context, ns domain.Namespace) {
	bg := context.WithoutCancel(ctx)
	s.spawn(func() {
		_, _, _ = s.reseeds.Do(ns.Key(), func() (interface{}, error) {
			rctx, cancel := context.WithTimeout(bg, reseedTimeout)
			defer cancel()
			if err := s.Reseed(rctx, ns); err != nil {
				logger.Get().Error("Background counter reseed failed", zap.String("namespace", ns.String()), zap.Error(err))
				return nil, err
			}
			return nil, nil
		})
	})
}
