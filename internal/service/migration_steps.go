package service

import (
	"context"
	"errors"

	"qbank/internal/domain"
	"qbank/internal/logger"
	"qbank/internal/metrics"

	"go.uber.org/zap"
)

// MigrationSteps are the independently retryable steps of the taxonomy
// backfill. None of them keeps state between calls.
type MigrationSteps struct {
	pending domain.MigrationRepository
	nodes   domain.TaxonomyRepository
}

func NewMigrationSteps(pending domain.MigrationRepository, nodes domain.TaxonomyRepository) *MigrationSteps {
	return &MigrationSteps{pending: pending, nodes: nodes}
}

// CountPending counts questions still lacking the generalized reference.
func (m *MigrationSteps) CountPending(ctx context.Context) (int64, error) {
	n, err := m.pending.CountPending(ctx)
	if err != nil {
		return 0, domain.NewInternalError("Failed to count pending questions", err)
	}
	return n, nil
}

// ProcessBatch migrates up to batchSize pending questions after cursor.
// Bad records are reported per item; store errors abort the batch.
func (m *MigrationSteps) ProcessBatch(ctx context.Context, cursor domain.Cursor, batchSize int, dryRun bool) (*domain.BatchResult, error) {
	if batchSize <= 0 {
		return nil, domain.NewInvalidArgumentError("batch size must be positive")
	}

	rows, err := m.pending.ListPending(ctx, cursor, batchSize)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list pending questions", err)
	}

	result := &domain.BatchResult{
		NextCursor: cursor,
		Errors:     []domain.ItemError{},
		Exhausted:  len(rows) < batchSize,
	}
	if len(rows) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(rows)*3)
	for _, row := range rows {
		ids = append(ids, flatReference{ThemeID: row.ThemeID, SubthemeID: row.SubthemeID, GroupID: row.GroupID}.ids()...)
	}
	nodes, err := m.nodes.GetByIDs(ctx, ids)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load taxonomy nodes for batch", err)
	}

	for _, row := range rows {
		result.Processed++
		result.NextCursor = domain.CursorAfter(row.ID)

		leaf, err := resolveLeaf(flatReference{ThemeID: row.ThemeID, SubthemeID: row.SubthemeID, GroupID: row.GroupID}, nodes)
		if err != nil {
			result.Errors = append(result.Errors, domain.ItemError{QuestionID: row.ID, Reason: itemReason(err)})
			metrics.MigrationItems.WithLabelValues("failed").Inc()
			logger.Get().Warn("Skipping question during taxonomy backfill",
				zap.String("questionID", row.ID), zap.Error(err))
			continue
		}

		if !dryRun {
			if err := m.pending.SetTaxonomyReference(ctx, row.ID, leaf.ID, leafPath(leaf)); err != nil {
				return nil, domain.NewInternalError("Failed to write taxonomy reference", err)
			}
			metrics.MigrationItems.WithLabelValues("updated").Inc()
		} else {
			metrics.MigrationItems.WithLabelValues("dry_run").Inc()
		}
		result.Updated++
	}
	return result, nil
}

// Verify recomputes how many questions still need migration.
func (m *MigrationSteps) Verify(ctx context.Context) (int64, error) {
	return m.CountPending(ctx)
}

func itemReason(err error) string {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}
