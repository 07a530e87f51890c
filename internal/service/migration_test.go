package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"qbank/internal/cache"
	"qbank/internal/config"
	"qbank/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// legacyStore is the scenario bank plus a few broken legacy rows.
func legacyStore() *memStore {
	s := scenarioStore()
	s.addNode("t2", "Other theme", nil)
	s.addQuestions(1, "", "", "")       // missing theme
	s.addQuestions(1, "t", "ghost", "") // unknown node
	s.addQuestions(1, "t", "g1", "")    // wrong node type
	s.addQuestions(1, "t2", "s1", "g1") // broken chain
	return s
}

func TestMigrationSteps_DryRunIsRepeatable(t *testing.T) {
	store := legacyStore()
	steps := NewMigrationSteps(memQuestionRepo{store}, memTaxonomyRepo{store})
	ctx := context.Background()

	first, err := steps.ProcessBatch(ctx, domain.StartCursor, 20, true)
	require.NoError(t, err)
	second, err := steps.ProcessBatch(ctx, domain.StartCursor, 20, true)
	require.NoError(t, err)

	assert.Equal(t, first.Processed, second.Processed)
	assert.Equal(t, first.Updated, second.Updated)
	assert.Equal(t, first.NextCursor, second.NextCursor)
	assert.Equal(t, 20, first.Processed)
	assert.False(t, first.Exhausted)

	pending, err := steps.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(29), pending, "dry run writes nothing")
}

func TestMigrationSteps_ResumeFromCursorIsDisjoint(t *testing.T) {
	store := legacyStore()
	steps := NewMigrationSteps(memQuestionRepo{store}, memTaxonomyRepo{store})
	ctx := context.Background()

	first, err := steps.ProcessBatch(ctx, domain.StartCursor, 12, false)
	require.NoError(t, err)
	firstIDs := migratedSince(store, nil)

	second, err := steps.ProcessBatch(ctx, first.NextCursor, 12, false)
	require.NoError(t, err)
	secondIDs := migratedSince(store, firstIDs)

	assert.Equal(t, 12, first.Processed)
	assert.Equal(t, 12, second.Processed)
	assert.Len(t, firstIDs, first.Updated)
	assert.Len(t, secondIDs, second.Updated)
	for id := range secondIDs {
		assert.NotContains(t, firstIDs, id)
		assert.Greater(t, id, first.NextCursor.After())
	}
}

func migratedSince(store *memStore, before map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for id, q := range store.questions {
		if q.TaxonomyID == "" {
			continue
		}
		if _, seen := before[id]; !seen {
			out[id] = struct{}{}
		}
	}
	return out
}

func TestMigrationSteps_ItemErrorsAndPaths(t *testing.T) {
	store := legacyStore()
	steps := NewMigrationSteps(memQuestionRepo{store}, memTaxonomyRepo{store})
	ctx := context.Background()

	res, err := steps.ProcessBatch(ctx, domain.StartCursor, 100, false)
	require.NoError(t, err)
	assert.True(t, res.Exhausted)
	assert.Equal(t, 29, res.Processed)
	assert.Equal(t, 25, res.Updated)
	require.Len(t, res.Errors, 4)

	reasons := make([]string, len(res.Errors))
	for i, e := range res.Errors {
		reasons[i] = e.Reason
	}
	assert.Contains(t, reasons[0], "missing theme")
	assert.Contains(t, reasons[1], "not found")
	assert.Contains(t, reasons[2], "wrong node type")
	assert.Contains(t, reasons[3], "broken chain")

	for _, q := range store.questions {
		switch {
		case q.TaxonomyID == "":
		case q.GroupID != "":
			assert.Equal(t, []string{q.ThemeID, q.SubthemeID, q.GroupID}, q.TaxonomyPath)
			assert.Equal(t, q.GroupID, q.TaxonomyID)
		case q.SubthemeID != "":
			assert.Equal(t, []string{q.ThemeID, q.SubthemeID}, q.TaxonomyPath)
		default:
			assert.Equal(t, []string{q.ThemeID}, q.TaxonomyPath)
		}
	}

	remaining, err := steps.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), remaining)
}

func TestMigrationSteps_StoreErrorAborts(t *testing.T) {
	pending := new(MockMigrationRepository)
	nodes := new(MockTaxonomyRepository)
	steps := NewMigrationSteps(pending, nodes)

	rows := []domain.PendingQuestion{{ID: "q1", ThemeID: "t"}}
	pending.On("ListPending", mock.Anything, domain.StartCursor, 10).Return(rows, nil)
	nodes.On("GetByIDs", mock.Anything, []string{"t"}).
		Return(map[string]*domain.TaxonomyNode{"t": {ID: "t", Type: domain.NodeTypeTheme}}, nil)
	pending.On("SetTaxonomyReference", mock.Anything, "q1", "t", []string{"t"}).Return(errors.New("ORA-03113"))

	_, err := steps.ProcessBatch(context.Background(), domain.StartCursor, 10, false)
	assert.True(t, domain.IsCode(err, domain.CodeInternal))
}

func newTestRunner(store *memStore, c *memCache, lock domain.RunLock, batch int) *MigrationRunner {
	return NewMigrationRunner(
		NewMigrationSteps(memQuestionRepo{store}, memTaxonomyRepo{store}),
		lock, c,
		config.MigrationConfig{BatchSize: batch, MaxRecordedErrors: 2, LockTTL: time.Minute},
	)
}

func TestMigrationRunner_RunsToCompletion(t *testing.T) {
	store := legacyStore()
	c := newMemCache()
	lock := &memRunLock{}
	r := newTestRunner(store, c, lock, 7)
	ctx := context.Background()

	handle, err := r.Start(ctx, StartMigrationInput{})
	require.NoError(t, err)

	status, err := r.Wait(ctx, handle)
	require.NoError(t, err)
	assert.Equal(t, domain.MigrationCompleted, status.State)
	assert.True(t, status.Done)
	assert.Equal(t, int64(29), status.InitialCount)
	assert.Equal(t, 29, status.Processed)
	assert.Equal(t, 25, status.Updated)
	assert.Equal(t, 4, status.ErrorCount)
	assert.Len(t, status.Errors, 2, "recorded errors are capped")
	assert.Equal(t, 5, status.Batches)
	assert.Equal(t, int64(4), status.Remaining)
	assert.False(t, status.Converged)
	assert.Empty(t, lock.owner, "lock is released")

	_, err = c.Get(ctx, cache.MigrationCursorKey())
	assert.ErrorIs(t, err, domain.ErrCacheMiss, "cursor is cleared after completion")

	mirrored, err := statusFromHash(handle, c.hashes[cache.MigrationRunKey(handle)])
	require.NoError(t, err)
	assert.Equal(t, status.Processed, mirrored.Processed)
	assert.Equal(t, status.State, mirrored.State)
	assert.Equal(t, status.Errors, mirrored.Errors)
}

func TestMigrationRunner_RefusesConcurrentRuns(t *testing.T) {
	store := legacyStore()
	lock := &memRunLock{owner: "someone-else"}
	r := newTestRunner(store, newMemCache(), lock, 5)

	_, err := r.Start(context.Background(), StartMigrationInput{})
	assert.True(t, domain.IsCode(err, domain.CodeConflict))

	r.active = "in-process"
	lock.owner = ""
	_, err = r.Start(context.Background(), StartMigrationInput{})
	assert.True(t, domain.IsCode(err, domain.CodeConflict))
}

func TestMigrationRunner_CancelStopsBetweenBatchesAndResumes(t *testing.T) {
	store := legacyStore()
	c := newMemCache()
	lock := &memRunLock{}
	r := NewMigrationRunner(
		NewMigrationSteps(memQuestionRepo{store}, memTaxonomyRepo{store}),
		lock, c,
		config.MigrationConfig{BatchSize: 5, BatchDelay: 50 * time.Millisecond, LockTTL: time.Minute},
	)
	ctx := context.Background()

	handle, err := r.Start(ctx, StartMigrationInput{})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		s, _ := r.Status(ctx, handle)
		return s.Batches >= 1
	}, time.Second, time.Millisecond)
	require.NoError(t, r.Cancel(ctx, handle))

	status, err := r.Wait(ctx, handle)
	require.NoError(t, err)
	assert.Equal(t, domain.MigrationCancelled, status.State)
	assert.Less(t, status.Processed, 29)
	assert.Zero(t, status.Processed%5, "cancellation never splits a batch")

	cursor, err := c.Get(ctx, cache.MigrationCursorKey())
	require.NoError(t, err)
	assert.Equal(t, status.Cursor, cursor)

	r.cfg.BatchDelay = 0
	resumed, err := r.Start(ctx, StartMigrationInput{Resume: true})
	require.NoError(t, err)
	final, err := r.Wait(ctx, resumed)
	require.NoError(t, err)
	assert.Equal(t, domain.MigrationCompleted, final.State)
	assert.Equal(t, 29-status.Processed, final.Processed, "resume continues after the committed cursor")
}

func TestMigrationRunner_StatusAndCancelUnknown(t *testing.T) {
	r := newTestRunner(newMemStore(), newMemCache(), &memRunLock{}, 5)
	_, err := r.Status(context.Background(), "nope")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	err = r.Cancel(context.Background(), "nope")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestMigrationRunner_StoreFailureMarksRunFailed(t *testing.T) {
	pending := new(MockMigrationRepository)
	pending.On("CountPending", mock.Anything).Return(int64(3), nil)
	pending.On("ListPending", mock.Anything, domain.StartCursor, 5).Return(nil, errors.New("ORA-12541"))

	lock := &memRunLock{}
	r := NewMigrationRunner(NewMigrationSteps(pending, new(MockTaxonomyRepository)), lock, newMemCache(), config.MigrationConfig{BatchSize: 5})
	handle, err := r.Start(context.Background(), StartMigrationInput{})
	require.NoError(t, err)

	status, err := r.Wait(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, domain.MigrationFailed, status.State)
	assert.NotEmpty(t, status.FailureReason)
	assert.Empty(t, lock.owner)
}
