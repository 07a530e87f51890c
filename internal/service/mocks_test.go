package service

import (
	"context"
	"time"

	"qbank/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockTaxonomyRepository ---
type MockTaxonomyRepository struct {
	mock.Mock
}

func (m *MockTaxonomyRepository) GetByID(ctx context.Context, id string) (*domain.TaxonomyNode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxonomyNode), args.Error(1)
}

func (m *MockTaxonomyRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.TaxonomyNode, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.TaxonomyNode), args.Error(1)
}

func (m *MockTaxonomyRepository) ListAll(ctx context.Context) ([]*domain.TaxonomyNode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TaxonomyNode), args.Error(1)
}

func (m *MockTaxonomyRepository) FindChildByName(ctx context.Context, parentID, name string) (*domain.TaxonomyNode, error) {
	args := m.Called(ctx, parentID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxonomyNode), args.Error(1)
}

func (m *MockTaxonomyRepository) CountChildren(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaxonomyRepository) ListDescendants(ctx context.Context, id string) ([]*domain.TaxonomyNode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TaxonomyNode), args.Error(1)
}

func (m *MockTaxonomyRepository) Create(ctx context.Context, node *domain.TaxonomyNode) error {
	args := m.Called(ctx, node)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) Update(ctx context.Context, node *domain.TaxonomyNode) error {
	args := m.Called(ctx, node)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) UpdatePathNames(ctx context.Context, id string, pathNames []string) error {
	args := m.Called(ctx, id, pathNames)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) CountInNamespace(ctx context.Context, ns domain.Namespace, bounds *domain.CountBounds) (int64, error) {
	args := m.Called(ctx, ns, bounds)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestionRepository) ListRefsInNamespace(ctx context.Context, ns domain.Namespace) ([]domain.QuestionRef, error) {
	args := m.Called(ctx, ns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestionRef), args.Error(1)
}

func (m *MockQuestionRepository) FilterExisting(ctx context.Context, ids []string) ([]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- MockMigrationRepository ---
type MockMigrationRepository struct {
	mock.Mock
}

func (m *MockMigrationRepository) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMigrationRepository) ListPending(ctx context.Context, after domain.Cursor, limit int) ([]domain.PendingQuestion, error) {
	args := m.Called(ctx, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingQuestion), args.Error(1)
}

func (m *MockMigrationRepository) SetTaxonomyReference(ctx context.Context, questionID, taxonomyID string, path []string) error {
	args := m.Called(ctx, questionID, taxonomyID, path)
	return args.Error(0)
}

// --- MockSessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, s *domain.QuizSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) ListCompletedByUser(ctx context.Context, userID string, limit int) ([]*domain.QuizSession, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizSession), args.Error(1)
}

// --- MockBookmarkRepository ---
type MockBookmarkRepository struct {
	mock.Mock
}

func (m *MockBookmarkRepository) ListQuestionIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- MockCustomQuizRepository ---
type MockCustomQuizRepository struct {
	mock.Mock
}

func (m *MockCustomQuizRepository) Create(ctx context.Context, quiz *domain.CustomQuiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockCustomQuizRepository) GetByID(ctx context.Context, id string) (*domain.CustomQuiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomQuiz), args.Error(1)
}

func (m *MockCustomQuizRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomQuizRepository) CountFiltersReferencing(ctx context.Context, nodeID string) (int64, error) {
	args := m.Called(ctx, nodeID)
	return args.Get(0).(int64), args.Error(1)
}

// --- MockAggregateCounter ---
type MockAggregateCounter struct {
	mock.Mock
}

func (m *MockAggregateCounter) Count(ctx context.Context, ns domain.Namespace, bounds *domain.CountBounds) (int64, error) {
	args := m.Called(ctx, ns, bounds)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAggregateCounter) OnInsert(ctx context.Context, q *domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockAggregateCounter) OnDelete(ctx context.Context, q *domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockAggregateCounter) Reseed(ctx context.Context, ns domain.Namespace, refs []domain.QuestionRef) error {
	args := m.Called(ctx, ns, refs)
	return args.Error(0)
}

func (m *MockAggregateCounter) Init(ctx context.Context, ns domain.Namespace) error {
	args := m.Called(ctx, ns)
	return args.Error(0)
}

func (m *MockAggregateCounter) Drop(ctx context.Context, ns domain.Namespace) error {
	args := m.Called(ctx, ns)
	return args.Error(0)
}

// --- MockRunLock ---
type MockRunLock struct {
	mock.Mock
}

func (m *MockRunLock) Acquire(ctx context.Context, owner string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, owner, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockRunLock) Refresh(ctx context.Context, owner string, ttl time.Duration) error {
	args := m.Called(ctx, owner, ttl)
	return args.Error(0)
}

func (m *MockRunLock) Release(ctx context.Context, owner string) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockCache) HSetAll(ctx context.Context, key string, values map[string]string, expiration time.Duration) error {
	args := m.Called(ctx, key, values, expiration)
	return args.Error(0)
}

// --- MockTransactionManager ---
type MockTransactionManager struct {
	mock.Mock
}

// WithTransaction runs fn directly; expectations are optional.
func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// inline makes background reseeds synchronous.
func inline(s *CountingService) *CountingService {
	s.spawn = func(fn func()) { fn() }
	return s
}
