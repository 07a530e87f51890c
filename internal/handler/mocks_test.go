package handler_test

import (
	"context"

	"qbank/internal/domain"
	"qbank/internal/service"
)

// --- Manual Mocks ---

type MockTaxonomyService struct {
	GetHierarchyFunc func(ctx context.Context) (*domain.Hierarchy, error)
	CreateFunc       func(ctx context.Context, in service.CreateTaxonomyNodeInput) (*domain.TaxonomyNode, error)
	RenameFunc       func(ctx context.Context, in service.RenameTaxonomyNodeInput) (*domain.TaxonomyNode, error)
	DeleteFunc       func(ctx context.Context, id string) error
}

func (m *MockTaxonomyService) GetHierarchy(ctx context.Context) (*domain.Hierarchy, error) {
	if m.GetHierarchyFunc != nil {
		return m.GetHierarchyFunc(ctx)
	}
	panic("MockTaxonomyService.GetHierarchyFunc not implemented")
}
func (m *MockTaxonomyService) Create(ctx context.Context, in service.CreateTaxonomyNodeInput) (*domain.TaxonomyNode, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	panic("MockTaxonomyService.CreateFunc not implemented")
}
func (m *MockTaxonomyService) Rename(ctx context.Context, in service.RenameTaxonomyNodeInput) (*domain.TaxonomyNode, error) {
	if m.RenameFunc != nil {
		return m.RenameFunc(ctx, in)
	}
	panic("MockTaxonomyService.RenameFunc not implemented")
}
func (m *MockTaxonomyService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	panic("MockTaxonomyService.DeleteFunc not implemented")
}

type MockQuestionQuerier struct {
	CountFunc   func(ctx context.Context, selection []domain.SelectionItem, mode domain.QuestionMode, userID string) (int64, error)
	ResolveFunc func(ctx context.Context, selection []domain.SelectionItem, mode domain.QuestionMode, userID string) ([]string, error)
}

func (m *MockQuestionQuerier) Count(ctx context.Context, selection []domain.SelectionItem, mode domain.QuestionMode, userID string) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, selection, mode, userID)
	}
	panic("MockQuestionQuerier.CountFunc not implemented")
}
func (m *MockQuestionQuerier) Resolve(ctx context.Context, selection []domain.SelectionItem, mode domain.QuestionMode, userID string) ([]string, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, selection, mode, userID)
	}
	panic("MockQuestionQuerier.ResolveFunc not implemented")
}

type MockQuestionService struct {
	CreateFunc func(ctx context.Context, in service.CreateQuestionInput) (*domain.Question, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *MockQuestionService) Create(ctx context.Context, in service.CreateQuestionInput) (*domain.Question, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	panic("MockQuestionService.CreateFunc not implemented")
}
func (m *MockQuestionService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	panic("MockQuestionService.DeleteFunc not implemented")
}

type MockCustomQuizService struct {
	CreateFunc func(ctx context.Context, in domain.CreateCustomQuizInput) (*domain.CustomQuizResult, error)
	GetFunc    func(ctx context.Context, id, userID string) (*domain.CustomQuiz, error)
	DeleteFunc func(ctx context.Context, id, userID string) error
}

func (m *MockCustomQuizService) Create(ctx context.Context, in domain.CreateCustomQuizInput) (*domain.CustomQuizResult, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	panic("MockCustomQuizService.CreateFunc not implemented")
}
func (m *MockCustomQuizService) Get(ctx context.Context, id, userID string) (*domain.CustomQuiz, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id, userID)
	}
	panic("MockCustomQuizService.GetFunc not implemented")
}
func (m *MockCustomQuizService) Delete(ctx context.Context, id, userID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	panic("MockCustomQuizService.DeleteFunc not implemented")
}

type MockMigrationRunner struct {
	StartFunc  func(ctx context.Context, in service.StartMigrationInput) (string, error)
	StatusFunc func(ctx context.Context, handle string) (*domain.MigrationStatus, error)
	CancelFunc func(ctx context.Context, handle string) error
}

func (m *MockMigrationRunner) Start(ctx context.Context, in service.StartMigrationInput) (string, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, in)
	}
	panic("MockMigrationRunner.StartFunc not implemented")
}
func (m *MockMigrationRunner) Status(ctx context.Context, handle string) (*domain.MigrationStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, handle)
	}
	panic("MockMigrationRunner.StatusFunc not implemented")
}
func (m *MockMigrationRunner) Cancel(ctx context.Context, handle string) error {
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, handle)
	}
	panic("MockMigrationRunner.CancelFunc not implemented")
}

type MockCounterReconciler struct {
	ReconcileCounterFunc func(ctx context.Context, item *domain.SelectionItem) (*service.ReconcileResult, error)
}

func (m *MockCounterReconciler) ReconcileCounter(ctx context.Context, item *domain.SelectionItem) (*service.ReconcileResult, error) {
	if m.ReconcileCounterFunc != nil {
		return m.ReconcileCounterFunc(ctx, item)
	}
	panic("MockCounterReconciler.ReconcileCounterFunc not implemented")
}
