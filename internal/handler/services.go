package handler

import (
	"context"

	"qbank/internal/domain"
	"qbank/internal/service"
)

// The handler depends on these narrow views of the services so tests can
// substitute function-field mocks.

type TaxonomyManager interface {
	GetHierarchy(ctx context.Context) (*domain.Hierarchy, error)
	Create(ctx context.Context, in service.CreateTaxonomyNodeInput) (*domain.TaxonomyNode, error)
	Rename(ctx context.Context, in service.RenameTaxonomyNodeInput) (*domain.TaxonomyNode, error)
	Delete(ctx context.Context, id string) error
}

type QuestionQuerier interface {
	Count(ctx context.Context, selection []domain.SelectionItem, mode domain.QuestionMode, userID string) (int64, error)
	Resolve(ctx context.Context, selection []domain.SelectionItem, mode domain.QuestionMode, userID string) ([]string, error)
}

type QuestionManager interface {
	Create(ctx context.Context, in service.CreateQuestionInput) (*domain.Question, error)
	Delete(ctx context.Context, id string) error
}

type CustomQuizManager interface {
	Create(ctx context.Context, in domain.CreateCustomQuizInput) (*domain.CustomQuizResult, error)
	Get(ctx context.Context, id, userID string) (*domain.CustomQuiz, error)
	Delete(ctx context.Context, id, userID string) error
}

type MigrationController interface {
	Start(ctx context.Context, in service.StartMigrationInput) (string, error)
	Status(ctx context.Context, handle string) (*domain.MigrationStatus, error)
	Cancel(ctx context.Context, handle string) error
}

type CounterReconciler interface {
	// ReconcileCounter targets the global aggregate when item is nil.
	ReconcileCounter(ctx context.Context, item *domain.SelectionItem) (*service.ReconcileResult, error)
}

var (
	_ TaxonomyManager     = (*service.TaxonomyService)(nil)
	_ QuestionQuerier     = (*service.FilterResolver)(nil)
	_ QuestionManager     = (*service.QuestionService)(nil)
	_ CustomQuizManager   = (*service.CustomQuizService)(nil)
	_ MigrationController = (*service.MigrationRunner)(nil)
	_ CounterReconciler   = (*service.TaxonomyService)(nil)
)
