package domain

import (
	"context"
	"time"
)

// TransactionManager runs fn inside a single store transaction. Repositories
// pick the transaction up from the context passed to fn.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TaxonomyRepository persists taxonomy nodes.
type TaxonomyRepository interface {
	GetByID(ctx context.Context, id string) (*TaxonomyNode, error)
	// GetByIDs returns the nodes that exist, keyed by id.
	GetByIDs(ctx context.Context, ids []string) (map[string]*TaxonomyNode, error)
	ListAll(ctx context.Context) ([]*TaxonomyNode, error)
	// FindChildByName matches case-insensitively. An empty parentID searches themes.
	FindChildByName(ctx context.Context, parentID, name string) (*TaxonomyNode, error)
	CountChildren(ctx context.Context, id string) (int64, error)
	// ListDescendants returns every node below id, at any depth.
	ListDescendants(ctx context.Context, id string) ([]*TaxonomyNode, error)
	Create(ctx context.Context, node *TaxonomyNode) error
	Update(ctx context.Context, node *TaxonomyNode) error
	UpdatePathNames(ctx context.Context, id string, pathNames []string) error
	Delete(ctx context.Context, id string) error
}

// QuestionRepository persists questions and offers index-scoped scans.
type QuestionRepository interface {
	Create(ctx context.Context, q *Question) error
	GetByID(ctx context.Context, id string) (*Question, error)
	Delete(ctx context.Context, id string) error

	// CountInNamespace counts through the single-column index of the namespace.
	CountInNamespace(ctx context.Context, ns Namespace, bounds *CountBounds) (int64, error)
	// ListRefsInNamespace returns refs ordered by creation time then id.
	ListRefsInNamespace(ctx context.Context, ns Namespace) ([]QuestionRef, error)

	// FilterExisting returns the subset of ids that still exist, in input order.
	FilterExisting(ctx context.Context, ids []string) ([]string, error)
}

// MigrationRepository exposes the legacy rows still missing the generalized reference.
type MigrationRepository interface {
	CountPending(ctx context.Context) (int64, error)
	ListPending(ctx context.Context, after Cursor, limit int) ([]PendingQuestion, error)
	SetTaxonomyReference(ctx context.Context, questionID, taxonomyID string, path []string) error
}

// SessionRepository persists quiz sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *QuizSession) error
	// ListCompletedByUser returns completed sessions newest first. limit <= 0 is unbounded.
	ListCompletedByUser(ctx context.Context, userID string, limit int) ([]*QuizSession, error)
}

// BookmarkRepository reads a user's bookmarks.
type BookmarkRepository interface {
	// ListQuestionIDs returns bookmarked ids whose question still exists.
	ListQuestionIDs(ctx context.Context, userID string) ([]string, error)
}

// CustomQuizRepository persists generated quizzes and their selection filters.
type CustomQuizRepository interface {
	Create(ctx context.Context, quiz *CustomQuiz) error
	GetByID(ctx context.Context, id string) (*CustomQuiz, error)
	Delete(ctx context.Context, id string) error
	CountFiltersReferencing(ctx context.Context, nodeID string) (int64, error)
}

// AggregateCounter answers per-namespace question counts without scanning.
type AggregateCounter interface {
	// Count returns ErrCounterMiss when the namespace has no aggregate.
	Count(ctx context.Context, ns Namespace, bounds *CountBounds) (int64, error)
	OnInsert(ctx context.Context, q *Question) error
	OnDelete(ctx context.Context, q *Question) error
	// Reseed replaces the namespace aggregate with refs and marks it authoritative.
	Reseed(ctx context.Context, ns Namespace, refs []QuestionRef) error
	// Init marks the namespace authoritative without clearing members that
	// were already recorded for it.
	Init(ctx context.Context, ns Namespace) error
	// Drop forgets the namespace aggregate.
	Drop(ctx context.Context, ns Namespace) error
}

// RunLock guards a single active migration run across processes.
type RunLock interface {
	Acquire(ctx context.Context, owner string, ttl time.Duration) (bool, error)
	Refresh(ctx context.Context, owner string, ttl time.Duration) error
	Release(ctx context.Context, owner string) error
}
