package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"qbank/internal/domain"
	"qbank/internal/repository/models"
	"qbank/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxCustomQuizRepository implements domain.CustomQuizRepository using sqlx.
type sqlxCustomQuizRepository struct {
	db *sqlx.DB
}

func NewSQLXCustomQuizRepository(db *sqlx.DB) domain.CustomQuizRepository {
	return &sqlxCustomQuizRepository{db: db}
}

// Create writes the quiz row and one row per selection filter. Callers wrap
// it in a transaction together with the initial session.
func (r *sqlxCustomQuizRepository) Create(ctx context.Context, quiz *domain.CustomQuiz) error {
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now()
	}

	questionIDs, err := jsonText(models.StringSlice(quiz.QuestionIDs))
	if err != nil {
		return err
	}

	exec := GetExecutor(ctx, r.db)
	query := `INSERT INTO custom_quizzes (ID, NAME, AUTHOR_ID, TEST_MODE, QUESTION_MODE, QUESTION_IDS, CREATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7)`
	if _, err := exec.ExecContext(ctx, query,
		quiz.ID,
		quiz.Name,
		quiz.AuthorID,
		string(quiz.TestMode),
		string(quiz.QuestionMode),
		questionIDs,
		quiz.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create custom quiz: %w", err)
	}

	filterQuery := "INSERT INTO custom_quiz_filters (QUIZ_ID, NODE_ID, NODE_TYPE, POSITION) VALUES (:1, :2, :3, :4)"
	for i, f := range quiz.Filters {
		if _, err := exec.ExecContext(ctx, filterQuery, quiz.ID, f.ID, string(f.Kind), i); err != nil {
			return fmt.Errorf("failed to create custom quiz filter: %w", err)
		}
	}
	return nil
}

func (r *sqlxCustomQuizRepository) GetByID(ctx context.Context, id string) (*domain.CustomQuiz, error) {
	exec := GetExecutor(ctx, r.db)

	var m models.CustomQuiz
	query := "SELECT ID, NAME, AUTHOR_ID, TEST_MODE, QUESTION_MODE, QUESTION_IDS, CREATED_AT FROM custom_quizzes WHERE ID = :1"
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get custom quiz %s: %w", id, err)
	}

	var filters []models.CustomQuizFilter
	filterQuery := "SELECT QUIZ_ID, NODE_ID, NODE_TYPE, POSITION FROM custom_quiz_filters WHERE QUIZ_ID = :1 ORDER BY POSITION"
	if err := exec.SelectContext(ctx, &filters, filterQuery, id); err != nil {
		return nil, fmt.Errorf("failed to load filters of custom quiz %s: %w", id, err)
	}

	quiz := &domain.CustomQuiz{
		ID:           m.ID,
		Name:         m.Name,
		AuthorID:     m.AuthorID,
		TestMode:     domain.TestMode(m.TestMode),
		QuestionMode: domain.QuestionMode(m.QuestionMode),
		QuestionIDs:  []string(m.QuestionIDs),
		Filters:      make([]domain.SelectionItem, len(filters)),
		CreatedAt:    m.CreatedAt,
	}
	for i, f := range filters {
		quiz.Filters[i] = domain.SelectionItem{Kind: domain.NodeType(f.NodeType), ID: f.NodeID}
	}
	return quiz, nil
}

// Delete removes the quiz together with its filters and sessions.
func (r *sqlxCustomQuizRepository) Delete(ctx context.Context, id string) error {
	exec := GetExecutor(ctx, r.db)
	if _, err := exec.ExecContext(ctx, "DELETE FROM custom_quiz_filters WHERE QUIZ_ID = :1", id); err != nil {
		return fmt.Errorf("failed to delete filters of custom quiz %s: %w", id, err)
	}
	if _, err := exec.ExecContext(ctx, "DELETE FROM quiz_sessions WHERE QUIZ_ID = :1", id); err != nil {
		return fmt.Errorf("failed to delete sessions of custom quiz %s: %w", id, err)
	}
	res, err := exec.ExecContext(ctx, "DELETE FROM custom_quizzes WHERE ID = :1", id)
	if err != nil {
		return fmt.Errorf("failed to delete custom quiz %s: %w", id, err)
	}
	return expectAffected(res, domain.NewQuizNotFoundError(id))
}

func (r *sqlxCustomQuizRepository) CountFiltersReferencing(ctx context.Context, nodeID string) (int64, error) {
	var count int64
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, "SELECT COUNT(*) FROM custom_quiz_filters WHERE NODE_ID = :1", nodeID); err != nil {
		return 0, fmt.Errorf("failed to count quiz filters referencing %s: %w", nodeID, err)
	}
	return count, nil
}
