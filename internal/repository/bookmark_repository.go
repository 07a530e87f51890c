package repository

import (
	"context"
	"fmt"

	"qbank/internal/domain"

	"github.com/jmoiron/sqlx"
)

type sqlxBookmarkRepository struct {
	db *sqlx.DB
}

func NewSQLXBookmarkRepository(db *sqlx.DB) domain.BookmarkRepository {
	return &sqlxBookmarkRepository{db: db}
}

// ListQuestionIDs drops bookmarks whose question has been deleted.
func (r *sqlxBookmarkRepository) ListQuestionIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT b.QUESTION_ID FROM bookmarks b
	JOIN questions q ON q.ID = b.QUESTION_ID
	WHERE b.USER_ID = :1
	ORDER BY q.CREATED_AT, q.ID`

	ids := []string{}
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list bookmarks for user %s: %w", userID, err)
	}
	return ids, nil
}
