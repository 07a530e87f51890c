package repository

import (
	"context"
	"fmt"
	"time"

	"qbank/internal/domain"
	"qbank/internal/repository/models"
	"qbank/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxSessionRepository implements domain.SessionRepository using sqlx.
type sqlxSessionRepository struct {
	db *sqlx.DB
}

func NewSQLXSessionRepository(db *sqlx.DB) domain.SessionRepository {
	return &sqlxSessionRepository{db: db}
}

func toDomainSession(m *models.QuizSession) *domain.QuizSession {
	feedback := make([]domain.AnswerFeedback, len(m.Feedback))
	for i, f := range m.Feedback {
		feedback[i] = domain.AnswerFeedback{IsCorrect: f.IsCorrect, CorrectOption: f.CorrectOption}
	}
	return &domain.QuizSession{
		ID:          m.ID,
		UserID:      m.UserID,
		QuizID:      m.QuizID,
		QuestionIDs: []string(m.QuestionIDs),
		Answers:     []int(m.Answers),
		Feedback:    feedback,
		IsComplete:  m.IsComplete,
		CreatedAt:   m.CreatedAt,
		CompletedAt: util.NullTimeToPtr(m.CompletedAt),
	}
}

func (r *sqlxSessionRepository) Create(ctx context.Context, s *domain.QuizSession) error {
	if s.ID == "" {
		s.ID = util.NewULID()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	feedback := make(models.FeedbackList, len(s.Feedback))
	for i, f := range s.Feedback {
		feedback[i] = models.AnswerFeedback{IsCorrect: f.IsCorrect, CorrectOption: f.CorrectOption}
	}
	answersText, err := jsonText(models.IntSlice(s.Answers))
	if err != nil {
		return err
	}
	feedbackText, err := jsonText(feedback)
	if err != nil {
		return err
	}

	query := `INSERT INTO quiz_sessions (ID, USER_ID, QUIZ_ID, ANSWERS, ANSWER_FEEDBACK, IS_COMPLETE, CREATED_AT, COMPLETED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`
	_, err = GetExecutor(ctx, r.db).ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.QuizID,
		answersText,
		feedbackText,
		s.IsComplete,
		s.CreatedAt,
		util.TimePtrToNullTime(s.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz session: %w", err)
	}
	return nil
}

// ListCompletedByUser joins the quiz so each session carries its ordered question list.
func (r *sqlxSessionRepository) ListCompletedByUser(ctx context.Context, userID string, limit int) ([]*domain.QuizSession, error) {
	query := `SELECT s.ID, s.USER_ID, s.QUIZ_ID, q.QUESTION_IDS, s.ANSWERS, s.ANSWER_FEEDBACK, s.IS_COMPLETE, s.CREATED_AT, s.COMPLETED_AT
	FROM quiz_sessions s
	JOIN custom_quizzes q ON q.ID = s.QUIZ_ID
	WHERE s.USER_ID = :1 AND s.IS_COMPLETE = 1
	ORDER BY s.COMPLETED_AT DESC, s.ID DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += "\n\tFETCH FIRST :2 ROWS ONLY"
		args = append(args, limit)
	}

	var rows []models.QuizSession
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list completed sessions for user %s: %w", userID, err)
	}

	sessions := make([]*domain.QuizSession, len(rows))
	for i := range rows {
		sessions[i] = toDomainSession(&rows[i])
	}
	return sessions, nil
}
