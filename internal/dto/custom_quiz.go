package dto

import (
	"time"

	"qbank/internal/domain"
)

// CreateCustomQuizRequest represents a quiz generation request
// @Description Request body for generating a custom quiz
type CreateCustomQuizRequest struct {
	Name         string                 `json:"name"`
	TestMode     string                 `json:"testMode" example:"study"`
	QuestionMode string                 `json:"questionMode" example:"all"`
	Size         int                    `json:"size" example:"20"`
	Selection    []SelectionItemRequest `json:"selection"`
}

// CreateCustomQuizResponse is returned once the quiz and its first session exist.
type CreateCustomQuizResponse struct {
	QuizID        string `json:"quizId"`
	SessionID     string `json:"sessionId"`
	QuestionCount int    `json:"questionCount"`
}

// CustomQuizResponse represents a stored custom quiz
type CustomQuizResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	TestMode     string                 `json:"testMode"`
	QuestionMode string                 `json:"questionMode"`
	QuestionIDs  []string               `json:"questionIds"`
	Filters      []SelectionItemRequest `json:"filters"`
	CreatedAt    time.Time              `json:"createdAt"`
}

func NewCustomQuizResponse(q *domain.CustomQuiz) CustomQuizResponse {
	return CustomQuizResponse{
		ID:           q.ID,
		Name:         q.Name,
		TestMode:     string(q.TestMode),
		QuestionMode: string(q.QuestionMode),
		QuestionIDs:  q.QuestionIDs,
		Filters:      fromSelection(q.Filters),
		CreatedAt:    q.CreatedAt,
	}
}
