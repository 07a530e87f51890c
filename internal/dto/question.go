package dto

import (
	"time"

	"qbank/internal/domain"
)

// CreateQuestionRequest represents a new question.
// @Description Request body for creating a question
type CreateQuestionRequest struct {
	ThemeID    string `json:"themeId"`
	SubthemeID string `json:"subthemeId,omitempty"`
	GroupID    string `json:"groupId,omitempty"`
	Content    string `json:"content"`
}

// QuestionResponse represents a question in the API response
type QuestionResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	ThemeID      string    `json:"themeId"`
	SubthemeID   string    `json:"subthemeId,omitempty"`
	GroupID      string    `json:"groupId,omitempty"`
	TaxonomyID   string    `json:"taxonomyId"`
	TaxonomyPath []string  `json:"taxonomyPath"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewQuestionResponse(q *domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:           q.ID,
		Code:         q.Code,
		ThemeID:      q.ThemeID,
		SubthemeID:   q.SubthemeID,
		GroupID:      q.GroupID,
		TaxonomyID:   q.TaxonomyID,
		TaxonomyPath: q.TaxonomyPath,
		CreatedAt:    q.CreatedAt,
	}
}
