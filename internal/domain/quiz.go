package domain

import (
	"fmt"
	"time"
)

// TestMode controls whether feedback is shown while answering.
type TestMode string

const (
	TestModeStudy TestMode = "study"
	TestModeExam  TestMode = "exam"
)

func ParseTestMode(s string) (TestMode, error) {
	switch TestMode(s) {
	case TestModeStudy, TestModeExam:
		return TestMode(s), nil
	}
	return "", NewInvalidArgumentError(fmt.Sprintf("unknown test mode: %q", s))
}

// CustomQuiz is an immutable, size-capped ordered question list generated
// from a taxonomy selection.
type CustomQuiz struct {
	ID           string
	Name         string
	AuthorID     string
	TestMode     TestMode
	QuestionMode QuestionMode
	QuestionIDs  []string
	Filters      []SelectionItem
	CreatedAt    time.Time
}

// CreateCustomQuizInput is the request to generate a quiz.
type CreateCustomQuizInput struct {
	Name          string
	TestMode      string
	QuestionMode  string
	RequestedSize int
	Selection     []SelectionItem
	UserID        string
}

// CustomQuizResult is returned after a quiz and its first session are persisted.
type CustomQuizResult struct {
	QuizID        string `json:"quizId"`
	SessionID     string `json:"sessionId"`
	QuestionCount int    `json:"questionCount"`
}
