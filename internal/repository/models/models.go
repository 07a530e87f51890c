package models

import (
	"database/sql"
	"time"
)

// TaxonomyNode maps a row of taxonomy_nodes.
type TaxonomyNode struct {
	ID        string         `db:"ID"`
	Name      string         `db:"NAME"`
	NodeType  string         `db:"NODE_TYPE"`
	ParentID  sql.NullString `db:"PARENT_ID"`
	PathIDs   StringSlice    `db:"PATH_IDS"`
	PathNames StringSlice    `db:"PATH_NAMES"`
	Prefix    string         `db:"PREFIX"`
	CreatedAt time.Time      `db:"CREATED_AT"`
	UpdatedAt time.Time      `db:"UPDATED_AT"`
}

// Question maps a row of questions. TAXONOMY_ID and TAXONOMY_PATH are NULL
// until the backfill has reached the row.
type Question struct {
	ID           string         `db:"ID"`
	ThemeID      string         `db:"THEME_ID"`
	SubthemeID   sql.NullString `db:"SUBTHEME_ID"`
	GroupID      sql.NullString `db:"GROUP_ID"`
	TaxonomyID   sql.NullString `db:"TAXONOMY_ID"`
	TaxonomyPath StringSlice    `db:"TAXONOMY_PATH"`
	Code         string         `db:"CODE"`
	Content      string         `db:"CONTENT"`
	CreatedAt    time.Time      `db:"CREATED_AT"`
}

// QuestionRef is the projection used by namespace scans.
type QuestionRef struct {
	ID        string    `db:"ID"`
	CreatedAt time.Time `db:"CREATED_AT"`
}

// PendingQuestion is the projection read by the backfill.
type PendingQuestion struct {
	ID         string         `db:"ID"`
	ThemeID    string         `db:"THEME_ID"`
	SubthemeID sql.NullString `db:"SUBTHEME_ID"`
	GroupID    sql.NullString `db:"GROUP_ID"`
}

type CustomQuiz struct {
	ID           string      `db:"ID"`
	Name         string      `db:"NAME"`
	AuthorID     string      `db:"AUTHOR_ID"`
	TestMode     string      `db:"TEST_MODE"`
	QuestionMode string      `db:"QUESTION_MODE"`
	QuestionIDs  StringSlice `db:"QUESTION_IDS"`
	CreatedAt    time.Time   `db:"CREATED_AT"`
}

type CustomQuizFilter struct {
	QuizID   string `db:"QUIZ_ID"`
	NodeID   string `db:"NODE_ID"`
	NodeType string `db:"NODE_TYPE"`
	Position int    `db:"POSITION"`
}

// QuizSession maps quiz_sessions joined with the quiz's question list.
type QuizSession struct {
	ID          string       `db:"ID"`
	UserID      string       `db:"USER_ID"`
	QuizID      string       `db:"QUIZ_ID"`
	QuestionIDs StringSlice  `db:"QUESTION_IDS"`
	Answers     IntSlice     `db:"ANSWERS"`
	Feedback    FeedbackList `db:"ANSWER_FEEDBACK"`
	IsComplete  bool         `db:"IS_COMPLETE"`
	CreatedAt   time.Time    `db:"CREATED_AT"`
	CompletedAt sql.NullTime `db:"COMPLETED_AT"`
}
