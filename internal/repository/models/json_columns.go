package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice is stored as a JSON array in a CLOB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		// nil 슬라이스는 빈 JSON 배열로 저장
		return "[]", nil
	}
	return marshalColumn(s)
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	out := StringSlice{}
	if err := scanColumn(value, &out); err != nil {
		return fmt.Errorf("StringSlice Scan: %w", err)
	}
	*s = out
	return nil
}

// IntSlice holds the selected option per answered position.
type IntSlice []int

func (s IntSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return marshalColumn(s)
}

func (s *IntSlice) Scan(value interface{}) error {
	out := IntSlice{}
	if err := scanColumn(value, &out); err != nil {
		return fmt.Errorf("IntSlice Scan: %w", err)
	}
	*s = out
	return nil
}

// AnswerFeedback mirrors one graded position.
type AnswerFeedback struct {
	IsCorrect     bool `json:"isCorrect"`
	CorrectOption int  `json:"correctOption"`
}

// FeedbackList is parallel to IntSlice for answered positions.
type FeedbackList []AnswerFeedback

func (f FeedbackList) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	return marshalColumn(f)
}

func (f *FeedbackList) Scan(value interface{}) error {
	out := FeedbackList{}
	if err := scanColumn(value, &out); err != nil {
		return fmt.Errorf("FeedbackList Scan: %w", err)
	}
	*f = out
	return nil
}

func marshalColumn(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	// []byte 대신 string 반환 (CLOB 바인딩)
	return string(data), nil
}

// scanColumn leaves dest untouched for NULL, empty and "null" values.
func scanColumn(value interface{}, dest interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T", value)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dest)
}
