package dto

import "qbank/internal/domain"

// SelectionItemRequest is one selected taxonomy node.
type SelectionItemRequest struct {
	Kind string `json:"kind" example:"group"`
	ID   string `json:"id"`
}

// QuestionQueryRequest is the body shared by the count and resolve endpoints.
// @Description Taxonomy selection plus history predicate
type QuestionQueryRequest struct {
	Selection    []SelectionItemRequest `json:"selection"`
	QuestionMode string                 `json:"questionMode" example:"unanswered"`
}

// CountQuestionsResponse represents a question count in the API response
type CountQuestionsResponse struct {
	Count        int64  `json:"count"`
	QuestionMode string `json:"questionMode"`
}

// ResolveQuestionsResponse lists every qualifying question id.
type ResolveQuestionsResponse struct {
	QuestionIDs []string `json:"questionIds"`
	Count       int      `json:"count"`
}

// ToSelection converts request items into domain selection items.
func ToSelection(items []SelectionItemRequest) []domain.SelectionItem {
	out := make([]domain.SelectionItem, len(items))
	for i, item := range items {
		out[i] = domain.SelectionItem{Kind: domain.NodeType(item.Kind), ID: item.ID}
	}
	return out
}

func fromSelection(items []domain.SelectionItem) []SelectionItemRequest {
	out := make([]SelectionItemRequest, len(items))
	for i, item := range items {
		out[i] = SelectionItemRequest{Kind: string(item.Kind), ID: item.ID}
	}
	return out
}
