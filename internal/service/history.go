package service

import (
	"context"

	"qbank/internal/domain"
)

// HistoryIndex derives a user's per-question answer facts from completed sessions.
type HistoryIndex struct {
	sessions domain.SessionRepository
	// limit caps how many recent completed sessions are folded; 0 means all.
	limit int
}

func NewHistoryIndex(sessions domain.SessionRepository, sessionLimit int) *HistoryIndex {
	if sessionLimit < 0 {
		sessionLimit = 0
	}
	return &HistoryIndex{sessions: sessions, limit: sessionLimit}
}

// Load folds the user's sessions oldest to newest. A nil candidates set
// classifies every question seen.
func (h *HistoryIndex) Load(ctx context.Context, userID string, candidates map[string]struct{}) (domain.History, error) {
	if userID == "" {
		return nil, domain.NewUnauthorizedError("a user is required to read answer history")
	}

	sessions, err := h.sessions.ListCompletedByUser(ctx, userID, h.limit)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load completed sessions", err)
	}

	// The store returns newest first.
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	return domain.FoldSessions(sessions, candidates), nil
}
