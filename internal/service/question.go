package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"qbank/internal/domain"
	"qbank/internal/logger"
	"qbank/internal/util"

	"go.uber.org/zap"
)

type CreateQuestionInput struct {
	ThemeID    string
	SubthemeID string
	GroupID    string
	Content    string
}

// QuestionService writes questions and keeps the aggregate counters in step.
type QuestionService struct {
	nodes     domain.TaxonomyRepository
	questions domain.QuestionRepository
	counts    *CountingService
}

func NewQuestionService(nodes domain.TaxonomyRepository, questions domain.QuestionRepository, counts *CountingService) *QuestionService {
	return &QuestionService{nodes: nodes, questions: questions, counts: counts}
}

func (s *QuestionService) Create(ctx context.Context, in CreateQuestionInput) (*domain.Question, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, domain.NewInvalidArgumentError("question content must not be empty")
	}

	ref := flatReference{ThemeID: in.ThemeID, SubthemeID: in.SubthemeID, GroupID: in.GroupID}
	if ref.ThemeID == "" {
		return nil, domain.NewInvalidArgumentError("missing theme reference")
	}
	nodes, err := s.nodes.GetByIDs(ctx, ref.ids())
	if err != nil {
		return nil, domain.NewInternalError("Failed to load taxonomy nodes", err)
	}
	leaf, err := resolveLeaf(ref, nodes)
	if err != nil {
		return nil, err
	}

	// Codes are for display; concurrent creates may share a sequence number.
	existing, err := s.counts.Count(ctx, domain.NamespaceOf(leaf), nil)
	if err != nil {
		return nil, err
	}
	var prefix strings.Builder
	for _, id := range leafPath(leaf) {
		prefix.WriteString(nodes[id].Prefix)
	}

	q := &domain.Question{
		ID:           util.NewULID(),
		ThemeID:      ref.ThemeID,
		SubthemeID:   ref.SubthemeID,
		GroupID:      ref.GroupID,
		TaxonomyID:   leaf.ID,
		TaxonomyPath: leafPath(leaf),
		Code:         fmt.Sprintf("%s-%04d", prefix.String(), existing+1),
		Content:      content,
		CreatedAt:    time.Now(),
	}
	if err := s.questions.Create(ctx, q); err != nil {
		return nil, domain.NewInternalError("Failed to create question", err)
	}

	s.counts.OnInsert(ctx, q)
	logger.Get().Info("Question created", zap.String("questionID", q.ID), zap.String("code", q.Code))
	return q, nil
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return domain.NewInternalError("Failed to load question", err)
	}
	if q == nil {
		return domain.NewQuestionNotFoundError(id)
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		if domain.IsCode(err, domain.CodeNotFound) {
			return err
		}
		return domain.NewInternalError("Failed to delete question", err)
	}

	s.counts.OnDelete(ctx, q)
	return nil
}
