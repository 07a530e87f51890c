package service

import (
	"context"
	"strings"
	"time"

	"qbank/internal/domain"
	"qbank/internal/logger"
	"qbank/internal/metrics"
	"qbank/internal/util"

	"go.uber.org/zap"
)

// CustomQuizService materializes sampled quizzes and their first session.
type CustomQuizService struct {
	tx       domain.TransactionManager
	quizzes  domain.CustomQuizRepository
	sessions domain.SessionRepository
	resolver *FilterResolver
	sampler  *QuizSampler
}

func NewCustomQuizService(
	tx domain.TransactionManager,
	quizzes domain.CustomQuizRepository,
	sessions domain.SessionRepository,
	resolver *FilterResolver,
	sampler *QuizSampler,
) *CustomQuizService {
	return &CustomQuizService{
		tx:       tx,
		quizzes:  quizzes,
		sessions: sessions,
		resolver: resolver,
		sampler:  sampler,
	}
}

func (s *CustomQuizService) Create(ctx context.Context, in domain.CreateCustomQuizInput) (*domain.CustomQuizResult, error) {
	if in.UserID == "" {
		return nil, domain.NewUnauthorizedError("a user is required to create a quiz")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewInvalidArgumentError("quiz name must not be empty")
	}
	if in.RequestedSize < 1 {
		return nil, domain.NewInvalidArgumentError("requested quiz size must be at least 1")
	}
	testMode, err := domain.ParseTestMode(in.TestMode)
	if err != nil {
		return nil, err
	}
	questionMode, err := domain.ParseQuestionMode(in.QuestionMode)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolver.Resolve(ctx, in.Selection, questionMode, in.UserID)
	if err != nil {
		return nil, err
	}
	if len(resolved) == 0 {
		return nil, domain.NewEmptyResultError("no questions match the selected filters")
	}
	picked := s.sampler.Sample(resolved, in.RequestedSize)

	now := time.Now()
	quiz := &domain.CustomQuiz{
		ID:           util.NewULID(),
		Name:         name,
		AuthorID:     in.UserID,
		TestMode:     testMode,
		QuestionMode: questionMode,
		QuestionIDs:  picked,
		Filters:      uniqueSelection(in.Selection),
		CreatedAt:    now,
	}
	session := &domain.QuizSession{
		ID:          util.NewULID(),
		UserID:      in.UserID,
		QuizID:      quiz.ID,
		QuestionIDs: picked,
		Answers:     []int{},
		Feedback:    []domain.AnswerFeedback{},
		CreatedAt:   now,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.quizzes.Create(ctx, quiz); err != nil {
			return domain.NewInternalError("Failed to save custom quiz", err)
		}
		if err := s.sessions.Create(ctx, session); err != nil {
			return domain.NewInternalError("Failed to create quiz session", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CustomQuizzesCreated.Inc()
	logger.Get().Info("Custom quiz created",
		zap.String("quizID", quiz.ID),
		zap.String("userID", in.UserID),
		zap.Int("resolved", len(resolved)),
		zap.Int("questions", len(picked)))

	return &domain.CustomQuizResult{
		QuizID:        quiz.ID,
		SessionID:     session.ID,
		QuestionCount: len(picked),
	}, nil
}

// Get returns a quiz to its author only.
func (s *CustomQuizService) Get(ctx context.Context, id, userID string) (*domain.CustomQuiz, error) {
	if userID == "" {
		return nil, domain.NewUnauthorizedError("a user is required to read a quiz")
	}
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load custom quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}
	if quiz.AuthorID != userID {
		return nil, domain.NewForbiddenError("only the author can access this quiz")
	}
	return quiz, nil
}

func (s *CustomQuizService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.quizzes.Delete(ctx, id); err != nil {
			if domain.IsCode(err, domain.CodeNotFound) {
				return err
			}
			return domain.NewInternalError("Failed to delete custom quiz", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Get().Info("Custom quiz deleted", zap.String("quizID", id), zap.String("userID", userID))
	return nil
}

func uniqueSelection(items []domain.SelectionItem) []domain.SelectionItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]domain.SelectionItem, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}
