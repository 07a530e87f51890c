package service

import (
	"math/rand/v2"
	"sync"

	"qbank/internal/config"
)

// QuizSampler caps and samples a resolved id list.
type QuizSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
	max int
}

// NewQuizSampler seeds from the runtime source when rng is nil.
func NewQuizSampler(maxQuestions int, rng *rand.Rand) *QuizSampler {
	if maxQuestions <= 0 || maxQuestions > config.MaxQuestionsCap {
		maxQuestions = config.MaxQuestionsCap
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &QuizSampler{rng: rng, max: maxQuestions}
}

// Sample returns min(len(unique ids), k, max) distinct ids. A set that already
// fits is returned in resolution order; a larger one is shuffled in full with
// Fisher-Yates and truncated.
func (s *QuizSampler) Sample(ids []string, k int) []string {
	if k > s.max {
		k = s.max
	}
	if k <= 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, len(ids))
	pool := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		pool = append(pool, id)
	}
	if len(pool) <= k {
		return pool
	}

	s.mu.Lock()
	for i := len(pool) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	s.mu.Unlock()
	return pool[:k]
}
