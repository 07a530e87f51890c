package domain

import "time"

// AnswerFeedback is the graded outcome of one answered position.
type AnswerFeedback struct {
	IsCorrect     bool `json:"isCorrect"`
	CorrectOption int  `json:"correctOption"`
}

// QuizSession is one attempt at a quiz. QuestionIDs is the quiz's ordered
// question list; Answers[i] is the option picked for QuestionIDs[i].
type QuizSession struct {
	ID          string
	UserID      string
	QuizID      string
	QuestionIDs []string
	Answers     []int
	Feedback    []AnswerFeedback
	IsComplete  bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// Verdict is the last known correctness of an answered question.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictCorrect
	VerdictIncorrect
)

func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictIncorrect:
		return "incorrect"
	}
	return "none"
}

// HistoryFact is the derived answer state of a question for one user.
type HistoryFact struct {
	HasAnswered bool
	Verdict     Verdict
}

// History maps question id to its fact. Missing ids are unanswered.
type History map[string]HistoryFact

func (h History) AnsweredIDs() []string {
	ids := make([]string, 0, len(h))
	for id, f := range h {
		if f.HasAnswered {
			ids = append(ids, id)
		}
	}
	return ids
}

func (h History) IncorrectIDs() []string {
	ids := make([]string, 0)
	for id, f := range h {
		if f.Verdict == VerdictIncorrect {
			ids = append(ids, id)
		}
	}
	return ids
}

// FoldSessions classifies questions from completed sessions given oldest
// first. When candidates is non-nil only those ids are classified.
//
// An unseen question takes this session's verdict. A correct record is
// overwritten by a later incorrect one; an incorrect record is never
// overturned. Positions past len(Answers) are left unanswered.
func FoldSessions(sessions []*QuizSession, candidates map[string]struct{}) History {
	h := make(History)
	for _, s := range sessions {
		if s == nil || !s.IsComplete {
			continue
		}
		for pos, qid := range s.QuestionIDs {
			if candidates != nil {
				if _, ok := candidates[qid]; !ok {
					continue
				}
			}
			if pos >= len(s.Answers) {
				continue
			}

			verdict := VerdictNone
			if pos < len(s.Feedback) {
				if s.Feedback[pos].IsCorrect {
					verdict = VerdictCorrect
				} else {
					verdict = VerdictIncorrect
				}
			}

			prev, seen := h[qid]
			switch {
			case !seen:
				h[qid] = HistoryFact{HasAnswered: true, Verdict: verdict}
			case prev.Verdict == VerdictIncorrect:
				// sticky
			case verdict == VerdictIncorrect:
				h[qid] = HistoryFact{HasAnswered: true, Verdict: VerdictIncorrect}
			case prev.Verdict == VerdictNone && verdict == VerdictCorrect:
				h[qid] = HistoryFact{HasAnswered: true, Verdict: VerdictCorrect}
			}
		}
	}
	return h
}
