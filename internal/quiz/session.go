package quiz

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/quizraft/quizraft-backend/internal/model"
)

// ErrIndexOutOfRange means a question index fell outside the working set.
var ErrIndexOutOfRange = errors.New("question index out of range")

// Session owns one user's mutable progress over a fixed question set.
//
// All methods serialize on the session mutex, so concurrent requests against
// the same session id never observe a half-applied mutation. Sessions are
// fully independent of each other.
type Session struct {
	mu sync.Mutex

	id        string
	working   model.QuestionSet
	original  model.QuestionSet
	cursor    int
	correct   int
	incorrect int
	cfg       model.QuizConfig

	lastActive time.Time
}

func newSession(id string, set model.QuestionSet, cfg model.QuizConfig) *Session {
	return &Session{
		id:         id,
		working:    set.Clone(),
		original:   set,
		cfg:        cfg,
		lastActive: time.Now(),
	}
}

// ID returns the opaque session identifier.
func (s *Session) ID() string {
	return s.id
}

// Config returns the immutable quiz settings for this session.
func (s *Session) Config() model.QuizConfig {
	return s.cfg
}

// CurrentQuestion returns the question at the cursor, shuffling the visible
// option order on every call when the session is configured to. Once the
// correct count has reached the working set length it returns a completion
// view instead.
func (s *Session) CurrentQuestion() (*model.QuestionView, *model.CompletionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.correct >= len(s.working) {
		return nil, &model.CompletionView{
			Message:        "Quiz complete!",
			TotalQuestions: len(s.working),
		}, nil
	}

	if s.cursor >= len(s.working) {
		// Reachable when the last question was answered wrong and the
		// client never moved it back into play.
		return nil, nil, ErrIndexOutOfRange
	}

	q := s.working[s.cursor]
	options := make([]string, len(q.Answers))
	for i, a := range q.Answers {
		options[i] = a.Text
	}
	if s.cfg.ShuffleAnswers {
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
	}

	return &model.QuestionView{
		Question:       q.Text,
		Options:        options,
		QuestionIndex:  s.cursor,
		MultipleChoice: len(q.CorrectTexts()) > 1,
	}, nil, nil
}

// SubmitAnswer grades the selection against the current question using set
// equality: order and duplicates are ignored, but any missing or extra text
// makes the answer incorrect. The cursor always advances, and the matching
// counter is incremented.
func (s *Session) SubmitAnswer(selected []string) (*model.AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor >= len(s.working) {
		return nil, ErrIndexOutOfRange
	}

	correctTexts := s.working[s.cursor].CorrectTexts()
	isCorrect := equalAsSets(selected, correctTexts)

	s.cursor++
	if isCorrect {
		s.correct++
	} else {
		s.incorrect++
	}

	verdict := model.VerdictIncorrect
	if isCorrect {
		verdict = model.VerdictCorrect
	}
	return &model.AnswerResult{Result: verdict, CorrectAnswers: correctTexts}, nil
}

// MoveToBottom removes the question at index and appends it as the new last
// element, leaving the cursor untouched. Moving the question that is already
// last instead repositions the cursor onto it without reordering anything —
// an asymmetry kept for compatibility with existing clients, which rely on it
// to replay a mistake on the final question.
func (s *Session) MoveToBottom(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := len(s.working) - 1
	if index < 0 || index > last {
		return ErrIndexOutOfRange
	}

	if index < last {
		q := s.working[index]
		s.working = append(s.working[:index], s.working[index+1:]...)
		s.working = append(s.working, q)
	} else {
		s.cursor = index
	}
	return nil
}

// Reset restores the working set to the ordering frozen at session creation
// and zeroes the cursor and both counters.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.working = s.original.Clone()
	s.cursor = 0
	s.correct = 0
	s.incorrect = 0
}

// Stats returns a consistent snapshot of session progress.
func (s *Session) Stats() model.StatsView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.StatsView{
		TotalQuestions:   len(s.working),
		CorrectAnswers:   s.correct,
		IncorrectAnswers: s.incorrect,
	}
}

// touch stamps the session as recently used.
func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

// idleFor reports how long the session has gone without being looked up.
func (s *Session) idleFor(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive)
}

// equalAsSets compares two string slices as sets.
func equalAsSets(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, v := range a {
		setA[v] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, v := range b {
		setB[v] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for v := range setA {
		if _, ok := setB[v]; !ok {
			return false
		}
	}
	return true
}
