package service

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/quizraft/quizraft-backend/internal/ingest"
	"github.com/quizraft/quizraft-backend/internal/model"
	"github.com/quizraft/quizraft-backend/internal/quiz"
	"github.com/quizraft/quizraft-backend/internal/validator"
)

// ValidationError reports a malformed settings payload.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// QuizService orchestrates ingestion and all per-session quiz operations.
type QuizService struct {
	registry *quiz.Registry
	builder  *ingest.Builder
	log      zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(registry *quiz.Registry, log zerolog.Logger) *QuizService {
	return &QuizService{
		registry: registry,
		builder:  ingest.NewBuilder(log),
		log:      log.With().Str("component", "quiz_service").Logger(),
	}
}

// Ingest builds a question set from the uploaded files and settings and
// creates a session over it. The settings string is the raw JSON form field
// from the upload request. Any failing file aborts the whole call; no
// session is created on error.
func (s *QuizService) Ingest(files []ingest.File, rawSettings string) (string, error) {
	var cfg model.QuizConfig
	if err := json.Unmarshal([]byte(rawSettings), &cfg); err != nil {
		return "", &ValidationError{Message: fmt.Sprintf("invalid JSON in settings: %v", err)}
	}
	if fields := validator.Check(&cfg); fields != nil {
		return "", &ValidationError{Message: "invalid settings", Fields: fields}
	}

	set, err := s.builder.Build(files, cfg)
	if err != nil {
		return "", err
	}

	session := s.registry.Create(set, cfg)
	s.log.Info().
		Str("session_id", session.ID()).
		Int("questions", len(set)).
		Int("files", len(files)).
		Msg("Quiz session started")
	return session.ID(), nil
}

// Configuration returns the settings a session was created with.
func (s *QuizService) Configuration(sessionID string) (model.QuizConfig, error) {
	session, err := s.registry.Get(sessionID)
	if err != nil {
		return model.QuizConfig{}, err
	}
	return session.Config(), nil
}

// CurrentQuestion returns the session's current question view, or a
// completion view once the quiz is done.
func (s *QuizService) CurrentQuestion(sessionID string) (*model.QuestionView, *model.CompletionView, error) {
	session, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, nil, err
	}
	return session.CurrentQuestion()
}

// SubmitAnswer grades a selection against the session's current question.
func (s *QuizService) SubmitAnswer(sessionID string, selected []string) (*model.AnswerResult, error) {
	session, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return session.SubmitAnswer(selected)
}

// Stats returns the session's progress counters.
func (s *QuizService) Stats(sessionID string) (model.StatsView, error) {
	session, err := s.registry.Get(sessionID)
	if err != nil {
		return model.StatsView{}, err
	}
	return session.Stats(), nil
}

// MoveQuestionToBottom reorders the session's working set.
func (s *QuizService) MoveQuestionToBottom(sessionID string, index int) error {
	session, err := s.registry.Get(sessionID)
	if err != nil {
		return err
	}
	return session.MoveToBottom(index)
}

// ResetSession restores a session to its freshly-created state.
func (s *QuizService) ResetSession(sessionID string) error {
	session, err := s.registry.Get(sessionID)
	if err != nil {
		return err
	}
	session.Reset()
	return nil
}

// InvalidateSession removes a session from the registry.
func (s *QuizService) InvalidateSession(sessionID string) error {
	return s.registry.Invalidate(sessionID)
}
