package quiz

import (
	"errors"
	"reflect"
	"testing"

	"github.com/quizraft/quizraft-backend/internal/model"
)

func twoOptionSet() model.QuestionSet {
	return model.QuestionSet{
		{
			Text: "2+2=?",
			Answers: []model.AnswerOption{
				{Text: "4", IsCorrect: true},
				{Text: "5", IsCorrect: false},
			},
		},
	}
}

func threeQuestionSet() model.QuestionSet {
	set := make(model.QuestionSet, 0, 3)
	for _, text := range []string{"first", "second", "third"} {
		set = append(set, model.Question{
			Text: text,
			Answers: []model.AnswerOption{
				{Text: "yes", IsCorrect: true},
				{Text: "no", IsCorrect: false},
			},
		})
	}
	return set
}

func TestSession_CorrectAnswerFlow(t *testing.T) {
	s := newSession("test", twoOptionSet(), model.QuizConfig{QuestionCountMultiplier: 1})

	view, done, err := s.CurrentQuestion()
	if err != nil {
		t.Fatalf("CurrentQuestion returned error: %v", err)
	}
	if done != nil {
		t.Fatal("quiz reported complete before any answer")
	}
	if view.Question != "2+2=?" {
		t.Errorf("expected question %q, got %q", "2+2=?", view.Question)
	}
	if len(view.Options) != 2 {
		t.Errorf("expected 2 options, got %d", len(view.Options))
	}
	if view.MultipleChoice {
		t.Error("single correct option must not be flagged multiple choice")
	}

	result, err := s.SubmitAnswer([]string{"4"})
	if err != nil {
		t.Fatalf("SubmitAnswer returned error: %v", err)
	}
	if result.Result != model.VerdictCorrect {
		t.Errorf("expected Correct, got %q", result.Result)
	}
	if !reflect.DeepEqual(result.CorrectAnswers, []string{"4"}) {
		t.Errorf("unexpected correct answers: %v", result.CorrectAnswers)
	}

	stats := s.Stats()
	if stats.TotalQuestions != 1 || stats.CorrectAnswers != 1 || stats.IncorrectAnswers != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	_, done, err = s.CurrentQuestion()
	if err != nil {
		t.Fatalf("CurrentQuestion returned error: %v", err)
	}
	if done == nil {
		t.Fatal("expected completion after all questions answered correctly")
	}
	if done.TotalQuestions != 1 {
		t.Errorf("expected total 1 in completion, got %d", done.TotalQuestions)
	}
}

func TestSession_SubmitAnswerSetEquality(t *testing.T) {
	set := model.QuestionSet{
		{
			Text: "multi",
			Answers: []model.AnswerOption{
				{Text: "a", IsCorrect: true},
				{Text: "b", IsCorrect: true},
				{Text: "c", IsCorrect: false},
			},
		},
	}

	cases := []struct {
		name     string
		selected []string
		want     string
	}{
		{"exact match", []string{"a", "b"}, model.VerdictCorrect},
		{"reordered", []string{"b", "a"}, model.VerdictCorrect},
		{"with duplicates", []string{"a", "a", "b"}, model.VerdictCorrect},
		{"subset", []string{"a"}, model.VerdictIncorrect},
		{"superset", []string{"a", "b", "c"}, model.VerdictIncorrect},
		{"disjoint", []string{"c"}, model.VerdictIncorrect},
		{"empty", nil, model.VerdictIncorrect},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newSession("test", set, model.QuizConfig{QuestionCountMultiplier: 1})
			result, err := s.SubmitAnswer(tc.selected)
			if err != nil {
				t.Fatalf("SubmitAnswer returned error: %v", err)
			}
			if result.Result != tc.want {
				t.Errorf("SubmitAnswer(%v) = %q, want %q", tc.selected, result.Result, tc.want)
			}
		})
	}
}

func TestSession_MultipleChoiceFlag(t *testing.T) {
	set := model.QuestionSet{
		{
			Text: "multi",
			Answers: []model.AnswerOption{
				{Text: "a", IsCorrect: true},
				{Text: "b", IsCorrect: true},
			},
		},
	}
	s := newSession("test", set, model.QuizConfig{QuestionCountMultiplier: 1})

	view, _, err := s.CurrentQuestion()
	if err != nil {
		t.Fatalf("CurrentQuestion returned error: %v", err)
	}
	if !view.MultipleChoice {
		t.Error("two correct options must be flagged multiple choice")
	}
}

func TestSession_ShuffleAnswersKeepsOptionSet(t *testing.T) {
	set := model.QuestionSet{
		{
			Text: "q",
			Answers: []model.AnswerOption{
				{Text: "a", IsCorrect: true},
				{Text: "b", IsCorrect: false},
				{Text: "c", IsCorrect: false},
				{Text: "d", IsCorrect: false},
			},
		},
	}
	s := newSession("test", set, model.QuizConfig{ShuffleAnswers: true, QuestionCountMultiplier: 1})

	for i := 0; i < 10; i++ {
		view, _, err := s.CurrentQuestion()
		if err != nil {
			t.Fatalf("CurrentQuestion returned error: %v", err)
		}
		seen := make(map[string]bool, len(view.Options))
		for _, o := range view.Options {
			seen[o] = true
		}
		if len(seen) != 4 || !seen["a"] || !seen["b"] || !seen["c"] || !seen["d"] {
			t.Fatalf("shuffle changed option content: %v", view.Options)
		}
	}
}

func TestSession_MoveToBottom(t *testing.T) {
	s := newSession("test", threeQuestionSet(), model.QuizConfig{QuestionCountMultiplier: 1})

	if err := s.MoveToBottom(0); err != nil {
		t.Fatalf("MoveToBottom returned error: %v", err)
	}

	texts := make([]string, len(s.working))
	for i, q := range s.working {
		texts[i] = q.Text
	}
	want := []string{"second", "third", "first"}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("working order = %v, want %v", texts, want)
	}
	if s.cursor != 0 {
		t.Errorf("cursor must be untouched by a non-last move, got %d", s.cursor)
	}
}

// Moving the question that is already last repositions the cursor instead of
// reordering. Existing clients depend on this exact behavior.
func TestSession_MoveToBottomLastIndex(t *testing.T) {
	s := newSession("test", threeQuestionSet(), model.QuizConfig{QuestionCountMultiplier: 1})
	s.cursor = 3 // Past the end, as after a wrong answer on the last question.

	if err := s.MoveToBottom(2); err != nil {
		t.Fatalf("MoveToBottom returned error: %v", err)
	}

	texts := make([]string, len(s.working))
	for i, q := range s.working {
		texts[i] = q.Text
	}
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("working order changed on last-index move: %v", texts)
	}
	if s.cursor != 2 {
		t.Errorf("cursor = %d, want repositioned to 2", s.cursor)
	}
}

func TestSession_MoveToBottomOutOfRange(t *testing.T) {
	s := newSession("test", threeQuestionSet(), model.QuizConfig{QuestionCountMultiplier: 1})

	for _, index := range []int{-1, 3, 100} {
		if err := s.MoveToBottom(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("MoveToBottom(%d) = %v, want ErrIndexOutOfRange", index, err)
		}
	}
}

func TestSession_Reset(t *testing.T) {
	s := newSession("test", threeQuestionSet(), model.QuizConfig{QuestionCountMultiplier: 1})

	if _, err := s.SubmitAnswer([]string{"yes"}); err != nil {
		t.Fatalf("SubmitAnswer returned error: %v", err)
	}
	if _, err := s.SubmitAnswer([]string{"no"}); err != nil {
		t.Fatalf("SubmitAnswer returned error: %v", err)
	}
	if err := s.MoveToBottom(0); err != nil {
		t.Fatalf("MoveToBottom returned error: %v", err)
	}

	s.Reset()

	if s.cursor != 0 || s.correct != 0 || s.incorrect != 0 {
		t.Errorf("reset left progress behind: cursor=%d correct=%d incorrect=%d",
			s.cursor, s.correct, s.incorrect)
	}
	if !reflect.DeepEqual(s.working, s.original) {
		t.Error("reset did not restore the original question order")
	}
}

func TestSession_CursorPastEndIsError(t *testing.T) {
	s := newSession("test", twoOptionSet(), model.QuizConfig{QuestionCountMultiplier: 1})

	// Wrong answer on the only question: not complete, but nothing at cursor.
	if _, err := s.SubmitAnswer([]string{"5"}); err != nil {
		t.Fatalf("SubmitAnswer returned error: %v", err)
	}

	if _, _, err := s.CurrentQuestion(); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("CurrentQuestion past end = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := s.SubmitAnswer([]string{"4"}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("SubmitAnswer past end = %v, want ErrIndexOutOfRange", err)
	}
}
