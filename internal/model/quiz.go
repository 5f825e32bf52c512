package model

// AnswerOption is a single selectable answer for a question.
// Immutable once decoded from an uploaded file.
type AnswerOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is one quiz question with its ordered answer options.
type Question struct {
	Text    string         `json:"question"`
	Answers []AnswerOption `json:"answers"`
}

// CorrectTexts returns the texts of all correct options, in option order.
func (q Question) CorrectTexts() []string {
	texts := make([]string, 0, len(q.Answers))
	for _, a := range q.Answers {
		if a.IsCorrect {
			texts = append(texts, a.Text)
		}
	}
	return texts
}

// QuestionSet is an ordered sequence of questions.
type QuestionSet []Question

// Clone returns an independent copy of the set's ordering. The Question
// values themselves are shared: answer options are immutable after ingestion,
// so only the outer sequence needs to be owned per copy.
func (s QuestionSet) Clone() QuestionSet {
	out := make(QuestionSet, len(s))
	copy(out, s)
	return out
}

// QuizConfig holds the per-session quiz settings supplied at upload time.
// Immutable once the session is created.
type QuizConfig struct {
	RepeatOnMistake         bool `json:"repeat_on_mistake"`
	ShuffleAnswers          bool `json:"shuffle_answers"`
	RandomiseOrder          bool `json:"randomise_order"`
	QuestionCountMultiplier int  `json:"question_count_multiplier" binding:"min=1"`
}
