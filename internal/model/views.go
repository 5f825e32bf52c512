package model

// SubmitAnswerRequest is the payload for answering the current question.
// An empty selection is allowed and simply grades as incorrect.
type SubmitAnswerRequest struct {
	SelectedAnswers []string `json:"selected_answers"`
}

// MoveQuestionRequest is the payload for moving a question to the bottom
// of the working set. The index is a pointer so that 0 survives binding.
type MoveQuestionRequest struct {
	QuestionIndex *int `json:"question_index" binding:"required"`
}

// QuestionView is the client-facing shape of the current question.
// Options carry text only; correctness is never exposed before submission.
type QuestionView struct {
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	QuestionIndex  int      `json:"question_index"`
	MultipleChoice bool     `json:"multiple_choice"`
}

// CompletionView is returned instead of a question once the quiz is done.
type CompletionView struct {
	Message        string `json:"message"`
	TotalQuestions int    `json:"total_questions"`
}

// AnswerResult reports the verdict for a submitted answer.
type AnswerResult struct {
	Result         string   `json:"result"`
	CorrectAnswers []string `json:"correct_answers"`
}

// Answer verdicts.
const (
	VerdictCorrect   = "Correct"
	VerdictIncorrect = "Incorrect"
)

// StatsView is a snapshot of session progress.
type StatsView struct {
	TotalQuestions   int `json:"total_questions"`
	CorrectAnswers   int `json:"correct_answers"`
	IncorrectAnswers int `json:"incorrect_answers"`
}
