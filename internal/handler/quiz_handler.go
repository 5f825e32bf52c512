package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizraft/quizraft-backend/internal/config"
	"github.com/quizraft/quizraft-backend/internal/ingest"
	"github.com/quizraft/quizraft-backend/internal/model"
	"github.com/quizraft/quizraft-backend/internal/quiz"
	"github.com/quizraft/quizraft-backend/internal/response"
	"github.com/quizraft/quizraft-backend/internal/service"
	"github.com/quizraft/quizraft-backend/internal/validator"
)

// QuizHandler handles all quiz endpoints.
type QuizHandler struct {
	quizService *service.QuizService
	cfg         *config.Config
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService, cfg *config.Config) *QuizHandler {
	return &QuizHandler{quizService: quizService, cfg: cfg}
}

// Upload godoc
// POST /api/v1/quiz/upload
// Ingests one or more quiz definition files plus a settings form field and
// starts a new session. Any bad file rejects the whole upload.
func (h *QuizHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	settings := c.PostForm("settings")
	if settings == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrSettingsRequired)
		return
	}

	files := make([]ingest.File, 0, len(headers))
	for _, header := range headers {
		if header.Size > h.cfg.MaxUploadBytes {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrFileTooLarge,
				map[string]string{"filename": header.Filename})
			return
		}

		f, err := header.Open()
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		files = append(files, ingest.File{Name: header.Filename, Data: data})
	}

	sessionID, err := h.quizService.Ingest(files, settings)
	if err != nil {
		h.failIngest(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"session_id": sessionID,
		"message":    "Quiz session started!",
	})
}

// GetSettings godoc
// GET /api/v1/quiz/:session_id/settings
// Returns the settings the session was created with.
func (h *QuizHandler) GetSettings(c *gin.Context) {
	cfg, err := h.quizService.Configuration(c.Param("session_id"))
	if err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, cfg)
}

// GetCurrentQuestion godoc
// GET /api/v1/quiz/:session_id/question
// Returns the current question, or a completion notice with the total count
// once every question has been answered correctly.
func (h *QuizHandler) GetCurrentQuestion(c *gin.Context) {
	question, done, err := h.quizService.CurrentQuestion(c.Param("session_id"))
	if err != nil {
		h.failSession(c, err)
		return
	}
	if done != nil {
		response.Success(c, http.StatusOK, done)
		return
	}
	response.Success(c, http.StatusOK, question)
}

// SubmitAnswer godoc
// POST /api/v1/quiz/:session_id/answer
// Grades the submitted selection against the current question.
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.quizService.SubmitAnswer(c.Param("session_id"), req.SelectedAnswers)
	if err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GetStats godoc
// GET /api/v1/quiz/:session_id/stats
// Returns the session's progress counters.
func (h *QuizHandler) GetStats(c *gin.Context) {
	stats, err := h.quizService.Stats(c.Param("session_id"))
	if err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// MoveToBottom godoc
// POST /api/v1/quiz/:session_id/move-to-bottom
// Moves the question at the given index to the end of the working set.
func (h *QuizHandler) MoveToBottom(c *gin.Context) {
	var req model.MoveQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.quizService.MoveQuestionToBottom(c.Param("session_id"), *req.QuestionIndex); err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Question moved to the bottom successfully."})
}

// Reset godoc
// POST /api/v1/quiz/:session_id/reset
// Restores the session to its freshly-created state.
func (h *QuizHandler) Reset(c *gin.Context) {
	if err := h.quizService.ResetSession(c.Param("session_id")); err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Session reset successfully."})
}

// Invalidate godoc
// DELETE /api/v1/quiz/:session_id
// Removes the session entirely.
func (h *QuizHandler) Invalidate(c *gin.Context) {
	if err := h.quizService.InvalidateSession(c.Param("session_id")); err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Session invalidated."})
}

// failIngest maps ingestion errors onto client responses, naming the
// offending file where one is known.
func (h *QuizHandler) failIngest(c *gin.Context, err error) {
	var ve *service.ValidationError
	var fe *ingest.FormatError
	var se *ingest.SchemaError

	switch {
	case errors.As(err, &ve):
		fields := ve.Fields
		if fields == nil {
			fields = map[string]string{"detail": ve.Message}
		}
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
	case errors.As(err, &fe):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrFormat,
			map[string]string{"filename": fe.Filename, "detail": fe.Reason})
	case errors.As(err, &se):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrSchema,
			map[string]string{"filename": se.Filename, "detail": se.Reason})
	case errors.Is(err, ingest.ErrNoQuestions):
		response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// failSession maps session operation errors onto client responses.
func (h *QuizHandler) failSession(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quiz.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
	case errors.Is(err, quiz.ErrIndexOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrIndexOutOfRange)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
