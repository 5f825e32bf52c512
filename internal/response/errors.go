package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Ingestion ─────────────────────────────────────────────────────
	ErrFormat           ErrCode = "FORMAT_ERROR"
	ErrSchema           ErrCode = "SCHEMA_ERROR"
	ErrNoQuestions      ErrCode = "NO_QUESTIONS"
	ErrFileRequired     ErrCode = "FILE_REQUIRED"
	ErrFileTooLarge     ErrCode = "FILE_TOO_LARGE"
	ErrSettingsRequired ErrCode = "SETTINGS_REQUIRED"

	// ─── Session ───────────────────────────────────────────────────────
	ErrSessionNotFound ErrCode = "SESSION_NOT_FOUND"
	ErrIndexOutOfRange ErrCode = "INDEX_OUT_OF_RANGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Ingestion ─────────────────────────────────────────────────────
	case ErrFormat:
		return "File could not be parsed as a quiz table."
	case ErrSchema:
		return "File must have 'question' and 'answer' columns."
	case ErrNoQuestions:
		return "No usable questions were found in the uploaded files."
	case ErrFileRequired:
		return "At least one quiz file is required."
	case ErrFileTooLarge:
		return "File size exceeds the upload limit."
	case ErrSettingsRequired:
		return "A settings payload is required."

	// ─── Session ───────────────────────────────────────────────────────
	case ErrSessionNotFound:
		return "Invalid session ID."
	case ErrIndexOutOfRange:
		return "Invalid question index."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
