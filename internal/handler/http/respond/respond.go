// Package respond writes JSON responses and turns errors into client-safe
// {"error": "..."} bodies. Internal details are logged with credentials
// masked and never sent to the client.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"spectrum-feed/internal/domain/entity"
)

// internalMessage replaces every error the client should not see.
const internalMessage = "internal server error"

// JSON writes v as the response body with the given status.
// A nil v writes only the status.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// ヘッダー送信済みのためログのみ
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes err.Error() verbatim. Use SafeError for anything that may
// carry internal details.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// AppError pairs an internal error with the message and status the client gets.
type AppError struct {
	Code    int
	UserMsg string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

func (e *AppError) Unwrap() error { return e.Err }

// clientSafePhrases mark hand-written request errors whose text may be echoed.
var clientSafePhrases = []string{
	"required",
	"invalid",
	"not found",
	"must be",
	"cannot be",
	"too long",
	"too short",
	"out of range",
	"rate limit exceeded",
}

// SafeError writes an error response without leaking internals.
//
//   - An *AppError anywhere in the chain decides status and message.
//   - 5xx responses always read "internal server error".
//   - Otherwise validation errors and messages containing a known
//     client-facing phrase are echoed; anything else is masked.
//
// Masked and AppError-wrapped errors are logged with SanitizeError applied.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			slog.Default().Error("request failed",
				slog.Int("code", appErr.Code),
				slog.String("user_message", appErr.UserMsg),
				slog.String("error", SanitizeError(appErr.Err)))
		}
		JSON(w, appErr.Code, map[string]string{"error": appErr.UserMsg})
		return
	}

	if code < http.StatusInternalServerError && clientSafe(err) {
		JSON(w, code, map[string]string{"error": err.Error()})
		return
	}

	slog.Default().Error("internal server error",
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": internalMessage})
}

func clientSafe(err error) bool {
	if entity.IsValidation(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, p := range clientSafePhrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
