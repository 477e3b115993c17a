package httpx

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/tourdesh/tourdesh-api/internal/errors"
)

// statusForCode maps application error categories onto HTTP statuses.
// Unauthorized means the credential is missing or never verified (401);
// forbidden means the credential verified but does not grant access (403).
func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RenderAppError writes the JSON error response for a service-layer error.
// The error field carries the machine-readable reason code so clients can
// branch on it without parsing messages.
func RenderAppError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		WriteError(w, ErrorParams{
			Code:    http.StatusGatewayTimeout,
			ErrCode: "timeout",
			Err:     errors.New("request timed out"),
		})
		return
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "internal",
			Err:     errors.New("internal server error"),
		})
		return
	}

	WriteError(w, ErrorParams{
		Code:    statusForCode(appErr.Code),
		ErrCode: appErr.ReasonCode(),
		Err:     appErr,
	})
}
