package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	domerrors "github.com/WojciechM98/Team-Management-System/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": code } with a default code
// derived from the HTTP status. 401 responses carry WWW-Authenticate: Bearer.
func writeErr(w http.ResponseWriter, code int, message string) {
	if code == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": defaultErrCode(code)})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimited
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainErr maps the sentinel taxonomy onto HTTP. Not-found outranks
// forbidden in the use cases themselves; this only translates what they
// already decided.
func writeDomainErr(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, domerrors.ErrUserNotFound),
		errors.Is(err, domerrors.ErrTaskNotFound),
		errors.Is(err, domerrors.ErrCommentNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domerrors.ErrForbidden):
		writeErr(w, http.StatusForbidden, "insufficient permissions")
	case errors.Is(err, domerrors.ErrUnauthenticated):
		writeErr(w, http.StatusUnauthorized, "could not validate credentials")
	case errors.Is(err, domerrors.ErrUserExists):
		writeErr(w, http.StatusConflict, err.Error())
	default:
		return false
	}
	return true
}
