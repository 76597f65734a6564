package api

import (
	"encoding/json"
	"net/http"

	errs "github.com/matzehuels/stitchgraph/pkg/errors"
)

// envelope is the body of every response.
type envelope struct {
	RequestID string     `json:"request_id,omitempty"`
	Data      any        `json:"data,omitempty"`
	Error     *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body envelope) {
	body.RequestID = RequestIDFromContext(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps err to a status code and writes it with its error code.
// Errors without a code are reported as internal.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	writeJSON(w, r, statusFor(code), envelope{
		Error: &errorBody{Code: code, Message: errs.UserMessage(err)},
	})
}

func statusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidLabel,
		errs.ErrCodeInvalidPath, errs.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errs.ErrCodeInvalidGraph, errs.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeNotFound, errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func errNotFound(path string) error {
	return errs.New(errs.ErrCodeNotFound, "%s not found", path)
}
