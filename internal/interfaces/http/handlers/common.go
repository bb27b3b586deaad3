// Package handlers implements the REST endpoints of the MateriaScout API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/materiascout/materiascout/pkg/errors"
)

// headerAPIKey carries the per-request upstream credential. When absent
// the server's configured key is used.
const headerAPIKey = "X-API-Key"

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeAppError maps application errors to HTTP status codes via their
// error code. Unclassified errors are masked as internal.
func writeAppError(w http.ResponseWriter, err error) {
	var ae *errors.AppError
	if !errors.As(err, &ae) {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Code:    errors.ErrCodeInternal.String(),
			Message: "internal server error",
		})
		return
	}
	writeJSON(w, ae.Code.HTTPStatus(), ErrorResponse{
		Code:    ae.Code.String(),
		Message: ae.Message,
		Detail:  ae.Detail,
	})
}

// decodeBody decodes a JSON request body into dst, rejecting unknown
// fields.
func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New(errors.ErrCodeBadRequest, "invalid request body").WithDetail(err.Error())
	}
	return nil
}

// requestAPIKey resolves the upstream credential for one request: the
// X-API-Key header when present, otherwise the server default.
func requestAPIKey(r *http.Request, fallback string) string {
	if key := r.Header.Get(headerAPIKey); key != "" {
		return key
	}
	return fallback
}
