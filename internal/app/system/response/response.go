// internal/app/system/response/response.go
package response

import (
	"encoding/json"
	"net/http"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"go.uber.org/zap"
)

// Meta carries pagination details for list responses. Total counts every
// document matching the filter/search predicate, independent of page and
// limit.
type Meta struct {
	Page      int64 `json:"page"`
	Limit     int64 `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// Envelope is the uniform JSON body for every API response.
type Envelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	Meta       *Meta  `json:"meta,omitempty"`
}

// OK writes a success envelope with the given status, message, and data.
func OK(w http.ResponseWriter, status int, message string, data any) {
	write(w, Envelope{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// List writes a success envelope with pagination meta.
func List(w http.ResponseWriter, status int, message string, data any, meta Meta) {
	write(w, Envelope{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
		Meta:       &meta,
	})
}

// Err maps any error to the failure envelope. Application errors keep
// their status and message; everything else becomes a 500 with a generic
// message, logged at error level.
func Err(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperr.StatusOf(err)
	if status == http.StatusInternalServerError && log != nil {
		log.Error("request failed", zap.Error(err))
	}
	write(w, Envelope{
		Success:    false,
		StatusCode: status,
		Message:    apperr.MessageOf(err),
	})
}

func write(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.StatusCode)
	_ = json.NewEncoder(w).Encode(env)
}
