package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"stockroom/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// multipartMemory is how much of a multipart body is held in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

// statusByCode maps domain error codes to HTTP statuses.
var statusByCode = map[string]int{
	model.ErrCodeValidation:     http.StatusBadRequest,
	model.ErrCodeNotFound:       http.StatusNotFound,
	model.ErrCodeConflict:       http.StatusConflict,
	model.ErrCodeMalformedInput: http.StatusBadRequest,
	model.ErrCodeSchemaMismatch: http.StatusBadRequest,
	model.ErrCodeNoValidRows:    http.StatusBadRequest,
	model.ErrCodeInvalidUpload:  http.StatusBadRequest,
	model.ErrCodeInvalidJSON:    http.StatusBadRequest,
	model.ErrCodeUnauthorised:   http.StatusUnauthorized,
	model.ErrCodeStorage:        http.StatusInternalServerError,
}

// successResponse is the acknowledgement body for mutations without a payload.
type successResponse struct {
	Success bool `json:"success"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message, Code: codeForStatus(status)})
}

// writeDomainError maps err to a status and writes its code, message and
// field details. Errors without a domain code become a generic 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		logger.Error().Err(err).Msg("unexpected error")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Error: "internal server error",
			Code:  model.ErrCodeInternalError,
		})
		return
	}

	status, ok := statusByCode[de.Code]
	if !ok {
		status = http.StatusInternalServerError
	}

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Str("code", de.Code).Int("status", status).Msg("request failed")

	resp := model.ErrorResponse{
		Error:   de.Message,
		Code:    de.Code,
		Fields:  de.Fields,
		Details: de.Details,
	}
	if de.Code == model.ErrCodeStorage {
		resp.Error = "storage failure"
	}
	writeJSON(w, status, resp)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return model.ErrCodeValidation
	case http.StatusUnauthorized:
		return model.ErrCodeUnauthorised
	case http.StatusNotFound:
		return model.ErrCodeNotFound
	default:
		return model.ErrCodeInternalError
	}
}

// decodeJSON reads a JSON body into v, failing with INVALID_JSON.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &model.DomainError{
			Code:    model.ErrCodeInvalidJSON,
			Message: "invalid request body",
			Err:     err,
		}
	}
	return nil
}

// readUpload returns the named multipart file, or nil when the form has none.
func readUpload(r *http.Request, field string) (*model.FileUpload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, model.NewDomainError(model.ErrCodeInvalidUpload, "could not read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, model.NewDomainError(model.ErrCodeInvalidUpload, "could not read uploaded file")
	}
	return &model.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// parseMultipart caps the request body at maxBytes and parses the form.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return model.NewDomainError(model.ErrCodeInvalidUpload, "upload is too large")
		}
		return model.NewDomainError(model.ErrCodeInvalidUpload, "file too large or invalid form")
	}
	return nil
}

// pathParam returns the decoded chi URL parameter. chi matches against
// RawPath when the request carries one, leaving the segment escaped;
// otherwise the segment is already decoded.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}
