package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/apperr"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
)

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Error("json encode error",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	logger.Warn("http error",
		logx.String("req_id", reqID(r.Context())),
		logx.Int("status", status),
		logx.String("msg", msg),
	)
	writeJSON(logger, w, r, status, ErrorResponse{Error: msg})
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{apperr.ErrNotFound, http.StatusNotFound},
	{apperr.ErrInvalid, http.StatusBadRequest},
	{apperr.ErrInvalidStatus, http.StatusBadRequest},
	{apperr.ErrDriverBusy, http.StatusConflict},
	{apperr.ErrAlreadyAssigned, http.StatusConflict},
	{apperr.ErrAlreadyTerminal, http.StatusConflict},
	{apperr.ErrBackwardTransition, http.StatusConflict},
	{apperr.ErrDeliveryExists, http.StatusConflict},
	{apperr.ErrStaleUpdate, http.StatusConflict},
}

// statusFor maps a service error to its HTTP status and client message.
// Conflicts carry the bare sentinel text so that callers can tell them apart.
func statusFor(err error) (int, string) {
	for _, m := range errorStatuses {
		if !errors.Is(err, m.err) {
			continue
		}
		if m.status == http.StatusBadRequest {
			return m.status, err.Error()
		}
		return m.status, m.err.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

func writeServiceError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			logx.String("req_id", reqID(r.Context())),
			logx.String("path", r.URL.Path),
			logx.Err(err),
		)
	}
	writeError(logger, w, r, status, msg)
}

const (
	bodyLimit = 1 << 20
)

func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json: trailing data")
		return false
	}
	return true
}

func idFromURL(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// optionalInt reads a non-negative integer query parameter; nil when absent.
func optionalInt(r *http.Request, name string) (*int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return nil, errors.New("invalid " + name)
	}
	return &v, nil
}
