// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"

	"github.com/danielhkuo/survey-intake/models"
)

// MaxBodyBytes caps request bodies read by ReadBody and ParseJSONBody.
const MaxBodyBytes = 1 << 20

// ErrBodyTooLarge is returned when a body exceeds MaxBodyBytes.
var ErrBodyTooLarge = fmt.Errorf("request body exceeds %s", humanize.IBytes(MaxBodyBytes))

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := wrapResponseWriter(w)

		slog.Debug("request started", "method", r.Method, "path", r.URL.Path, "request_id", GetRequestID(r.Context()))

		next(rw, r)

		duration := time.Since(start)
		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"size", humanize.Bytes(uint64(rw.bytes)),
			"duration_ms", duration.Milliseconds(),
		}
		if id := GetRequestID(r.Context()); id != "" {
			attrs = append(attrs, "request_id", id)
		}

		if rw.status >= http.StatusInternalServerError {
			slog.Error("request completed", attrs...)
			return
		}
		slog.Info("request completed", attrs...)
	}
}

// responseWriter captures the status code and body size
type responseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func wrapResponseWriter(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// Success writes a success envelope
func Success(w http.ResponseWriter, statusCode int, message string, data any) {
	JSONResponse(w, statusCode, models.BaseResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes a failure envelope
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.BaseResponse{
		Success: false,
		Message: message,
	})
}

// ValidationErrorResponse writes a 422 envelope listing every failed field
func ValidationErrorResponse(w http.ResponseWriter, fields []models.FieldError) {
	JSONResponse(w, http.StatusUnprocessableEntity, models.BaseResponse{
		Success: false,
		Message: "Validation failed",
		Data:    fields,
	})
}

// ReadBody reads at most MaxBodyBytes of the request body
func ReadBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxBodyBytes {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v any) error {
	body, err := ReadBody(r)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return errors.New("request body is empty")
	}
	return json.Unmarshal(body, v)
}

// GetClientIP returns the host part of RemoteAddr. Behind a proxy, RealIP
// has already replaced it with the resolved client address.
func GetClientIP(r *http.Request) string {
	return remoteHost(r.RemoteAddr)
}
