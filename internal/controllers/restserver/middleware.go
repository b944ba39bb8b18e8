package restserver

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/chrissnell/wxastro/internal/log"
)

type contextKey string

const (
	requestIDContextKey contextKey = "request_id"
	errorContextKey     contextKey = "error"
)

// RequestIDHeader carries the per-request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// requestIDMiddleware tags each request with an ID, reusing a client-sent
// UUID when there is one.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDContextKey).(string)
	return id
}

// errorSlot holds the error a handler failed with, for the access log.
type errorSlot struct {
	err error
}

func recordError(r *http.Request, err error) {
	if slot, ok := r.Context().Value(errorContextKey).(*errorSlot); ok {
		slot.err = err
	}
}

// statusRecorder captures the status and size written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.size += n
	return n, err
}

func accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		slot := &errorSlot{}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), errorContextKey, slot)))

		log.LogHTTPRequest(log.HTTPLogEntry{
			Method:     r.Method,
			Path:       r.URL.Path,
			Status:     rec.status,
			Duration:   time.Since(start),
			Size:       rec.size,
			RemoteAddr: r.RemoteAddr,
			UserAgent:  r.UserAgent(),
			RequestID:  requestID(r),
			Error:      slot.err,
		})
	})
}
