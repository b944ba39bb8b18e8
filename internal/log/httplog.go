package log

import (
	"time"
)

// HTTPLogEntry represents an HTTP request/response log entry
type HTTPLogEntry struct {
	Method     string
	Path       string
	Status     int
	Duration   time.Duration
	Size       int
	RemoteAddr string
	UserAgent  string
	RequestID  string
	Error      error
}

// LogHTTPRequest writes one access-log line for a completed request.
// Server errors are logged at error level, everything else at info.
func LogHTTPRequest(e HTTPLogEntry) {
	fields := []interface{}{
		"method", e.Method,
		"path", e.Path,
		"status", e.Status,
		"duration_ms", e.Duration.Milliseconds(),
		"size", e.Size,
		"remote_addr", e.RemoteAddr,
		"user_agent", e.UserAgent,
		"request_id", e.RequestID,
	}
	if e.Error != nil {
		fields = append(fields, "error", e.Error.Error())
	}

	if e.Status >= 500 {
		GetSugaredLogger().Errorw("http request", fields...)
		return
	}
	GetSugaredLogger().Infow("http request", fields...)
}
