// Package responseformat encodes API responses as JSON or MessagePack.
package responseformat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeMsgPack = "application/x-msgpack"
)

// ErrEncode is returned (wrapped) when data cannot be encoded. Nothing has
// been written to the client in that case.
var ErrEncode = errors.New("cannot encode response")

// Formatter handles encoding and writing responses in JSON or MessagePack format
type Formatter struct{}

// NewFormatter creates a new response formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WantsMsgPack reports whether the client asked for MessagePack, either
// with format=msgpack or an Accept header naming it.
func WantsMsgPack(req *http.Request) bool {
	if req.URL.Query().Get("format") == "msgpack" {
		return true
	}
	return strings.Contains(req.Header.Get("Accept"), contentTypeMsgPack)
}

// WriteResponse writes the response in the appropriate format based on the request.
// JSON is the default format. The body is encoded before anything is sent, so
// an encoding error leaves the writer untouched for the caller to report.
func (f *Formatter) WriteResponse(w http.ResponseWriter, req *http.Request, status int, data any, headers map[string]string) error {
	// Set any provided headers first
	for k, v := range headers {
		w.Header().Set(k, v)
	}

	// Always set CORS header
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if WantsMsgPack(req) {
		return f.writeMsgPack(w, status, data)
	}
	return f.writeJSON(w, status, data)
}

// WriteError writes an ErrorResponse with the given status.
func (f *Formatter) WriteError(w http.ResponseWriter, req *http.Request, status int, err error) error {
	return f.WriteResponse(w, req, status, ErrorResponse{Error: err.Error()}, nil)
}

func (f *Formatter) writeJSON(w http.ResponseWriter, status int, data any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("%w as JSON: %w", ErrEncode, err)
	}
	return send(w, status, contentTypeJSON, &buf)
}

func (f *Formatter) writeMsgPack(w http.ResponseWriter, status int, data any) error {
	var buf bytes.Buffer
	encoder := msgpack.NewEncoder(&buf)
	encoder.SetCustomStructTag("json") // Use json tags for MessagePack
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("%w as MessagePack: %w", ErrEncode, err)
	}
	return send(w, status, contentTypeMsgPack, &buf)
}

func send(w http.ResponseWriter, status int, contentType string, body *bytes.Buffer) error {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, err := body.WriteTo(w)
	return err
}
