// ABOUTME: Tagged error variants for network, HTTP, validation and decode failures
// ABOUTME: Normalize turns any error into the display shape used by the console

package apperror

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/markalston/academia-console/internal/validate"
)

// Kind discriminates the failure classes the console handles.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindHTTP
	KindValidation
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindValidation:
		return "validation"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// Error is the single error type crossing the API client boundary.
type Error struct {
	Kind   Kind
	Status int    // KindHTTP only
	Body   []byte // KindHTTP only, raw response body
	Fields validate.FieldErrors
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		if msg := bodyMessage(e.Body); msg != "" {
			return fmt.Sprintf("backend error (status %d): %s", e.Status, msg)
		}
		return fmt.Sprintf("backend returned status %d", e.Status)
	case KindValidation:
		return validate.FormatFieldErrors(e.Fields)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error { return e.Err }

func Network(err error) *Error { return &Error{Kind: KindNetwork, Err: err} }

func HTTP(status int, body []byte) *Error {
	return &Error{Kind: KindHTTP, Status: status, Body: body}
}

func Validation(fields validate.FieldErrors) *Error {
	return &Error{Kind: KindValidation, Fields: fields, Err: fields}
}

func Decode(err error) *Error { return &Error{Kind: KindDecode, Err: err} }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindHTTP {
		return e.Status
	}
	var n *Normalized
	if errors.As(err, &n) {
		return StatusCode(n.Err)
	}
	return 0
}

// IsKind reports whether err wraps an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// backendError is the JSON error body returned by the academy API.
type backendError struct {
	Message     string          `json:"message"`
	ErrorCode   string          `json:"errorCode,omitempty"`
	FieldErrors json.RawMessage `json:"fieldErrors,omitempty"`
	Status      int             `json:"status,omitempty"`
}

func parseBody(body []byte) (backendError, bool) {
	var be backendError
	if len(body) == 0 || json.Unmarshal(body, &be) != nil {
		return backendError{}, false
	}
	return be, true
}

func bodyMessage(body []byte) string {
	be, _ := parseBody(body)
	return be.Message
}

// parseFieldErrors accepts both {"field":["a","b"]} and {"field":"a"}.
func parseFieldErrors(raw json.RawMessage) map[string][]string {
	if len(raw) == 0 {
		return nil
	}
	var multi map[string][]string
	if err := json.Unmarshal(raw, &multi); err == nil && len(multi) > 0 {
		return multi
	}
	var single map[string]string
	if err := json.Unmarshal(raw, &single); err == nil && len(single) > 0 {
		out := make(map[string][]string, len(single))
		for k, v := range single {
			out[k] = []string{v}
		}
		return out
	}
	return nil
}
