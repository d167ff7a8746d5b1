package apierror

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
)

// Kind classifies an API failure.
type Kind string

const (
	KindTransport    Kind = "transport"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindServer       Kind = "server"
)

// FallbackMessage is shown when the server supplies no usable message.
const FallbackMessage = "Request failed. Please try again."

// Error is the structured form of an API failure. The response body is
// parsed exactly once, here; callers work with Kind and Message instead
// of probing unknown shapes.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Fields     map[string][]string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("api: %s (HTTP %d)", e.Message, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("api: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("api: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FieldError returns the first message recorded for the named field.
func (e *Error) FieldError(name string) string {
	if msgs := e.Fields[name]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Transport wraps a network-level failure that produced no response.
func Transport(err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: "Network error. Please try again.",
		Err:     err,
	}
}

// Decode builds an Error from a non-2xx response. Message precedence:
// the first field-level error, then a generic "error" field, then the
// DRF "detail" field, then a fallback string.
func Decode(statusCode int, body []byte) *Error {
	e := &Error{
		Kind:       kindFor(statusCode),
		StatusCode: statusCode,
		Message:    FallbackMessage,
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return e
	}

	var generic, detail string
	for key, val := range payload {
		switch key {
		case "error":
			if s, ok := val.(string); ok {
				generic = s
			}
		case "detail":
			if s, ok := val.(string); ok {
				detail = s
			}
		default:
			if msgs := stringSlice(val); len(msgs) > 0 {
				if e.Fields == nil {
					e.Fields = make(map[string][]string)
				}
				e.Fields[key] = msgs
			}
		}
	}

	switch {
	case len(e.Fields) > 0:
		e.Message = e.Fields[firstField(e.Fields)][0]
	case generic != "":
		e.Message = generic
	case detail != "":
		e.Message = detail
	}

	return e
}

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Kind == KindUnauthorized
}

func kindFor(statusCode int) Kind {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return KindUnauthorized
	case statusCode == http.StatusNotFound:
		return KindNotFound
	case statusCode >= 400 && statusCode < 500:
		return KindValidation
	default:
		return KindServer
	}
}

func stringSlice(val interface{}) []string {
	items, ok := val.([]interface{})
	if !ok {
		return nil
	}
	var msgs []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}

// firstField picks deterministically so message selection is stable.
func firstField(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0]
}
