package tool

import (
	"errors"
	"fmt"
)

// Kind classifies a rejected tool call. Each kind maps to one HTTP status.
type Kind string

const (
	KindInvalidRequest Kind = "invalid_request"
	KindMissingField   Kind = "missing_field"
	KindInvalidFormat  Kind = "invalid_format"
	KindNotFound       Kind = "not_found"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrMissingField   = errors.New("missing required field")
	ErrInvalidFormat  = errors.New("invalid format")
	ErrNotFound       = errors.New("not found")

	ErrToolExecutorAlreadyRegistered = errors.New("tool executor already registered")
	ErrToolExecutorNotRegistered     = errors.New("tool executor not registered")
)

// CallError is returned for every tool call the caller got wrong.
// errors.Is matches the sentinel for its Kind and any wrapped cause.
type CallError struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *CallError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.sentinel(), e.Field)
	}
	return e.sentinel().Error()
}

func (e *CallError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Err}
}

func (e *CallError) sentinel() error {
	switch e.Kind {
	case KindMissingField:
		return ErrMissingField
	case KindInvalidFormat:
		return ErrInvalidFormat
	case KindNotFound:
		return ErrNotFound
	default:
		return ErrInvalidRequest
	}
}

func invalidRequest(format string, args ...any) *CallError {
	return &CallError{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

func missingField(field string) *CallError {
	return &CallError{Kind: KindMissingField, Field: field, Message: "missing required field: " + field}
}

func invalidFormat(field, detail string) *CallError {
	return &CallError{Kind: KindInvalidFormat, Field: field, Message: fmt.Sprintf("invalid format for %s: %s", field, detail)}
}

// AsCallError extracts the CallError from err, if any.
func AsCallError(err error) (*CallError, bool) {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
