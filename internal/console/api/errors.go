package api

import (
	"errors"
	"net/http"
)

// Error kinds classify HTTP failures by status class. Calling code only
// ever sees the kind and its fixed message; raw server error bodies are
// discarded inside this package and never reach rendering code.
type ErrorKind string

const (
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindServer       ErrorKind = "server_error"
	KindGeneric      ErrorKind = "request_failed"
)

// APIError is the sanitized wrapper around any HTTP failure. Its message is
// selected purely by status class and is safe to show to the operator.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindUnauthorized:
		return "authentication failed"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server error"
	default:
		return "request failed"
	}
}

// sanitizeStatus maps an HTTP status code to a typed, sanitized error.
// A statusCode of 0 marks a transport-level failure (timeout, refused
// connection), which surfaces the same as a server error.
func sanitizeStatus(statusCode int) *APIError {
	switch {
	case statusCode == http.StatusUnauthorized:
		return &APIError{Kind: KindUnauthorized, StatusCode: statusCode}
	case statusCode == http.StatusForbidden:
		return &APIError{Kind: KindForbidden, StatusCode: statusCode}
	case statusCode == http.StatusNotFound:
		return &APIError{Kind: KindNotFound, StatusCode: statusCode}
	case statusCode >= http.StatusInternalServerError || statusCode == 0:
		return &APIError{Kind: KindServer, StatusCode: statusCode}
	default:
		return &APIError{Kind: KindGeneric, StatusCode: statusCode}
	}
}

// IsUnauthorized reports whether err is the sanitized 401 error.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthorized
}
