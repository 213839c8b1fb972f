// Package validate holds the outbound payload schemas for the console. Every
// shape that leaves the process is validated and sanitized here first, so a
// request that would fail server-side validation is never dispatched at all.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Contract constants shared with the backend. Changing these is a wire
// contract change, not a tuning knob.
const (
	MaxNameLength    = 100
	MaxEmailLength   = 254
	MaxMessageLength = 500
	MinPasswordLen   = 6
	MaxPasswordLen   = 128
	MinPageSize      = 1
	MaxPageSize      = 100
)

const requiredReason = "required"

var (
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reID    = regexp.MustCompile(`^[1-9][0-9]*$`)
)

// ValidationError aggregates every field-level violation of one payload into
/// a single error. The message is safe to show verbatim: it is built from
// static schema text and field names only, never from server data.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fold converts a field->message map into a ValidationError, or nil when the
// map is empty.
func fold(errs map[string]string) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

// Sanitize trims surrounding whitespace and strips the characters
// < > " ' & from s. Fields validated here are later rendered as text, so
// this is a cheap second line against reflected injection.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '<', '>', '"', '\'', '&':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func checkEmail(errs map[string]string, field, email string, required bool) {
	switch {
	case email == "":
		if required {
			errs[field] = requiredReason
		}
	case len(email) > MaxEmailLength:
		errs[field] = fmt.Sprintf("too long (max %d)", MaxEmailLength)
	case !reEmail.MatchString(email):
		errs[field] = "invalid email format"
	}
}

func checkName(errs map[string]string, field, name string) {
	if len(name) > MaxNameLength {
		errs[field] = fmt.Sprintf("too long (max %d)", MaxNameLength)
	}
}

func checkID(errs map[string]string, field, id string) {
	switch {
	case id == "":
		errs[field] = requiredReason
	case !reID.MatchString(id):
		errs[field] = "must be a positive integer id"
	}
}

func checkEnum(errs map[string]string, field, value string, allowed ...string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	errs[field] = fmt.Sprintf("must be one of %s", strings.Join(allowed, ", "))
}
