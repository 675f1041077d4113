// Package validate turns raw request values into normalized, typed inputs.
// Request bodies decode string-ish fields as untyped JSON values, so every
// function here starts from `any` and returns either a normalized value or a
// specific validation error. All errors unwrap to ErrValidation.
package validate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"example.com/exerciselog/internal/domain"
)

// ErrValidation is the root of the validation error taxonomy. Handlers map
// anything wrapping it to a 400 response.
var ErrValidation = errors.New("invalid input")

var (
	ErrNotAString      = fmt.Errorf("%w: not a string", ErrValidation)
	ErrEmpty           = fmt.Errorf("%w: empty after trimming", ErrValidation)
	ErrInvalidID       = fmt.Errorf("%w: malformed identifier", ErrValidation)
	ErrInvalidDuration = fmt.Errorf("%w: duration must be a positive integer", ErrValidation)
	ErrInvalidDate     = fmt.Errorf("%w: invalid date format", ErrValidation)
	ErrInvalidLimit    = fmt.Errorf("%w: limit must be an integer", ErrValidation)
	ErrLimitExceeded   = fmt.Errorf("%w: limit cannot exceed %d", ErrValidation, MaxLimit)
	ErrFromAfterTo     = fmt.Errorf("%w: from date is after to date", ErrValidation)
)

const (
	// MaxLimit is the largest accepted log result cap.
	MaxLimit = 50
	// DefaultLimit substitutes non-positive limit values.
	DefaultLimit = 20
)

// NonEmptyString checks that v is a string with content after trimming
// leading and trailing whitespace, and returns the trimmed value.
func NonEmptyString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", ErrNotAString
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmpty
	}
	return s, nil
}

// ObjectID validates a store identifier: a 24-character lowercase
// hexadecimal string, the document-store convention.
func ObjectID(v any) (primitive.ObjectID, error) {
	s, err := NonEmptyString(v)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if len(s) != 24 {
		return primitive.NilObjectID, ErrInvalidID
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return primitive.NilObjectID, ErrInvalidID
		}
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// Duration accepts a JSON number or a numeric string and returns the value
// as whole minutes. Non-integers and non-positive values are rejected.
func Duration(v any) (int, error) {
	var minutes int
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, ErrInvalidDuration
		}
		minutes = int(n)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, ErrInvalidDuration
		}
		minutes = parsed
	default:
		return 0, ErrInvalidDuration
	}
	if minutes <= 0 {
		return 0, ErrInvalidDuration
	}
	return minutes, nil
}

// dateLayouts are tried in order. The first match wins; values without an
// explicit zone are taken as UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Date parses a calendar date or date-time string.
func Date(v any) (time.Time, error) {
	s, err := NonEmptyString(v)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// LogFilter parses the optional from/to/limit query parameters into a
// normalized filter. A present-but-empty parameter is treated as absent,
// matching the lenient handling of unset filters.
func LogFilter(from, to, limit string) (domain.LogFilter, error) {
	var filter domain.LogFilter

	if limit = strings.TrimSpace(limit); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil {
			return domain.LogFilter{}, ErrInvalidLimit
		}
		if parsed > MaxLimit {
			return domain.LogFilter{}, ErrLimitExceeded
		}
		if parsed <= 0 {
			parsed = DefaultLimit
		}
		filter.Limit = int64(parsed)
	}

	if from = strings.TrimSpace(from); from != "" {
		t, err := Date(from)
		if err != nil {
			return domain.LogFilter{}, err
		}
		filter.From = &t
	}

	if to = strings.TrimSpace(to); to != "" {
		t, err := Date(to)
		if err != nil {
			return domain.LogFilter{}, err
		}
		filter.To = &t
	}

	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return domain.LogFilter{}, ErrFromAfterTo
	}

	return filter, nil
}
