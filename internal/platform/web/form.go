package web

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const DateLayout = "2006-01-02"

// Accepted layouts for timestamps, most specific browser format first.
var dateTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// MissingFieldError means a required form field was not submitted at all.
// A field submitted empty is present.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing form field %q", e.Field)
}

// FormatError means a submitted value could not be coerced to its type.
type FormatError struct {
	Field string
	Value string
	Cause error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.Field, e.Cause)
	}
	return fmt.Sprintf("invalid value %q for %s", e.Value, e.Field)
}

func (e *FormatError) Unwrap() error { return e.Cause }

// Form wraps the parsed body of a urlencoded or multipart submission.
type Form struct {
	values url.Values
}

// ParseForm reads the request form. Query-string parameters are ignored.
func ParseForm(c echo.Context) (*Form, error) {
	req := c.Request()
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if _, err := c.MultipartForm(); err != nil {
			return nil, err
		}
	} else if err := req.ParseForm(); err != nil {
		return nil, err
	}
	if req.PostForm == nil {
		return &Form{values: url.Values{}}, nil
	}
	return &Form{values: req.PostForm}, nil
}

// NewForm builds a Form from already-decoded values.
func NewForm(values url.Values) *Form {
	return &Form{values: values}
}

// Required returns the first value of field exactly as submitted, or
// MissingFieldError when the field is absent.
func (f *Form) Required(field string) (string, error) {
	vs, ok := f.values[field]
	if !ok || len(vs) == 0 {
		return "", &MissingFieldError{Field: field}
	}
	return vs[0], nil
}

// Optional returns the first value of field as submitted, or "" when absent.
func (f *Form) Optional(field string) string {
	return f.values.Get(field)
}

// List returns every value of a repeated field. Both "name" and "name[]"
// spellings are collected, in that order.
func (f *Form) List(field string) []string {
	out := append([]string(nil), f.values[field]...)
	return append(out, f.values[field+"[]"]...)
}

// Text maps "" to nil so empty inputs are stored as NULL.
func Text(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func ParseID(field, v string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || id <= 0 {
		return 0, &FormatError{Field: field, Value: v, Cause: err}
	}
	return id, nil
}

// ParseOptionalID returns nil for "".
func ParseOptionalID(field, v string) (*int64, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	id, err := ParseID(field, v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseDate parses YYYY-MM-DD and returns nil for "".
func ParseDate(field, v string) (*time.Time, error) {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, &FormatError{Field: field, Value: v, Cause: err}
	}
	return &d, nil
}

func ParseDateTime(field, v string) (time.Time, error) {
	s := strings.TrimSpace(v)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &FormatError{Field: field, Value: v}
}

// amountPattern is a plain decimal: optional sign, digits, optional fraction.
// Hex, exponent and underscore spellings that ParseFloat accepts are not money.
var amountPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ParseAmount parses a decimal money amount.
func ParseAmount(field, v string) (float64, error) {
	s := strings.TrimSpace(v)
	if !amountPattern.MatchString(s) {
		return 0, &FormatError{Field: field, Value: v, Cause: errors.New("not a decimal amount")}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &FormatError{Field: field, Value: v, Cause: err}
	}
	if math.IsInf(f, 0) {
		return 0, &FormatError{Field: field, Value: v}
	}
	return f, nil
}
