package employees

import (
	"errors"
	"fmt"
	"strings"

	"github.com/UnknownOlympus/hestia/internal/models"
)

var (
	ErrRequiredField    = errors.New("required field")
	ErrLengthOutOfRange = errors.New("length out of range")
	ErrInvalidFormat    = errors.New("invalid format")

	// ErrUnavailable is returned when the data store cannot be reached.
	ErrUnavailable = errors.New("employee storage is unavailable")
	// ErrSaveFailed is returned when a valid record could not be stored.
	ErrSaveFailed = errors.New("failed to add employee")
	// ErrListFailed is returned when the employee list could not be read.
	ErrListFailed = errors.New("unable to retrieve employee data")
)

// Kind classifies a single field violation.
type Kind int

const (
	KindRequiredField Kind = iota + 1
	KindLengthOutOfRange
	KindInvalidFormat
)

func (k Kind) String() string {
	switch k {
	case KindRequiredField:
		return "required_field"
	case KindLengthOutOfRange:
		return "length_out_of_range"
	case KindInvalidFormat:
		return "invalid_format"
	default:
		return "unknown"
	}
}

// FieldError describes one rejected field. Min and Max are set for KindLengthOutOfRange only.
type FieldError struct {
	Field string
	Kind  Kind
	Min   int
	Max   int
}

func (e FieldError) Error() string {
	return e.Message()
}

// Message is the text shown to the person who filled in the form.
func (e FieldError) Message() string {
	label := fieldLabels[e.Field]
	if label == "" {
		label = e.Field
	}

	switch e.Kind {
	case KindRequiredField:
		return label + " is required"
	case KindLengthOutOfRange:
		return fmt.Sprintf("%s must be between %d and %d characters", label, e.Min, e.Max)
	case KindInvalidFormat:
		if msg, ok := formatMessages[e.Field]; ok {
			return msg
		}
		return "Invalid " + strings.ToLower(label) + " format"
	default:
		return label + " is invalid"
	}
}

func (e FieldError) Unwrap() error {
	switch e.Kind {
	case KindRequiredField:
		return ErrRequiredField
	case KindLengthOutOfRange:
		return ErrLengthOutOfRange
	case KindInvalidFormat:
		return ErrInvalidFormat
	default:
		return nil
	}
}

// ValidationError holds every violation found in one submission, ordered name, email, phone, address.
type ValidationError struct {
	Fields []FieldError
	// Input is the normalized submission, suitable for echoing back into the form.
	Input models.Submission
}

func (e *ValidationError) Error() string {
	return "invalid employee: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the user-facing message of each violation in order.
func (e *ValidationError) Messages() []string {
	messages := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		messages = append(messages, field.Message())
	}
	return messages
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields))
	for _, field := range e.Fields {
		errs = append(errs, field)
	}
	return errs
}
