package employees

import (
	"errors"
	"fmt"
	"net/mail"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/go-playground/validator/v10"
)

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldAddress = "address"

	maxEmailLength = 254
)

var (
	phonePattern  = regexp.MustCompile(`^[0-9]{10}$`)
	domainPattern = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,63}$`)

	fieldLabels = map[string]string{
		FieldName:    "Name",
		FieldEmail:   "Email",
		FieldPhone:   "Phone number",
		FieldAddress: "Address",
	}
	formatMessages = map[string]string{
		FieldEmail: "Invalid email format",
		FieldPhone: "Phone number must be 10 digits",
	}
	lengthBounds = map[string][2]int{
		FieldName:    {2, 50},
		FieldAddress: {5, 200},
	}
)

// Validator turns raw form input into a CleanRecord or an ordered list of field violations.
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the employee-specific rules on a fresh validator instance.
func NewValidator() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("employee_email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("failed to register email rule: %w", err)
	}

	if err := validate.RegisterValidation("phone_digits", func(fl validator.FieldLevel) bool {
		return IsValidPhoneNumber(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("failed to register phone rule: %w", err)
	}

	return &Validator{validate: validate}, nil
}

// Validate normalizes every field and checks all of them, collecting each violation instead of
// stopping at the first. It returns either a record or a *ValidationError, never both.
func (v *Validator) Validate(raw models.Submission) (models.CleanRecord, error) {
	input := Normalize(raw)

	err := v.validate.Struct(input)
	if err == nil {
		return models.CleanRecord{
			Name:    input.Name,
			Email:   input.Email,
			Phone:   input.Phone,
			Address: input.Address,
		}, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return models.CleanRecord{}, fmt.Errorf("failed to validate employee: %w", err)
	}

	verr := &ValidationError{Input: input, Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, toFieldError(fe))
	}

	return models.CleanRecord{}, verr
}

func toFieldError(fe validator.FieldError) FieldError {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return FieldError{Field: field, Kind: KindRequiredField}
	case "min", "max":
		bounds := lengthBounds[field]
		return FieldError{Field: field, Kind: KindLengthOutOfRange, Min: bounds[0], Max: bounds[1]}
	default:
		return FieldError{Field: field, Kind: KindInvalidFormat}
	}
}

// Normalize trims surrounding whitespace and removes backslashes and control characters from every
// field. Applying it twice gives the same result as applying it once.
func Normalize(raw models.Submission) models.Submission {
	return models.Submission{
		Name:    normalizeField(raw.Name),
		Email:   normalizeField(raw.Email),
		Phone:   normalizeField(raw.Phone),
		Address: normalizeField(raw.Address),
	}
}

func normalizeField(value string) string {
	value = strings.Map(func(r rune) rune {
		switch {
		case r == '\\':
			return -1
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, value)

	return strings.TrimSpace(value)
}

// IsValidEmail reports whether email is a single bare ASCII address with a dotted domain.
func IsValidEmail(email string) bool {
	if len(email) > maxEmailLength || !isASCII(email) {
		return false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return false
	}

	return domainPattern.MatchString(strings.ToLower(email[at+1:]))
}

func isASCII(value string) bool {
	for i := range len(value) {
		if value[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// IsValidPhoneNumber reports whether phone is exactly ten ASCII digits.
func IsValidPhoneNumber(phone string) bool {
	return phonePattern.MatchString(phone)
}
