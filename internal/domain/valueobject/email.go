package valueobject

import (
	"regexp"
	"strings"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
)

var emailPattern = regexp.MustCompile(`^[a-z0-9+_.-]+@[a-z0-9-]+(\.[a-z0-9-]+)*\.[a-z]{2,}$`)

// Email is a normalized (trimmed, lowercased) and validated address.
// The zero value is an empty, invalid email.
type Email struct {
	value string
}

// NewEmail normalizes raw and validates it. Normalization runs first so that
// case and whitespace variants collapse to one canonical value.
func NewEmail(raw string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return Email{}, errs.Validation(errs.CodeEmailRequired, "email must not be blank")
	}
	if !emailPattern.MatchString(v) {
		return Email{}, errs.Validation(errs.CodeInvalidEmailFormat, "invalid email format: "+v)
	}
	return Email{value: v}, nil
}

// MustEmail is NewEmail for literals known to be valid. It panics otherwise.
func MustEmail(raw string) Email {
	e, err := NewEmail(raw)
	if err != nil {
		panic(err)
	}
	return e
}

func (e Email) String() string { return e.value }

func (e Email) IsZero() bool { return e.value == "" }

func (e Email) Equals(other Email) bool { return e.value == other.value }

// Domain returns the part after '@'.
func (e Email) Domain() string {
	if i := strings.LastIndexByte(e.value, '@'); i >= 0 {
		return e.value[i+1:]
	}
	return ""
}

func (e Email) MarshalText() ([]byte, error) {
	return []byte(e.value), nil
}

func (e *Email) UnmarshalText(b []byte) error {
	v, err := NewEmail(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
