package service

import (
	"fmt"
	"regexp"
	"time"
	"unicode"
)

// Форматы дат и времени во входных данных.
const (
	dateLayout     = "2006-01-02"
	datetimeLayout = time.RFC3339
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^[+]?[0-9\s\-()]{8,15}$`)
)

// validator копит ошибки по полям; одна проверка может добавить
// не больше одного сообщения на вызов.
type validator struct {
	errs map[string][]string
}

func newValidator() *validator {
	return &validator{errs: map[string][]string{}}
}

func (v *validator) addError(field, msg string) {
	v.errs[field] = append(v.errs[field], msg)
}

// Err возвращает *ValidationError, если были ошибки, иначе nil.
func (v *validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.errs}
}

func (v *validator) required(value, field string) bool {
	if value == "" {
		v.addError(field, fmt.Sprintf("field %q is required", field))
		return false
	}
	return true
}

func (v *validator) minLength(value, field string, min int) bool {
	if len([]rune(value)) < min {
		v.addError(field, fmt.Sprintf("field %q must be at least %d characters", field, min))
		return false
	}
	return true
}

func (v *validator) maxLength(value, field string, max int) bool {
	if len([]rune(value)) > max {
		v.addError(field, fmt.Sprintf("field %q must not exceed %d characters", field, max))
		return false
	}
	return true
}

func (v *validator) email(value, field string) bool {
	if !emailRe.MatchString(value) {
		v.addError(field, fmt.Sprintf("field %q must be a valid email address", field))
		return false
	}
	return true
}

func (v *validator) phone(value, field string) bool {
	if !phoneRe.MatchString(value) {
		v.addError(field, fmt.Sprintf("field %q must be a valid phone number", field))
		return false
	}
	return true
}

func (v *validator) date(value, field string) bool {
	if _, err := time.Parse(dateLayout, value); err != nil {
		v.addError(field, fmt.Sprintf("field %q must be a valid date in YYYY-MM-DD format", field))
		return false
	}
	return true
}

func (v *validator) datetime(value, field string) bool {
	if _, err := time.Parse(datetimeLayout, value); err != nil {
		v.addError(field, fmt.Sprintf("field %q must be a valid RFC3339 timestamp", field))
		return false
	}
	return true
}

func (v *validator) inList(value, field string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	v.addError(field, fmt.Sprintf("field %q must be one of the allowed values", field))
	return false
}

// password проверяет минимальную стойкость: не короче 8 символов,
// хотя бы одна строчная и прописная буква и цифра.
func (v *validator) password(value, field string) bool {
	if !v.minLength(value, field, 8) {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit {
		v.addError(field, "password must contain at least one uppercase letter, one lowercase letter and one digit")
		return false
	}
	return true
}
