package validator

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validator contains a map of form field validation errors.
type Validator struct {
	NonFieldErrors []string
	FieldErrors    map[string]string
}

func (v *Validator) Valid() bool {
	return len(v.FieldErrors) == 0 && len(v.NonFieldErrors) == 0
}

func (v *Validator) AddNonFieldError(message string) {
	v.NonFieldErrors = append(v.NonFieldErrors, message)
}

// AddFieldError keeps the first message recorded for a field.
func (v *Validator) AddFieldError(key, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}

	if _, exists := v.FieldErrors[key]; !exists {
		v.FieldErrors[key] = message
	}
}

func (v *Validator) CheckField(ok bool, key, message string) {
	if !ok {
		v.AddFieldError(key, message)
	}
}

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MaxChars counts runes, so a CJK nickname is measured in characters, not bytes.
func MaxChars(value string, n int) bool {
	return utf8.RuneCountInString(Trim(value)) <= n
}

func Printable(value string) bool {
	return strings.IndexFunc(value, func(r rune) bool {
		return !unicode.IsPrint(r) && !unicode.IsSpace(r)
	}) < 0
}

func Trim(value string) string {
	return strings.TrimSpace(value)
}
