// Package validation holds the field rules shared by every registration and
// update workflow. All checks are pure and never fail with an error.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxEmailLength          = 50
	MaxNameLength           = 100
	MaxCourseLength         = 80
	MaxSpecializationLength = 50
	MinPasswordLength       = 10
	MaxPasswordLength       = 20
)

var (
	cpfPattern   = regexp.MustCompile(`^[0-9]{11}$`)
	phonePattern = regexp.MustCompile(`^[0-9]{11,15}$`)
	tokenPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,30}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const (
	RulePasswordLength  = "must be between 10 and 20 characters"
	RulePasswordCase    = "must contain at least one uppercase and one lowercase letter"
	RulePasswordSpecial = "must contain at least one special character"
	RulePasswordDigit   = "must contain at least one letter and one number"
)

// CPF reports whether value is exactly 11 digits.
func CPF(value string) bool {
	return cpfPattern.MatchString(value)
}

// PersonName accepts Latin letters, accented ones included, and spaces.
func PersonName(value string) bool {
	if strings.TrimSpace(value) == "" || utf8.RuneCountInString(value) > MaxNameLength {
		return false
	}
	for _, r := range value {
		if r == ' ' {
			continue
		}
		if !unicode.IsLetter(r) || !unicode.In(r, unicode.Latin) {
			return false
		}
	}
	return true
}

// Phone applies the same 11 to 15 digit rule to users, students and instructors.
func Phone(value string) bool {
	return phonePattern.MatchString(value)
}

func Email(value string) bool {
	return utf8.RuneCountInString(value) <= MaxEmailLength && emailPattern.MatchString(value)
}

func Registration(value string) bool {
	return tokenPattern.MatchString(value)
}

func Username(value string) bool {
	return tokenPattern.MatchString(value)
}

func Course(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	return utf8.RuneCountInString(value) <= MaxCourseLength && !strings.ContainsAny(value, "\r\n")
}

func Specialization(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed != "" && utf8.RuneCountInString(trimmed) <= MaxSpecializationLength
}

// Password returns every rule the value breaks, in a stable order. An empty
// result means the password is acceptable.
func Password(value string) []string {
	var hasUpper, hasLower, hasLetter, hasDigit, hasSpecial bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			hasUpper, hasLetter = true, true
		case unicode.IsLower(r):
			hasLower, hasLetter = true, true
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	var failed []string
	length := utf8.RuneCountInString(value)
	if length < MinPasswordLength || length > MaxPasswordLength {
		failed = append(failed, RulePasswordLength)
	}
	if !hasUpper || !hasLower {
		failed = append(failed, RulePasswordCase)
	}
	if !hasSpecial {
		failed = append(failed, RulePasswordSpecial)
	}
	if !hasLetter || !hasDigit {
		failed = append(failed, RulePasswordDigit)
	}
	return failed
}
