package validation_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"classmanager/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestCPF(t *testing.T) {
	assert.True(t, validation.CPF("12345678901"))
	assert.False(t, validation.CPF("1234567890"))
	assert.False(t, validation.CPF("123456789012"))
	assert.False(t, validation.CPF("123.456.789-01"))
	assert.False(t, validation.CPF(""))
}

func TestPersonName(t *testing.T) {
	cases := map[string]bool{
		"Maria da Silva":           true,
		"João Conceição":           true,
		"Ana":                      true,
		"":                         false,
		"   ":                      false,
		"R2D2":                     false,
		"Jo_ana":                   false,
		strings.Repeat("a", 100):   true,
		strings.Repeat("a", 101):   false,
		"Δημήτρης":                 false,
		"Anne-Marie":               false,
		"Ünal Öztürk":              true,
		"multiplication × symbol": false,
	}
	for name, want := range cases {
		assert.Equal(t, want, validation.PersonName(name), name)
	}
}

func TestPhone(t *testing.T) {
	assert.True(t, validation.Phone("11987654321"))
	assert.True(t, validation.Phone("551198765432100"))
	assert.False(t, validation.Phone("1198765432"))
	assert.False(t, validation.Phone("5511987654321000"))
	assert.False(t, validation.Phone("(11)98765-4321"))
}

func TestEmail(t *testing.T) {
	assert.True(t, validation.Email("ana@school.com"))
	assert.False(t, validation.Email("ana@school"))
	assert.False(t, validation.Email("ana school@x.com"))
	assert.False(t, validation.Email("@school.com"))

	long := strings.Repeat("a", 41) + "@school.com"
	assert.Len(t, long, 52)
	assert.False(t, validation.Email(long))
}

func TestEmailCountsCharactersNotBytes(t *testing.T) {
	accented := strings.Repeat("é", 39) + "@school.com"
	assert.Equal(t, 50, utf8.RuneCountInString(accented))
	assert.Greater(t, len(accented), validation.MaxEmailLength)
	assert.True(t, validation.Email(accented))

	assert.False(t, validation.Email("é"+accented))
}

func TestRegistrationAndUsername(t *testing.T) {
	assert.True(t, validation.Registration("000001"))
	assert.True(t, validation.Registration("ABC123"))
	assert.False(t, validation.Registration("ABC-123"))
	assert.False(t, validation.Registration("matrícula"))
	assert.False(t, validation.Registration(strings.Repeat("a", 31)))

	assert.True(t, validation.Username("teacher01"))
	assert.False(t, validation.Username("teacher 01"))
	assert.False(t, validation.Username(""))
}

func TestCourse(t *testing.T) {
	assert.True(t, validation.Course("Introdução à Programação"))
	assert.True(t, validation.Course(strings.Repeat("x", 80)))
	assert.False(t, validation.Course(strings.Repeat("x", 81)))
	assert.False(t, validation.Course(""))
	assert.False(t, validation.Course("line\nbreak"))
}

func TestSpecialization(t *testing.T) {
	assert.True(t, validation.Specialization(" Go "))
	assert.False(t, validation.Specialization("  "))
	assert.False(t, validation.Specialization(strings.Repeat("x", 51)))
}

func TestPasswordReportsEveryFailedRule(t *testing.T) {
	failed := validation.Password("abc")
	assert.Equal(t, []string{
		validation.RulePasswordLength,
		validation.RulePasswordCase,
		validation.RulePasswordSpecial,
		validation.RulePasswordDigit,
	}, failed)
}

func TestPasswordAccepted(t *testing.T) {
	assert.Empty(t, validation.Password("Str0ng!Pass123"))
}

func TestPasswordPartialFailures(t *testing.T) {
	assert.Equal(t, []string{validation.RulePasswordSpecial}, validation.Password("Str0ngPass123"))
	assert.Equal(t, []string{validation.RulePasswordLength}, validation.Password("Str0ng!Pass123456789012"))
	assert.Equal(t, []string{validation.RulePasswordCase}, validation.Password("str0ng!pass123"))
}
