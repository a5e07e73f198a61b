package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voltask/tasksphere/internal/api/validation"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@example.co.uk",
		"user+tag@example.io",
		"a@b.cd",
	}
	for _, email := range valid {
		assert.True(t, validation.IsValidEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@.com",
		"user @example.com",
		strings.Repeat("a", 250) + "@example.com",
	}
	for _, email := range invalid {
		assert.False(t, validation.IsValidEmail(email), "expected %q to be invalid", email)
	}
}

func TestIsValidOTP(t *testing.T) {
	assert.True(t, validation.IsValidOTP("123456"))
	assert.True(t, validation.IsValidOTP("000000"))

	invalid := []string{"", "12345", "1234567", "12345a", "abcdef", " 12345"}
	for _, otp := range invalid {
		assert.False(t, validation.IsValidOTP(otp), "expected %q to be invalid", otp)
	}
}
