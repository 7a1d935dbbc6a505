package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	valid, _ := ValidateUsername("gopher_42")
	assert.True(t, valid)

	valid, msg := ValidateUsername("ab")
	assert.False(t, valid)
	assert.Contains(t, msg, "at least 3")

	valid, _ = ValidateUsername("has spaces")
	assert.False(t, valid)

	valid, msg = ValidateUsername("waaaaaaaaaaaaaaaaaaaaaaytoolong")
	assert.False(t, valid)
	assert.Contains(t, msg, "20")
}

func TestValidateEmail(t *testing.T) {
	valid, _ := ValidateEmail("user@example.com")
	assert.True(t, valid)

	for _, email := range []string{"", "plainaddress", "user@", "@example.com", "user@example"} {
		valid, _ := ValidateEmail(email)
		assert.False(t, valid, "expected %q to be rejected", email)
	}
}

func TestValidatePassword(t *testing.T) {
	valid, _ := ValidatePassword("Str0ng!pass")
	assert.True(t, valid)

	cases := map[string]string{
		"short1!":       "8 characters",
		"alllower1!":    "uppercase",
		"ALLUPPER1!":    "lowercase",
		"NoNumbers!":    "number",
		"NoSpecials123": "special",
	}
	for password, fragment := range cases {
		valid, msg := ValidatePassword(password)
		assert.False(t, valid, "expected %q to be rejected", password)
		assert.Contains(t, msg, fragment)
	}
}

func TestValidatePhone(t *testing.T) {
	valid, digits := ValidatePhone("+1 (555) 123-4567")
	assert.True(t, valid)
	assert.Equal(t, "15551234567", digits)

	valid, _ = ValidatePhone("12345")
	assert.False(t, valid)

	// Optional field
	valid, digits = ValidatePhone("")
	assert.True(t, valid)
	assert.Equal(t, "", digits)
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice(19.99))
	assert.Error(t, ValidatePrice(0))
	assert.Error(t, ValidatePrice(-5))
}

func TestValidateRating(t *testing.T) {
	for rating := MinRating; rating <= MaxRating; rating++ {
		assert.NoError(t, ValidateRating(rating))
	}
	assert.Error(t, ValidateRating(0))
	assert.Error(t, ValidateRating(6))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "plain text", SanitizeString("plain text"))
	assert.NotContains(t, SanitizeString("<script>alert(1)</script>"), "<script>")
}
