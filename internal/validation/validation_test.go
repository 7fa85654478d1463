package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.co.uk",
		"weird+tag@example.io",
	}
	for _, email := range valid {
		assert.True(t, IsEmail(email), email)
	}

	invalid := []string{
		"",
		"plainstring",
		"missing-domain@",
		"@missing-local.com",
		"no-tld@example",
		"spaces in@example.com",
		"two@@example.com",
	}
	for _, email := range invalid {
		assert.False(t, IsEmail(email), email)
	}
}

func TestDescribe_PlainError(t *testing.T) {
	detail := Describe(errors.New("unexpected EOF"))
	assert.Equal(t, "unexpected EOF", detail)
}
