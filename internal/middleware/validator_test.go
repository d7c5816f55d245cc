package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateContainerName(t *testing.T) {
	valid := []string{"documents", "my-bucket", "docs.prod", "abc"}
	for _, name := range valid {
		assert.NoError(t, ValidateContainerName(name), "name %q", name)
	}

	invalid := []string{"", "ab", "UPPER", "has space", "-leading", "trailing-", "double..dot"}
	for _, name := range invalid {
		assert.Error(t, ValidateContainerName(name), "name %q", name)
	}
}

func TestValidateObjectKey(t *testing.T) {
	valid := []string{"report.pdf", "Financial/report.pdf", "a/b/c/deep.pdf"}
	for _, key := range valid {
		assert.NoError(t, ValidateObjectKey(key), "key %q", key)
	}

	invalid := []string{"", "/absolute.pdf", "../escape.pdf", "a/../b.pdf", "bad\x00byte.pdf"}
	for _, key := range invalid {
		assert.Error(t, ValidateObjectKey(key), "key %q", key)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.NoError(t, ValidateEmail("first.last+tag@sub.domain.org"))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
}

func TestValidateLimitAndDays(t *testing.T) {
	assert.Equal(t, 20, ValidateLimit(0))
	assert.Equal(t, 50, ValidateLimit(50))
	assert.Equal(t, 100, ValidateLimit(9999))

	assert.Equal(t, 7, ValidateDays(-1))
	assert.Equal(t, 30, ValidateDays(30))
	assert.Equal(t, 365, ValidateDays(1000))
}
