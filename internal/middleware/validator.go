package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var containerPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)

// ValidateContainerName checks bucket naming rules (S3 style)
func ValidateContainerName(name string) error {
	if name == "" {
		return fmt.Errorf("container name cannot be empty")
	}
	if !containerPattern.MatchString(name) {
		return fmt.Errorf("invalid container name: %s (lowercase alphanumeric, dot, dash, 3-63 chars)", name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("invalid container name: consecutive dots")
	}
	return nil
}

// ValidateObjectKey validates object store keys
func ValidateObjectKey(key string) error {
	if key == "" {
		return fmt.Errorf("object key cannot be empty")
	}
	if len(key) > 1024 {
		return fmt.Errorf("object key too long (max 1024 chars)")
	}
	if strings.HasPrefix(key, "/") {
		return fmt.Errorf("object key must not start with /")
	}

	// Block path traversal attempts
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return fmt.Errorf("path traversal detected in object key")
		}
	}

	// Block control characters
	for _, r := range key {
		if r < 32 || r == 127 {
			return fmt.Errorf("invalid characters in object key")
		}
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates email address format
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}

// ValidateDays validates days parameter
func ValidateDays(days int) int {
	if days <= 0 {
		return 7 // default
	}
	if days > 365 {
		return 365 // max 1 year
	}
	return days
}
