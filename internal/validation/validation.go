// Package validation contains input validation helpers shared by the handlers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	minPasswordLength = 12
	maxPasswordLength = 128

	minNameLength = 2
	maxNameLength = 64

	maxSkillNameLength = 80
	maxCategoryLength  = 48
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidatePassword enforces password strength requirements.
func ValidatePassword(password string) error {
	runes := []rune(password)
	if len(runes) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if len(runes) > maxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain an uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain a lowercase letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain a digit")
	}
	if !hasSpecial {
		return fmt.Errorf("password must contain a special character")
	}
	return nil
}

// ValidateEmail checks the email address format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidateName checks a display name for length and leading/trailing whitespace.
func ValidateName(name string) error {
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("name cannot start or end with whitespace")
	}
	runes := []rune(name)
	if len(runes) < minNameLength {
		return fmt.Errorf("name must be at least %d characters", minNameLength)
	}
	if len(runes) > maxNameLength {
		return fmt.Errorf("name must be at most %d characters", maxNameLength)
	}
	return nil
}

// ValidateSkillName checks a skill name is present and within bounds.
func ValidateSkillName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("skill name is required")
	}
	if len([]rune(trimmed)) > maxSkillNameLength {
		return fmt.Errorf("skill name must be at most %d characters", maxSkillNameLength)
	}
	return nil
}

// ValidateCategory checks a skill category is within bounds. Empty is allowed.
func ValidateCategory(category string) error {
	if len([]rune(category)) > maxCategoryLength {
		return fmt.Errorf("category must be at most %d characters", maxCategoryLength)
	}
	return nil
}

// ValidateRating checks a feedback rating is a whole star value.
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}
