package validation

import (
	"regexp"
	"strings"
	"time"

	"task-planner/internal/config"
	"task-planner/internal/domain"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validator provides common validation utilities
type Validator struct {
	statusRegex *regexp.Regexp
	config      *config.ValidationConfig
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		statusRegex: regexp.MustCompile(`^[a-z][a-z0-9_]*$`),
		config:      nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	v := NewValidator()
	if cfg != nil {
		v.config = &cfg.Validation
	}
	return v
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len([]rune(strings.TrimSpace(s)))
	return length >= min && length <= max
}

// IsValidID checks that id is a canonical UUID
func (v *Validator) IsValidID(id string) bool {
	return domain.IsValidID(id)
}

// IsValidDate checks for a YYYY-MM-DD calendar date; empty is allowed
func (v *Validator) IsValidDate(date string) bool {
	if date == "" {
		return true
	}
	_, err := time.Parse(domain.DateLayout, date)
	return err == nil
}

// IsValidDateRange checks that start does not come after end when both are set
func (v *Validator) IsValidDateRange(start, end string) bool {
	if start == "" || end == "" {
		return true
	}
	// YYYY-MM-DD sorts lexically
	return start <= end
}

// IsValidStatus checks that a status is a lower-case token such as in_progress
func (v *Validator) IsValidStatus(status string) bool {
	return v.statusRegex.MatchString(status)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// MaxTitleLength returns the configured maximum title length or default
func (v *Validator) MaxTitleLength() int {
	if v.config != nil {
		return v.config.MaxTitleLength
	}
	return 255
}

// MaxDescriptionLength returns the configured maximum description length or default
func (v *Validator) MaxDescriptionLength() int {
	if v.config != nil {
		return v.config.MaxDescriptionLength
	}
	return 2000
}

// MaxPromptLength returns the configured maximum prompt length or default
func (v *Validator) MaxPromptLength() int {
	if v.config != nil {
		return v.config.MaxPromptLength
	}
	return 2000
}

// MaxExistingSubtasks returns the configured cap on existingSubtasks or default
func (v *Validator) MaxExistingSubtasks() int {
	if v.config != nil {
		return v.config.MaxExistingSubtasks
	}
	return 100
}
