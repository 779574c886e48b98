package validation

import (
	"task-planner/internal/domain"
)

// ProjectValidator provides validation for projects and memberships
type ProjectValidator struct {
	validator *Validator
}

// NewProjectValidator creates a new project validator
func NewProjectValidator(v *Validator) *ProjectValidator {
	if v == nil {
		v = NewValidator()
	}
	return &ProjectValidator{validator: v}
}

// ValidateProjectForCreation validates a project name and description
func (pv *ProjectValidator) ValidateProjectForCreation(name, description string) error {
	validationError := NewValidationError()

	trimmed := pv.validator.TrimAndValidateString(name)
	if !pv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("name")
	} else if limit := pv.validator.MaxTitleLength(); !pv.validator.IsValidStringLength(trimmed, 1, limit) {
		validationError.AddInvalidLengthError("name", trimmed, 1, limit)
	}

	if limit := pv.validator.MaxDescriptionLength(); !pv.validator.IsValidStringLength(description, 0, limit) {
		validationError.AddInvalidLengthError("description", description, 0, limit)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateMember validates a member invitation: a user UUID and a role.
// Owners are created with the project and cannot be added afterwards.
func (pv *ProjectValidator) ValidateMember(userID string, role domain.Role) error {
	validationError := NewValidationError()

	if !pv.validator.IsNonEmptyString(userID) {
		validationError.AddRequiredError("user_id")
	} else if !pv.validator.IsValidID(userID) {
		validationError.AddInvalidFormatError("user_id", userID, "UUID")
	}

	switch {
	case !role.IsValid():
		validationError.AddInvalidValueError("role", role, "must be one of owner, editor, viewer")
	case role == domain.RoleOwner:
		validationError.AddInvalidValueError("role", role, "a project has exactly one owner")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateEmail checks that an email address is plausible
func (pv *ProjectValidator) ValidateEmail(email string) error {
	validationError := NewValidationError()

	normalized := domain.NormalizeEmail(email)
	if normalized == "" {
		validationError.AddRequiredError("email")
	} else if !emailRegex.MatchString(normalized) {
		validationError.AddInvalidFormatError("email", email, "name@domain")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}
