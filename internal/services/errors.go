package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
	"github.com/SAP-F-2025/gym-service/internal/validator"
)

// Error kinds; handlers map each to one HTTP status
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
)

// ServiceError carries a client-facing message and unwraps to its kind
type ServiceError struct {
	Kind    error
	Message string
	Details interface{}
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Kind
}

func NewValidationError(message string, details interface{}) *ServiceError {
	return &ServiceError{Kind: ErrValidationFailed, Message: message, Details: details}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: ErrConflict, Message: message}
}

func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{Kind: ErrUnauthorized, Message: message}
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: ErrNotFound, Message: message}
}

// NewPermissionError reports a principal lacking rights for an action
func NewPermissionError(p models.Principal, resource, action string) *ServiceError {
	return &ServiceError{
		Kind:    ErrForbidden,
		Message: "Access denied",
		Details: map[string]interface{}{
			"resource": resource,
			"action":   action,
			"role":     p.Role,
		},
	}
}

// validationFailed wraps field errors; the first message becomes the summary
func validationFailed(errs validator.ValidationErrors) *ServiceError {
	return NewValidationError(errs.Error(), errs)
}

// Common client messages
const (
	msgUserExists          = "User already exists with this email"
	msgInvalidCredentials  = "Invalid credentials"
	msgUserNotFound        = "User not found"
	msgStudentNotFound     = "Student not found"
	msgInvalidResetToken   = "Invalid or expired token"
	msgFeeNotFound         = "Fee not found"
	msgDietFoodNotFound    = "Diet food not found"
	msgExerciseNotFound    = "Exercise not found"
	msgAssignmentNotFound  = "Assignment not found"
	msgNotificationMissing = "Notification not found or access denied"
	msgRecipientRequired   = "Valid user ID or email is required"
)

// notFoundOr converts a repository miss into a client-facing not found error
func notFoundOr(err error, message, op string) error {
	if repositories.IsNotFoundError(err) {
		return NewNotFoundError(message)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// requireCapability returns a permission error when the role lacks the capability
func requireCapability(p models.Principal, capability models.Capability, resource, action string) error {
	if !p.Can(capability) {
		return NewPermissionError(p, resource, action)
	}
	return nil
}
