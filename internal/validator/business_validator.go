package validator

import (
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/gym-service/internal/models"
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,4}$`)

const (
	passwordMinLength = 8
	passwordMaxLength = 20
	minimumMemberAge  = 18
)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	// Report json field names so messages match the request payload
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateRegistration validates account creation including role-conditional fields.
// Callers normalize email and default the role before calling.
func (bv *BusinessValidator) ValidateRegistration(req *RegisterRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if models.UserRole(req.Role) == models.RoleUser {
		if req.Age == nil {
			errors = append(errors, ValidationError{
				Field:   "age",
				Message: "Age is required for members",
				Rule:    "business_logic",
			})
		} else if *req.Age < minimumMemberAge {
			errors = append(errors, ValidationError{
				Field:   "age",
				Message: "You must be at least 18 years old",
				Value:   *req.Age,
				Rule:    "business_logic",
			})
		}
		if req.Gender == "" {
			errors = append(errors, ValidationError{
				Field:   "gender",
				Message: "Gender is required for members",
				Rule:    "business_logic",
			})
		}
	}

	return errors
}

// ValidatePasswordReset validates the consume phase of a password reset
func (bv *BusinessValidator) ValidatePasswordReset(req *ResetPasswordRequest) ValidationErrors {
	var errors ValidationErrors

	if req.Token == "" || req.Password == "" || req.ConfirmPassword == "" {
		return ValidationErrors{{
			Field:   "token",
			Message: "Password, confirm password and token are required",
			Rule:    "required",
		}}
	}

	if req.Password != req.ConfirmPassword {
		return ValidationErrors{{
			Field:   "confirmPassword",
			Message: "Passwords do not match",
			Rule:    "business_logic",
		}}
	}

	errors = append(errors, bv.Validate(req)...)
	return errors
}

// ValidateAttendance validates a single attendance write
func (bv *BusinessValidator) ValidateAttendance(req *AttendanceRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)
	if len(errors) > 0 {
		return errors
	}

	if _, err := models.HoursBetween(req.CheckIn, req.CheckOut); err != nil {
		errors = append(errors, ValidationError{
			Field:   "checkOut",
			Message: "Check-out time must be after check-in time",
			Value:   req.CheckOut,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateBulkAttendance validates every record in a bulk write
func (bv *BusinessValidator) ValidateBulkAttendance(req *BulkAttendanceRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)
	if len(errors) > 0 {
		return errors
	}

	seen := make(map[string]bool, len(req.Records))
	for i := range req.Records {
		errors = append(errors, bv.ValidateAttendance(&req.Records[i])...)

		key := req.Records[i].UserID + "|" + req.Records[i].Date
		if seen[key] {
			errors = append(errors, ValidationError{
				Field:   "attendanceRecords",
				Message: "Duplicate record for the same user and date",
				Value:   key,
				Rule:    "business_logic",
			})
		}
		seen[key] = true
	}

	return errors
}

// ValidateDateRange checks that from <= to for assignment windows
func (bv *BusinessValidator) ValidateDateRange(from, to string) ValidationErrors {
	fromDate, err1 := time.Parse(models.DateLayout, from)
	toDate, err2 := time.Parse(models.DateLayout, to)
	if err1 != nil || err2 != nil {
		return nil
	}
	if toDate.Before(fromDate) {
		return ValidationErrors{{
			Field:   "toDate",
			Message: "toDate must not be before fromDate",
			Value:   to,
			Rule:    "business_logic",
		}}
	}
	return nil
}

// ValidateDietAssignment validates a diet assignment payload
func (bv *BusinessValidator) ValidateDietAssignment(req *DietAssignmentRequest) ValidationErrors {
	var errors ValidationErrors
	errors = append(errors, bv.Validate(req)...)
	errors = append(errors, bv.ValidateDateRange(req.FromDate, req.ToDate)...)
	return errors
}

// ValidateExerciseAssignment validates an exercise assignment payload
func (bv *BusinessValidator) ValidateExerciseAssignment(req *ExerciseAssignmentRequest) ValidationErrors {
	var errors ValidationErrors
	errors = append(errors, bv.Validate(req)...)
	errors = append(errors, bv.ValidateDateRange(req.FromDate, req.ToDate)...)
	return errors
}

// ValidateNotification requires a recipient by id or email
func (bv *BusinessValidator) ValidateNotification(req *NotificationCreateRequest) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(req.UserID) == "" && strings.TrimSpace(req.UserEmail) == "" {
		errors = append(errors, ValidationError{
			Field:   "userId",
			Message: "Valid user ID or email is required",
			Rule:    "business_logic",
		})
	}
	errors = append(errors, bv.Validate(req)...)

	return errors
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	bv.validate.RegisterValidation("gym_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})

	bv.validate.RegisterValidation("password_length", func(fl validator.FieldLevel) bool {
		length := len(fl.Field().String())
		return length >= passwordMinLength && length <= passwordMaxLength
	})

	// Letters and digits only, with at least one lower, one upper and one digit
	bv.validate.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})

	bv.validate.RegisterValidation("gym_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).IsValid()
	})

	bv.validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := models.ParseClock(fl.Field().String())
		return err == nil
	})
}

// IsStrongPassword applies the password composition rule
func IsStrongPassword(password string) bool {
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			return false
		}
	}
	return hasLower && hasUpper && hasDigit
}
