package validator

// Validator is the entry point shared by handlers and services
type Validator struct {
	business *BusinessValidator
}

// New creates a validator with all gym business rules registered
func New() *Validator {
	return &Validator{business: NewBusinessValidator()}
}

// GetBusinessValidator exposes the business rule validator
func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}

// Validate runs struct tag validation only
func (v *Validator) Validate(s interface{}) error {
	if errs := v.business.Validate(s); len(errs) > 0 {
		return errs
	}
	return nil
}
