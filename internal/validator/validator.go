package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired = "is required"
	ErrMinValue = "must be at least %s"
	ErrMaxValue = "must be at most %s"
	ErrUUID     = "must be a valid UUID"
)

func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "uuid":
		return ErrUUID
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	default:
		return "is invalid"
	}
}
