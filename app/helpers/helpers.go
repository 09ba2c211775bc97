package helpers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
)

func GenerateSlug(s string) string {
	return slug.Make(s)
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", err.Field())
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s must be a number.", err.Field())
		case "gte":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s.", err.Field(), err.Param())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s characters/value.", err.Field(), err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s may be at most %s characters/value.", err.Field(), err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("Validation %s failed on field %s.", err.Tag(), err.Field())
		}
	}
	return errorMessages
}
