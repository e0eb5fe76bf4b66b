package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ivannizarr/chill-app-adv-be/internal/domain"
)

// Response is the envelope every JSON endpoint returns.
type Response struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Data       interface{}        `json:"data,omitempty"`
	Error      string             `json:"error,omitempty"`
	Errors     []FieldError       `json:"errors,omitempty"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

// FieldError is one per-field validation issue.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldErrors turns validator failures into per-field messages.
func fieldErrors(err error) []FieldError {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		out = append(out, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "username_chars":
		return "may only contain letters, digits and underscores"
	case "password_strength":
		return "must contain upper case, lower case and a digit"
	case "release_year_max":
		return "is too far in the future"
	default:
		return fmt.Sprintf("is invalid (%s)", fe.Tag())
	}
}
