package domain

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// NewValidator returns a validator with the application's custom rules
// registered.
func NewValidator() *validator.Validate {
	v := validator.New()

	// Report validation failures under the JSON field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Usernames are letters, digits and underscores only.
	_ = v.RegisterValidation("username_chars", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	// Passwords must mix lower case, upper case and digits.
	_ = v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		var lower, upper, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case r >= 'a' && r <= 'z':
				lower = true
			case r >= 'A' && r <= 'Z':
				upper = true
			case r >= '0' && r <= '9':
				digit = true
			}
		}
		return lower && upper && digit
	})

	// Release years may run a little ahead of the calendar for announced
	// titles, but not arbitrarily far.
	_ = v.RegisterValidation("release_year_max", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(time.Now().Year()+5)
	})

	return v
}
