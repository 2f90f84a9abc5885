package model

import (
	"reflect"
	"strings"

	"github.com/deppfellow/wtwr-backend/internal/validation"
	"github.com/go-playground/validator/v10"
)

// validate is shared by every payload; validator caches struct metadata
// and is safe for concurrent use.
var validate = newValidator()

// newValidator reports field errors under their wire names (json or path
// param) instead of the Go field names.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "param"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})

	return v
}

// validateName rejects whitespace-only names, which pass the length tags.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return validation.CustomValidationErrors{{Field: "name", Message: "must not be blank"}}
	}
	return nil
}
