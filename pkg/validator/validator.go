package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse describes a single failed validation rule.
type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

func (e *ErrorResponse) String() string {
	if e.Value != "" {
		return fmt.Sprintf("field %s failed on the %s=%s rule", e.FailedField, e.Tag, e.Value)
	}
	return fmt.Sprintf("field %s failed on the %s rule", e.FailedField, e.Tag)
}

var validate = validator.New()

// ValidateStruct runs the validate tags of data and returns one entry per
// failed rule, or nil when everything passes.
func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.Field()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
