package util

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()
}

type ErrorResponse struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Msg   string `json:"message"`
}

func ValidateStruct(s interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := Validate.Struct(s)
	if err != nil {

		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.Field = err.Field()
			element.Tag = err.Tag()

			switch err.Tag() {
			case "required":
				element.Msg = fmt.Sprintf("Field '%s' is required.", element.Field)
			case "min":
				element.Msg = fmt.Sprintf("Field '%s' must have at least %s characters/value.", element.Field, err.Param())
			case "max":
				element.Msg = fmt.Sprintf("Field '%s' must have at most %s characters/value.", element.Field, err.Param())
			case "email":
				element.Msg = "Invalid email format."
			case "datetime":
				element.Msg = fmt.Sprintf("Field '%s' must match the format %s.", element.Field, err.Param())
			case "gtefield":
				element.Msg = fmt.Sprintf("Field '%s' must not be before '%s'.", element.Field, err.Param())
			case "oneof":
				element.Msg = fmt.Sprintf("Field '%s' must be one of: %s.", element.Field, err.Param())
			default:
				element.Msg = fmt.Sprintf("Field '%s' failed validation for tag '%s'.", element.Field, element.Tag)
			}
			errors = append(errors, &element)
		}
	}
	return errors
}

// FormatValidationErrors flattens a validation error list into one message.
func FormatValidationErrors(errs []*ErrorResponse) string {
	out := ""
	for i, e := range errs {
		if i > 0 {
			out += "; "
		}
		out += e.Msg
	}
	return out
}
