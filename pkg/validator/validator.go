package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

// String renders the failure in a form that can be shown to API clients.
func (e *ErrorResponse) String() string {
	switch e.Tag {
	case "required", "present":
		return fmt.Sprintf("%s is required", e.FailedField)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", e.FailedField, e.Value)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", e.FailedField, e.Value)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", e.FailedField, e.Value)
	}
	return fmt.Sprintf("Field '%s' failed on tag '%s'", e.FailedField, e.Tag)
}

var validate = validator.New()

func init() {
	// Report fields by their JSON names so messages match the request body.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Numeric validates as its int64 value, or as nil when it was absent.
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if n, ok := v.Interface().(Numeric); ok && n.Valid() {
			return n.Int64()
		}
		return nil
	}, Numeric{})

	// present only runs for non-nil values, so reaching it means the field was sent.
	validate.RegisterValidation("present", func(fl validator.FieldLevel) bool {
		return true
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "body", Tag: "invalid", Value: err.Error()}}
		}
		for _, err := range validationErrors {
			var element ErrorResponse
			element.FailedField = err.Field()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// Message joins validation failures into a single sentence.
func Message(errs []*ErrorResponse) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.String()
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}
