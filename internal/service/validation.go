package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// RequiredFieldsMessage is shown when a form fails validation.
const RequiredFieldsMessage = "Please fill all required fields."

// FormValidator checks submitted forms against their `validate` tags.
type FormValidator struct {
	validate *validator.Validate
}

// NewFormValidator builds a validator that reports fields by their json name.
func NewFormValidator() *FormValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return &FormValidator{validate: v}
}

// Validate returns a VALIDATION_FAILED error listing each failing field and rule.
func (f *FormValidator) Validate(form any) error {
	err := f.validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewInternalError(err)
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return apperrors.NewValidationError(RequiredFieldsMessage, details)
}
