package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ieltslab/practice-service/internal/catalog"
)

// Custom validation functions

func ValidateQuestionType(fl validator.FieldLevel) bool {
	validTypes := []catalog.QuestionType{
		catalog.FillInBlank,
		catalog.MultipleChoice,
		catalog.TrueFalseNotGiven,
		catalog.Matching,
		catalog.Drag,
	}

	value := fl.Field().String()
	for _, validType := range validTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func ValidateTestKind(fl validator.FieldLevel) bool {
	validKinds := []catalog.TestKind{
		catalog.KindReading,
		catalog.KindListening,
	}

	value := fl.Field().String()
	for _, validKind := range validKinds {
		if string(validKind) == value {
			return true
		}
	}
	return false
}

// RegisterCustomValidators registers all custom validators
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", ValidateQuestionType)
	validate.RegisterValidation("test_kind", ValidateTestKind)

	// Report field names from json tags so error messages match the wire format
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// NewValidator creates a validator with the custom rules registered
func NewValidator() *validator.Validate {
	validate := validator.New()
	RegisterCustomValidators(validate)
	return validate
}
