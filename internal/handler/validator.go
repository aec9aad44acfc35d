package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/casevault/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("team", validateTeam)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	validateOnce.Do(func() {
		if validate == nil {
			InitValidator()
		}
	})
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = ValidationMsgFormat
		return errs
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errs[field] = ValidationMsgRequired
		case "team":
			errs[field] = ValidationMsgTeam
		case "max", "lte":
			errs[field] = fmt.Sprintf(ValidationMsgMax, e.Param())
		case "min", "gte":
			errs[field] = fmt.Sprintf(ValidationMsgMin, e.Param())
		case "gt":
			errs[field] = fmt.Sprintf(ValidationMsgGt, e.Param())
		default:
			errs[field] = ValidationMsgInvalid
		}
	}

	return errs
}

// validateTeam accepts "ct" or "t" in any case. Empty is left to "required".
func validateTeam(fl validator.FieldLevel) bool {
	team := fl.Field().String()
	if team == "" {
		return true
	}
	_, ok := domain.ParseTeam(team)
	return ok
}
