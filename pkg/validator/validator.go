package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
)

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("hhmm", validateHHMM)
	v.RegisterValidation("agegroup", validateAgeGroup)
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// validateHHMM accepts 24-hour wall-clock times such as "19:30".
func validateHHMM(fl validator.FieldLevel) bool {
	return hhmmPattern.MatchString(fl.Field().String())
}

// validateAgeGroup accepts the fixed age bucket labels or "any".
func validateAgeGroup(fl validator.FieldLevel) bool {
	return entities.IsValidAgeGroup(fl.Field().String())
}
