package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// objectIDRegex matches a 24-character hex MongoDB ObjectID.
var objectIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// validateObjectID validates that a string is a well-formed ObjectID.
func validateObjectID(fl validator.FieldLevel) bool {
	return objectIDRegex.MatchString(fl.Field().String())
}

// RegisterCustomValidators registers all custom validators with gin's validator
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("objectid", validateObjectID)
	}
}
