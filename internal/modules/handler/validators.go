package handler

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// timeSlotRe matches the booking slot format, e.g. "9:00 AM - 11:00 AM".
var timeSlotRe = regexp.MustCompile(`^(1[0-2]|[1-9]):[0-5][0-9] (AM|PM) - (1[0-2]|[1-9]):[0-5][0-9] (AM|PM)$`)

// RegisterValidators installs custom request validations on gin's validator
// engine. Call once during router setup.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
			return timeSlotRe.MatchString(fl.Field().String())
		})
	}
}
