package middleware

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// The booking-specific binding validators are installed on gin's validator
// engine as soon as this package is linked in; every handler that binds a
// request with these tags imports it.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	if err := v.RegisterValidation("bookingdate", validDate); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("bookingtime", validTime); err != nil {
		panic(err)
	}
}

// validDate accepts YYYY-MM-DD.
func validDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// validTime accepts HH:MM wall clock.
func validTime(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}
