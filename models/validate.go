package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var employeeIDPattern = regexp.MustCompile(`^\d{6}$`)

// ValidEmployeeID reports whether id is exactly six digits and not the
// reserved placeholder "000000".
func ValidEmployeeID(id string) bool {
	return employeeIDPattern.MatchString(id) && id != "000000"
}

// ValidEventDate reports whether date parses as YYYY-MM-DD and falls on
// today or later, compared as calendar dates.
func ValidEventDate(date string) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(today)
}

// RegisterValidators installs the custom binding rules used by the request
// types in this package. Must be called once against gin's binding engine
// before any route that binds these types is served.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("employeeid", func(fl validator.FieldLevel) bool {
		return ValidEmployeeID(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("eventdate", func(fl validator.FieldLevel) bool {
		return ValidEventDate(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}
