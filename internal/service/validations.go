package service

import (
	"regexp"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once

	clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("alphanum_underscore", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for i, char := range value {
				// Cannot be started with a digit or underscore
				if i == 0 && (unicode.IsDigit(char) || char == '_') {
					return false
				}
				// Digits, letters or underscore
				if !unicode.IsLetter(char) && !unicode.IsDigit(char) && char != '_' {
					return false
				}
			}
			return true
		})
		// 24-hour wall clock, e.g. reminder times
		validate.RegisterValidation("clock_hhmm", func(fl validator.FieldLevel) bool {
			return clockRe.MatchString(fl.Field().String())
		})
	})
}
