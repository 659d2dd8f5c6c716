package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for the planner's date/time string formats
	if err := Validate.RegisterValidation("clock_time", validateClockTime); err != nil {
		panic(fmt.Sprintf("failed to register clock_time validator: %v", err))
	}
	if err := Validate.RegisterValidation("iso_date", validateISODate); err != nil {
		panic(fmt.Sprintf("failed to register iso_date validator: %v", err))
	}
}

func validateClockTime(fl validator.FieldLevel) bool {
	return ValidateTimeOfDay(fl.Field().String()) == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	return ValidateDate(fl.Field().String()) == nil
}

// SanitizeText sanitizes text input by trimming whitespace and removing
// control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateTimeOfDay validates an "HH:MM" time-of-day string
func ValidateTimeOfDay(value string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return fmt.Errorf("invalid time: %s (must be HH:MM, 24-hour)", value)
	}
	return nil
}

// ValidateDate validates a "YYYY-MM-DD" date string
func ValidateDate(value string) error {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("invalid date: %s (must be YYYY-MM-DD)", value)
	}
	return nil
}
