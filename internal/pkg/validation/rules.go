package validation

import (
	"regexp"
	"time"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Register number pattern - alphanumeric, 6 to 16 characters
	RegNoPattern = `^[A-Za-z0-9]{6,16}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100

	// DateLayout is the calendar date wire format for from_date/to_date.
	DateLayout = "2006-01-02"
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
	RegNo *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	RegNo: regexp.MustCompile(RegNoPattern),
}

// ParseDate parses a calendar date in the wire format.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ValidDateRange reports whether from..to is a well-formed leave period.
func ValidDateRange(from, to time.Time) bool {
	return !from.IsZero() && !to.IsZero() && !to.Before(from)
}

// ValidCGPA reports whether an optional CGPA value is acceptable.
func ValidCGPA(v *float64) bool {
	return v == nil || *v >= 0
}

// ValidAttendance reports whether an optional attendance percentage is
// within 0..100.
func ValidAttendance(v *float64) bool {
	return v == nil || (*v >= 0 && *v <= 100)
}
