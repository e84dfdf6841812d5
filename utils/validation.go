package utils

import (
	"regexp"
	"time"
)

var phoneRe = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// ValidPhone reports whether s is a 10-digit Indian mobile number.
func ValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// ValidDate reports whether s is a well-formed "YYYY-MM-DD" calendar day.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidWindow reports whether [start, end) is a sane minute-resolution window
// within a single day.
func ValidWindow(start, end int) bool {
	return start >= 0 && end <= 24*60 && start < end
}

// FormatMinutes renders minutes-from-midnight as "HH:MM" for messages.
func FormatMinutes(m int) string {
	return time.Date(0, 1, 1, m/60, m%60, 0, 0, time.UTC).Format("15:04")
}
