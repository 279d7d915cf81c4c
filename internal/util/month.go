package util

import "time"

const (
	monthKeyLayout = "2006-01"
	dateLayout     = "2006-01-02"
)

// CurrentMonthKey returns the "YYYY-MM" key for the present calendar month.
func CurrentMonthKey() string {
	return time.Now().Format(monthKeyLayout)
}

// ValidMonthKey reports whether key is a well-formed "YYYY-MM" string.
func ValidMonthKey(key string) bool {
	_, err := time.Parse(monthKeyLayout, key)
	return err == nil
}

// ValidDate reports whether date is a well-formed "YYYY-MM-DD" string.
func ValidDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}

// MonthKeyFromDate returns the "YYYY-MM" key a "YYYY-MM-DD" date falls in.
// The empty string is returned for malformed dates.
func MonthKeyFromDate(date string) string {
	if !ValidDate(date) {
		return ""
	}
	return date[:7]
}

// CompareDates orders two "YYYY-MM-DD" strings; lexicographic order is
// chronological order for this layout.
func CompareDates(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
