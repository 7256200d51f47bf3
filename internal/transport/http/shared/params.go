package shared

import (
	"strconv"
)

// ParseYear parses a fiscal year path segment, returning 0 for garbage so
// lookups miss cleanly.
func ParseYear(raw string) int {
	year, err := strconv.Atoi(raw)
	if err != nil || year < 0 {
		return 0
	}
	return year
}

// IndexedField renders a field path like "employees[2]" for validation
// issues on repeated elements.
func IndexedField(field string, index int) string {
	return field + "[" + strconv.Itoa(index) + "]"
}
