package validate

import "strings"

func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// Phone accepts E.164-style numbers: an optional leading plus followed by
// 8 to 15 digits.
func Phone(value string) bool {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "+")
	if len(value) < 8 || len(value) > 15 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
