// utils/validation.go
package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9]{6,15}$`)

// ValidatePhone accepts local and international numbers, ignoring spaces,
// dashes and parentheses.
func ValidatePhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return phoneRe.MatchString(cleaned)
}

// ParseFormInt parses an integer form value. A blank value counts as zero.
func ParseFormInt(field, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number, got %q", field, value)
	}
	return n, nil
}
