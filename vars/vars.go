package vars

import "strings"

func DerefOrZero[T any](ptr *T) (ret T) {
	if ptr == nil {
		return
	}
	return *ptr
}

// FirstNonZero returns the first value that is not the zero value, so
// flags, config entries and defaults can be listed in precedence order.
func FirstNonZero[T comparable](values ...T) T {
	var zero T
	for _, value := range values {
		if value != zero {
			return value
		}
	}
	return zero
}

func StrToBool(str string) bool {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true", "t", "yes", "y", "on", "1":
		return true
	}
	return false
}
