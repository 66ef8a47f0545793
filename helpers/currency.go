package helpers

import "fmt"

// FormatUSD formats a number as US dollars with thousand separators for the
// KPI tiles
func FormatUSD(amount float64) string {
	// Convert to integer for formatting
	value := int64(amount)

	// Handle negative numbers
	negative := value < 0
	if negative {
		value = -value
	}

	formatted := groupThousands(value)
	if negative {
		return fmt.Sprintf("$-%s", formatted)
	}
	return fmt.Sprintf("$%s", formatted)
}

// FormatCount formats an integer with thousand separators
func FormatCount(n int) string {
	value := int64(n)
	if value < 0 {
		return fmt.Sprintf("-%s", groupThousands(-value))
	}
	return groupThousands(value)
}

func groupThousands(value int64) string {
	str := fmt.Sprintf("%d", value)
	length := len(str)

	if length <= 3 {
		return str
	}

	// Build the formatted string with commas as thousand separators
	var result string
	for i, digit := range str {
		if i > 0 && (length-i)%3 == 0 {
			result += ","
		}
		result += string(digit)
	}
	return result
}
