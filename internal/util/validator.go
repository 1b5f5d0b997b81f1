package util

import (
	"fmt"
	"strings"
	"time"
)

// 金额上限：1 千万（分）
const maxAmountCent Cents = 10_000_000_00

// ValidateAmount 验证金额（非负且不超过上限）
func ValidateAmount(amount Cents) error {
	if amount < 0 {
		return fmt.Errorf("Amount cannot be negative")
	}
	if amount > maxAmountCent {
		return fmt.Errorf("Amount too large")
	}
	return nil
}

// ValidateDescription 验证备注（非空，最多 200 字符）
func ValidateDescription(desc string) error {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return fmt.Errorf("Description is required")
	}
	if len([]rune(desc)) > 200 {
		return fmt.Errorf("Description cannot exceed 200 characters")
	}
	return nil
}

// ParseDate parses an expense date in one of the accepted layouts.
func ParseDate(dateStr string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,          // 2024-01-05T00:00:00Z
		"2006-01-02T15:04:05", // 2024-01-05T00:00:00
		"2006-01-02",          // 2024-01-05
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", dateStr)
}
