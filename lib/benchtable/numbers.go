package benchtable

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePercent parses cell text like "2.57%" or "-0.46%" into its
// numeric value. A leading "?" (the site's low-significance marker) is
// tolerated.
func ParsePercent(text string) (float64, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "?")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty percent cell %q", text)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse percent cell %q: %w", text, err)
	}
	return v, nil
}

// ParseCount parses cell text like "1,234,567" into its numeric value,
// stripping comma thousands separators.
func ParseCount(text string) (float64, error) {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty count cell %q", text)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse count cell %q: %w", text, err)
	}
	return v, nil
}

// ParseFactor parses a plain decimal cell such as the significance
// factor column.
func ParseFactor(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("empty factor cell %q", text)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse factor cell %q: %w", text, err)
	}
	return v, nil
}
