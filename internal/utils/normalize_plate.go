package utils

import "strings"

// NormalizePlate brings a truck plate number to a single registry format:
// spaces and dashes stripped, upper case.
func NormalizePlate(raw string) string {
	normalized := strings.TrimSpace(raw)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ToUpper(normalized)
	return normalized
}
