package usecase

import (
	"regexp"
	"strings"

	"github.com/labellens/backend/internal/domain"
)

// nutritionEntryRegex captures "<letters and spaces> <number>[%]" runs.
// Stray words before a number become part of the label; units are never captured.
var nutritionEntryRegex = regexp.MustCompile(`([a-zA-Z ]+)\s*(\d+\.?\d*)\s*%?`)

// ParseNutrition extracts label -> value pairs from label text.
// The text is lowercased first; a repeated label keeps its last value.
func ParseNutrition(text string) domain.NutritionInfo {
	info := make(domain.NutritionInfo)
	for _, entry := range ParseNutritionEntries(text) {
		info[entry.Label] = entry.Value
	}
	return info
}

// ParseNutritionEntries returns the same pairs as ParseNutrition as an ordered
// slice: one entry per distinct label, placed where the label first appeared
// and carrying its last value.
func ParseNutritionEntries(text string) []domain.NutritionEntry {
	matches := nutritionEntryRegex.FindAllStringSubmatch(strings.ToLower(text), -1)

	entries := make([]domain.NutritionEntry, 0, len(matches))
	position := make(map[string]int, len(matches))

	for _, m := range matches {
		label := strings.TrimSpace(m[1])
		value := m[2]

		if idx, seen := position[label]; seen {
			entries[idx].Value = value
			continue
		}
		position[label] = len(entries)
		entries = append(entries, domain.NutritionEntry{Label: label, Value: value})
	}

	return entries
}
