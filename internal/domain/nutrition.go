package domain

// NutritionEntry is a single label/value pair read from label text.
// Value keeps the number exactly as printed (no unit, no normalization).
type NutritionEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// NutritionInfo maps a nutrient label to its value. Later occurrences of a
// label overwrite earlier ones.
type NutritionInfo map[string]string
