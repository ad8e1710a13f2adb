package usecase

import (
	"strings"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/labellens/backend/internal/domain"
)

// allergenKeywords are common allergen triggers, in report order
var allergenKeywords = []string{
	"wheat", "peanut", "milk", "egg", "soy", "nuts", "shellfish", "fish",
}

// nonVeganKeywords indicate animal-derived content, in report order
var nonVeganKeywords = []string{
	"milk", "egg", "honey", "gelatin", "fish", "chicken", "beef", "pork",
}

// preservativeKeywords maps canonical preservative names to the spellings and
// E-numbers that identify them on a label, in report order
var preservativeKeywords = []domain.PreservativeKeyword{
	{Name: "sodium benzoate", Aliases: []string{"sodium benzoate", "e211"}},
	{Name: "potassium sorbate", Aliases: []string{"potassium sorbate", "e202"}},
	{Name: "calcium propionate", Aliases: []string{"calcium propionate", "e282"}},
	{Name: "sorbic acid", Aliases: []string{"sorbic acid", "e200"}},
	{Name: "benzoic acid", Aliases: []string{"benzoic acid", "e210"}},
	{Name: "sulfur dioxide", Aliases: []string{"sulfur dioxide", "e220"}},
	{Name: "bht", Aliases: []string{"bht", "butylated hydroxytoluene"}},
	{Name: "bha", Aliases: []string{"bha", "butylated hydroxyanisole"}},
}

// IngredientClassifier finds allergen, non-vegan and preservative keywords in
// label text. Matching is plain substring containment: "buckwheat" contains
// "wheat" and is reported as such.
//
// Every keyword and alias is compiled into one Aho-Corasick automaton so the
// text is scanned once; results are then read back in table order.
type IngredientClassifier struct {
	mu         sync.Mutex // Matcher.Match mutates internal counters
	matcher    *ahocorasick.Matcher
	dictionary []string
}

// NewIngredientClassifier builds the automaton over the fixed keyword tables
func NewIngredientClassifier() *IngredientClassifier {
	seen := make(map[string]bool)
	var dictionary []string

	add := func(keyword string) {
		if !seen[keyword] {
			seen[keyword] = true
			dictionary = append(dictionary, keyword)
		}
	}

	for _, kw := range allergenKeywords {
		add(kw)
	}
	for _, kw := range nonVeganKeywords {
		add(kw)
	}
	for _, p := range preservativeKeywords {
		for _, alias := range p.Aliases {
			add(alias)
		}
	}

	return &IngredientClassifier{
		matcher:    ahocorasick.NewStringMatcher(dictionary),
		dictionary: dictionary,
	}
}

// Classify reports which keywords appear in text. It never fails; a category
// with no matches yields an empty, non-nil slice.
func (c *IngredientClassifier) Classify(text string) domain.ClassificationResult {
	present := c.presentKeywords(strings.ToLower(text))

	result := domain.ClassificationResult{
		Allergens:     make([]string, 0),
		NonVegan:      make([]string, 0),
		Preservatives: make([]string, 0),
	}

	for _, kw := range allergenKeywords {
		if present[kw] {
			result.Allergens = append(result.Allergens, kw)
		}
	}
	for _, kw := range nonVeganKeywords {
		if present[kw] {
			result.NonVegan = append(result.NonVegan, kw)
		}
	}
	for _, p := range preservativeKeywords {
		for _, alias := range p.Aliases {
			if present[alias] {
				result.Preservatives = append(result.Preservatives, p.Name)
				break
			}
		}
	}

	return result
}

// presentKeywords runs the automaton once and returns the set of dictionary
// entries that occur anywhere in text.
func (c *IngredientClassifier) presentKeywords(text string) map[string]bool {
	present := make(map[string]bool)
	if text == "" {
		return present
	}

	c.mu.Lock()
	hits := c.matcher.Match([]byte(text))
	c.mu.Unlock()

	for _, idx := range hits {
		if idx < len(c.dictionary) {
			present[c.dictionary[idx]] = true
		}
	}
	return present
}

// Keywords returns a copy of the keyword tables
func (c *IngredientClassifier) Keywords() domain.KeywordTables {
	preservatives := make([]domain.PreservativeKeyword, len(preservativeKeywords))
	for i, p := range preservativeKeywords {
		preservatives[i] = domain.PreservativeKeyword{
			Name:    p.Name,
			Aliases: append([]string(nil), p.Aliases...),
		}
	}

	return domain.KeywordTables{
		Allergens:     append([]string(nil), allergenKeywords...),
		NonVegan:      append([]string(nil), nonVeganKeywords...),
		Preservatives: preservatives,
	}
}
