package usecase

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/labellens/backend/internal/domain"
)

func TestClassify(t *testing.T) {
	c := NewIngredientClassifier()

	testCases := []struct {
		name          string
		text          string
		allergens     []string
		nonVegan      []string
		preservatives []string
	}{
		{
			name:          "allergen, non-vegan and preservative",
			text:          "contains wheat, milk, sorbic acid",
			allergens:     []string{"wheat", "milk"},
			nonVegan:      []string{"milk"},
			preservatives: []string{"sorbic acid"},
		},
		{
			name:          "e-number alias and substring allergen",
			text:          "e211 present, no nuts",
			allergens:     []string{"nuts"},
			nonVegan:      []string{},
			preservatives: []string{"sodium benzoate"},
		},
		{
			name:          "empty text",
			text:          "",
			allergens:     []string{},
			nonVegan:      []string{},
			preservatives: []string{},
		},
		{
			name:          "no keywords",
			text:          "water, sugar, salt, citric acid",
			allergens:     []string{},
			nonVegan:      []string{},
			preservatives: []string{},
		},
		{
			name:          "uppercase text",
			text:          "CONTAINS PEANUTS",
			allergens:     []string{"peanut", "nuts"},
			nonVegan:      []string{},
			preservatives: []string{},
		},
		{
			name:          "overlapping keywords",
			text:          "shellfish extract",
			allergens:     []string{"shellfish", "fish"},
			nonVegan:      []string{"fish"},
			preservatives: []string{},
		},
		{
			name:          "substring match without word boundary",
			text:          "buckwheat, eggplant",
			allergens:     []string{"wheat", "egg"},
			nonVegan:      []string{"egg"},
			preservatives: []string{},
		},
		{
			name:          "results follow declaration order, not text order",
			text:          "pork, honey, fish, soy, egg",
			allergens:     []string{"egg", "soy", "fish"},
			nonVegan:      []string{"egg", "honey", "fish", "pork"},
			preservatives: []string{},
		},
		{
			name:          "preservative reported once when several aliases match",
			text:          "potassium sorbate (e202), bht, butylated hydroxyanisole",
			allergens:     []string{},
			nonVegan:      []string{},
			preservatives: []string{"potassium sorbate", "bht", "bha"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(tc.text)

			if !reflect.DeepEqual(got.Allergens, tc.allergens) {
				t.Errorf("Allergens = %v, want %v", got.Allergens, tc.allergens)
			}
			if !reflect.DeepEqual(got.NonVegan, tc.nonVegan) {
				t.Errorf("NonVegan = %v, want %v", got.NonVegan, tc.nonVegan)
			}
			if !reflect.DeepEqual(got.Preservatives, tc.preservatives) {
				t.Errorf("Preservatives = %v, want %v", got.Preservatives, tc.preservatives)
			}
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	c := NewIngredientClassifier()
	text := "wheat flour, whey (milk), gelatin, e220, calcium propionate"

	first := c.Classify(text)
	second := c.Classify(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Classify() not idempotent: %v then %v", first, second)
	}
}

// naiveClassify is the straightforward containment scan the automaton must agree with
func naiveClassify(text string) domain.ClassificationResult {
	text = strings.ToLower(text)
	result := domain.ClassificationResult{
		Allergens:     []string{},
		NonVegan:      []string{},
		Preservatives: []string{},
	}
	for _, kw := range allergenKeywords {
		if strings.Contains(text, kw) {
			result.Allergens = append(result.Allergens, kw)
		}
	}
	for _, kw := range nonVeganKeywords {
		if strings.Contains(text, kw) {
			result.NonVegan = append(result.NonVegan, kw)
		}
	}
	for _, p := range preservativeKeywords {
		for _, alias := range p.Aliases {
			if strings.Contains(text, alias) {
				result.Preservatives = append(result.Preservatives, p.Name)
				break
			}
		}
	}
	return result
}

func TestClassify_MatchesNaiveContainment(t *testing.T) {
	c := NewIngredientClassifier()

	texts := []string{
		"",
		"milk",
		"eggs, fish sauce, shellfish",
		"beef, chicken, pork, honey, gelatin",
		"e200, e211, e202, e282",
		"butylated hydroxytoluene and butylated hydroxyanisole",
		"calcium propionate, sulfur dioxide, benzoic acid, sorbic acid",
		"ingredients: enriched wheat flour, sugar, soybean oil, whey, eggs, salt, e282",
		"INGREDIENTS: CHICKEN BROTH, BEEF FAT, E220",
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			got := c.Classify(text)
			want := naiveClassify(text)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Classify(%q) = %v, want %v", text, got, want)
			}
		})
	}
}

func TestClassify_Concurrent(t *testing.T) {
	c := NewIngredientClassifier()
	text := "contains wheat, milk, sorbic acid"
	want := c.Classify(text)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := c.Classify(text); !reflect.DeepEqual(got, want) {
				t.Errorf("concurrent Classify() = %v, want %v", got, want)
			}
		}()
	}
	wg.Wait()
}

func TestKeywords_ReturnsCopies(t *testing.T) {
	c := NewIngredientClassifier()

	tables := c.Keywords()
	if len(tables.Allergens) != 8 || len(tables.NonVegan) != 8 || len(tables.Preservatives) != 8 {
		t.Fatalf("unexpected table sizes: %d %d %d",
			len(tables.Allergens), len(tables.NonVegan), len(tables.Preservatives))
	}
	if tables.Preservatives[0].Name != "sodium benzoate" {
		t.Errorf("first preservative = %q, want sodium benzoate", tables.Preservatives[0].Name)
	}

	tables.Allergens[0] = "changed"
	tables.Preservatives[0].Aliases[0] = "changed"

	again := c.Keywords()
	if again.Allergens[0] != "wheat" {
		t.Errorf("allergen table was mutated: %v", again.Allergens)
	}
	if again.Preservatives[0].Aliases[0] != "sodium benzoate" {
		t.Errorf("preservative aliases were mutated: %v", again.Preservatives[0].Aliases)
	}
}
