package usecase

import (
	"reflect"
	"testing"

	"github.com/labellens/backend/internal/domain"
)

func TestParseNutrition(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want domain.NutritionInfo
	}{
		{
			name: "percent and plain values",
			text: "protein 12.5% fat 3 sugar 8.2%",
			want: domain.NutritionInfo{"protein": "12.5", "fat": "3", "sugar": "8.2"},
		},
		{
			name: "last occurrence wins",
			text: "sugar 5 sugar 9",
			want: domain.NutritionInfo{"sugar": "9"},
		},
		{
			name: "empty text",
			text: "",
			want: domain.NutritionInfo{},
		},
		{
			name: "no numbers",
			text: "ingredients: water, salt",
			want: domain.NutritionInfo{},
		},
		{
			name: "number without label",
			text: "100",
			want: domain.NutritionInfo{},
		},
		{
			name: "uppercase input is lowercased",
			text: "Protein 12.5g",
			want: domain.NutritionInfo{"protein": "12.5"},
		},
		{
			name: "multi word labels",
			text: "total fat 3.5 saturated fat 1",
			want: domain.NutritionInfo{"total fat": "3.5", "saturated fat": "1"},
		},
		{
			name: "units are absorbed into the following label",
			text: "total fat 3.5 g saturated fat 1 g",
			want: domain.NutritionInfo{"total fat": "3.5", "g saturated fat": "1"},
		},
		{
			name: "trailing unit after last number is dropped",
			text: "sodium 120mg",
			want: domain.NutritionInfo{"sodium": "120"},
		},
		{
			name: "space-only label yields the empty label",
			text: "fat 3, 5",
			want: domain.NutritionInfo{"fat": "3", "": "5"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseNutrition(tc.text)
			if got == nil {
				t.Fatal("ParseNutrition() returned nil map")
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseNutrition(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestParseNutritionEntries(t *testing.T) {
	t.Run("keeps first position and last value", func(t *testing.T) {
		got := ParseNutritionEntries("fat 3 sugar 5 fat 4")
		want := []domain.NutritionEntry{
			{Label: "fat", Value: "4"},
			{Label: "sugar", Value: "5"},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ParseNutritionEntries() = %v, want %v", got, want)
		}
	})

	t.Run("empty text yields empty non-nil slice", func(t *testing.T) {
		got := ParseNutritionEntries("")
		if got == nil || len(got) != 0 {
			t.Errorf("ParseNutritionEntries(\"\") = %#v, want empty slice", got)
		}
	})

	t.Run("agrees with ParseNutrition", func(t *testing.T) {
		text := "energy 250 protein 12.5% fat 3 sugar 8.2% protein 13"
		entries := ParseNutritionEntries(text)
		info := ParseNutrition(text)

		if len(entries) != len(info) {
			t.Fatalf("len(entries) = %d, len(info) = %d", len(entries), len(info))
		}
		for _, e := range entries {
			if info[e.Label] != e.Value {
				t.Errorf("entry %q = %q, map has %q", e.Label, e.Value, info[e.Label])
			}
		}
	})
}
