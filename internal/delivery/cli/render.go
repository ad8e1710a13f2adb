// Package cli implements the labelscan command line front end.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/labellens/backend/internal/domain"
)

// levelMarkers prefix each finding line
var levelMarkers = map[string]string{
	domain.LevelWarning: "[!]",
	domain.LevelInfo:    "[i]",
	domain.LevelOK:      "[ok]",
}

// RenderAnalysis prints extracted text, the nutrition table and the findings.
// The nutrition table is omitted when no entries were parsed.
func RenderAnalysis(w io.Writer, analysis *domain.LabelAnalysis) {
	fmt.Fprintln(w, "Extracted Text:")
	if strings.TrimSpace(analysis.ExtractedText) == "" {
		fmt.Fprintln(w, "(no text found)")
	} else {
		fmt.Fprintln(w, analysis.ExtractedText)
	}

	if len(analysis.NutritionEntries) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Nutrition Information:")
		renderNutritionTable(w, analysis.NutritionEntries)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ingredient Analysis:")
	for _, f := range analysis.Findings {
		fmt.Fprintf(w, "%s %s\n", levelMarker(f.Level), f.Message)
	}
}

func renderNutritionTable(w io.Writer, entries []domain.NutritionEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Nutrient", "Value"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Label, e.Value})
	}
	t.Render()
}

// RenderKeywords prints every keyword the classifier looks for
func RenderKeywords(w io.Writer, tables domain.KeywordTables) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Category", "Keyword", "Aliases"})

	for _, kw := range tables.Allergens {
		t.AppendRow(table.Row{domain.CategoryAllergens, kw, ""})
	}
	t.AppendSeparator()
	for _, kw := range tables.NonVegan {
		t.AppendRow(table.Row{domain.CategoryNonVegan, kw, ""})
	}
	t.AppendSeparator()
	for _, p := range tables.Preservatives {
		t.AppendRow(table.Row{domain.CategoryPreservatives, p.Name, strings.Join(p.Aliases, ", ")})
	}

	t.Render()
}

func levelMarker(level string) string {
	if marker, ok := levelMarkers[level]; ok {
		return marker
	}
	return "-"
}
