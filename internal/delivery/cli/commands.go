package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/labellens/backend/internal/domain"
	"github.com/spf13/cobra"
)

// Analyzer is the use case the commands drive
type Analyzer interface {
	AnalyzeImage(ctx context.Context, image []byte) (*domain.LabelAnalysis, error)
	AnalyzeText(ctx context.Context, text string) *domain.LabelAnalysis
	Keywords() domain.KeywordTables
}

// AnalyzerFactory builds the analyzer once flags are parsed.
// verbose asks for debug logging.
type AnalyzerFactory func(verbose bool) (Analyzer, error)

var errNoInput = errors.New("one of --image or --text is required")

// NewRootCommand builds the labelscan command tree
func NewRootCommand(newAnalyzer AnalyzerFactory) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "labelscan",
		Short: "Analyze food labels for nutrition, allergens and preservatives",
		Long: `labelscan reads a photo of a food label (or its text), extracts the
nutrition values and flags allergens, non-vegan ingredients and preservatives.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	analyzer := func() (Analyzer, error) {
		return newAnalyzer(verbose)
	}

	root.AddCommand(newAnalyzeCommand(analyzer))
	root.AddCommand(newKeywordsCommand(analyzer))

	return root
}

func newAnalyzeCommand(analyzer func() (Analyzer, error)) *cobra.Command {
	var (
		imagePath string
		text      string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a label image or label text",
		Long: `Analyze a label photo with OCR, or analyze text you already have.

Examples:
  # Analyze a photo
  labelscan analyze --image label.jpg

  # Analyze text directly
  labelscan analyze --text "protein 12.5% fat 3, contains wheat, milk"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			imageSet := cmd.Flags().Changed("image")
			textSet := cmd.Flags().Changed("text")
			if !imageSet && !textSet {
				return errNoInput
			}

			a, err := analyzer()
			if err != nil {
				return err
			}

			var analysis *domain.LabelAnalysis
			if imageSet {
				image, err := os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}
				analysis, err = a.AnalyzeImage(cmd.Context(), image)
				if err != nil {
					return fmt.Errorf("analyze image: %w", err)
				}
			} else {
				analysis = a.AnalyzeText(cmd.Context(), text)
			}

			if asJSON {
				return writeJSON(cmd, analysis)
			}
			RenderAnalysis(cmd.OutOrStdout(), analysis)
			return nil
		},
	}

	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "path to a label photo")
	cmd.Flags().StringVarP(&text, "text", "t", "", "label text to analyze instead of an image")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	cmd.MarkFlagsMutuallyExclusive("image", "text")

	return cmd
}

func newKeywordsCommand(analyzer func() (Analyzer, error)) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "List the allergen, non-vegan and preservative keywords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := analyzer()
			if err != nil {
				return err
			}

			tables := a.Keywords()
			if asJSON {
				return writeJSON(cmd, tables)
			}
			RenderKeywords(cmd.OutOrStdout(), tables)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tables as JSON")

	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
