package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/muhammadolammi/skillmatch/internal/analysis"
	"github.com/muhammadolammi/skillmatch/internal/textextract"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(c *cli) *cobra.Command {
	var (
		resumePath string
		jobPath    string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume document against a job description document",
		Example: `  skillmatch analyze --resume resume.pdf --job job-description.pdf
  skillmatch analyze --resume cv.docx --job jd.txt --output-json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if resumePath == "" || jobPath == "" {
				return analysis.ErrInputMissing
			}

			resume, err := readDocument(resumePath)
			if err != nil {
				return err
			}
			jobDescription, err := readDocument(jobPath)
			if err != nil {
				return err
			}

			analyzer := analysis.NewAnalyzer(textextract.Shared(), c.logger)
			result, err := analyzer.Analyze(cmd.Context(), resume, jobDescription)
			if err != nil {
				return fmt.Errorf("could not analyze one or both documents: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			return renderResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "resume document (pdf, docx or txt)")
	cmd.Flags().StringVar(&jobPath, "job", "", "job description document (pdf, docx or txt)")
	cmd.Flags().BoolVar(&asJSON, "output-json", false, "print the report as JSON")
	return cmd
}

func readDocument(path string) (textextract.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return textextract.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return textextract.Document{
		Name: filepath.Base(path),
		Mime: textextract.MimeFromFilename(path),
		Data: data,
	}, nil
}
