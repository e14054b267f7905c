package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/muhammadolammi/skillmatch/internal/analysis"
)

// renderResult prints a match report the way the upload page shows it.
func renderResult(w io.Writer, r analysis.Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Match Score: %d%%\n", r.Score)
	if r.Note != "" {
		fmt.Fprintln(&b, r.Note)
		_, err := io.WriteString(w, b.String())
		return err
	}

	matched := strings.Join(r.MatchedSkills, ", ")
	if matched == "" {
		matched = "None"
	}
	fmt.Fprintf(&b, "Matched Skills (%d): %s\n", len(r.MatchedSkills), matched)

	writeSkillList(&b, "Must-have skills missing in resume", r.MissingMustHaveSkills, "None")
	writeSkillList(&b, "Other required skills missing", r.MissingSkills, "No missing skills detected from this job description.")
	writeSkillList(&b, "Optional skills missing", r.MissingOptionalSkills, "None")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSkillList(b *strings.Builder, title string, skills []string, empty string) {
	fmt.Fprintf(b, "\n%s\n", title)
	if len(skills) == 0 {
		fmt.Fprintf(b, "  %s\n", empty)
		return
	}
	for _, s := range skills {
		fmt.Fprintf(b, "  - %s\n", s)
	}
}

func renderSessionResults(w io.Writer, results []ResumeAnalysis) error {
	for i, entry := range results {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "== %s (%s)\n", entry.Filename, entry.ResumeID); err != nil {
			return err
		}
		if entry.IsErrorResult {
			if _, err := fmt.Fprintf(w, "Error: %s\n", entry.Error); err != nil {
				return err
			}
			continue
		}
		if err := renderResult(w, entry.Result); err != nil {
			return err
		}
	}
	return nil
}
