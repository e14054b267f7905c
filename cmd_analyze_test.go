package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/muhammadolammi/skillmatch/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAnalyzeCommand_Text(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", "Python developer, some Docker")
	jd := writeFile(t, dir, "jd.txt", "Must have Python. SQL is a plus.")

	out, err := runRoot(t, "analyze", "--resume", resume, "--job", jd)
	require.NoError(t, err)

	assert.Contains(t, out, "Match Score: 75%")
	assert.Contains(t, out, "Matched Skills (1): Python")
	assert.Contains(t, out, "Optional skills missing\n  - SQL\n")
	assert.Contains(t, out, "No missing skills detected from this job description.")
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", "java and c++")
	jd := writeFile(t, dir, "jd.md", "We are hiring a barista.")

	out, err := runRoot(t, "analyze", "-r", resume, "--job", jd, "--output-json")
	require.NoError(t, err)

	var result analysis.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, analysis.NoSkillsNote, result.Note)
	assert.NotNil(t, result.MatchedSkills)
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", "python")
	image := writeFile(t, dir, "jd.png", "\x89PNG")

	_, err := runRoot(t, "analyze", "--resume", resume)
	assert.ErrorIs(t, err, analysis.ErrInputMissing)

	_, err = runRoot(t, "analyze", "--resume", resume, "--job", filepath.Join(dir, "missing.pdf"))
	assert.ErrorContains(t, err, "failed to read")

	_, err = runRoot(t, "analyze", "--resume", resume, "--job", image)
	var extractionErr *analysis.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, analysis.RoleJobDescription, extractionErr.Role)
}

func TestRenderResult_Note(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, renderResult(&out, analysis.Score(nil, nil)))

	assert.Equal(t, "Match Score: 0%\n"+analysis.NoSkillsNote+"\n", out.String())
}

func TestRenderSessionResults(t *testing.T) {
	id := uuid.New()
	results := []ResumeAnalysis{
		{ResumeID: id, Filename: "ada.pdf", Result: analysis.AnalyzeText("python", "must have python and docker")},
		{ResumeID: uuid.New(), Filename: "scan.png", IsErrorResult: true, Error: "unsupported file type"},
	}

	var out bytes.Buffer
	require.NoError(t, renderSessionResults(&out, results))

	assert.Contains(t, out.String(), "== ada.pdf ("+id.String()+")")
	assert.Contains(t, out.String(), "Match Score: 50%")
	assert.Contains(t, out.String(), "Must-have skills missing in resume\n  - Docker\n")
	assert.Contains(t, out.String(), "Error: unsupported file type")
}

func TestAnalyzeCommand_LogJSONFlagKeepsTextReport(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", "python")
	jd := writeFile(t, dir, "jd.txt", "must have python")

	out, err := runRoot(t, "--json", "analyze", "--resume", resume, "--job", jd)
	require.NoError(t, err)
	assert.Contains(t, out, "Match Score: 100%")
	assert.False(t, json.Valid([]byte(out)))
}
