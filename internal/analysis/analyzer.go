package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/muhammadolammi/skillmatch/internal/textextract"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrInputMissing is returned when the resume or job description is absent.
var ErrInputMissing = errors.New("upload both resume and job description documents")

// Document roles named by ExtractionError.
const (
	RoleResume         = "resume"
	RoleJobDescription = "job description"
)

// ExtractionError reports which document could not be read.
type ExtractionError struct {
	Role string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract text from %s: %v", e.Role, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// TextExtractor returns the lowercase text of a document.
type TextExtractor interface {
	ExtractText(ctx context.Context, doc textextract.Document) (string, error)
}

type Analyzer struct {
	extractor TextExtractor
	logger    *zap.Logger
}

func NewAnalyzer(extractor TextExtractor, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{extractor: extractor, logger: logger}
}

// Analyze extracts both documents concurrently and scores the resume
// against the job description. It fails if either extraction fails.
func (a *Analyzer) Analyze(ctx context.Context, resume, jobDescription textextract.Document) (Result, error) {
	if len(resume.Data) == 0 || len(jobDescription.Data) == 0 {
		return Result{}, ErrInputMissing
	}

	var resumeText, jobText string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resumeText, err = a.extract(gctx, RoleResume, resume)
		return err
	})
	g.Go(func() (err error) {
		jobText, err = a.extract(gctx, RoleJobDescription, jobDescription)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return a.score(resume.Name, jobDescription.Name, resumeText, jobText), nil
}

// ExtractJobDescription reads a job description once, so that several
// resumes can be scored against it with AnalyzeResume.
func (a *Analyzer) ExtractJobDescription(ctx context.Context, jobDescription textextract.Document) (string, error) {
	if len(jobDescription.Data) == 0 {
		return "", ErrInputMissing
	}
	return a.extract(ctx, RoleJobDescription, jobDescription)
}

// AnalyzeResume scores a resume against job description text returned by
// ExtractJobDescription.
func (a *Analyzer) AnalyzeResume(ctx context.Context, resume textextract.Document, jobText string) (Result, error) {
	if len(resume.Data) == 0 || strings.TrimSpace(jobText) == "" {
		return Result{}, ErrInputMissing
	}

	resumeText, err := a.extract(ctx, RoleResume, resume)
	if err != nil {
		return Result{}, err
	}
	return a.score(resume.Name, "", resumeText, jobText), nil
}

func (a *Analyzer) extract(ctx context.Context, role string, doc textextract.Document) (string, error) {
	text, err := a.extractor.ExtractText(ctx, doc)
	if err != nil {
		return "", &ExtractionError{Role: role, Err: err}
	}
	return text, nil
}

func (a *Analyzer) score(resumeName, jobName, resumeText, jobText string) Result {
	result := AnalyzeText(resumeText, jobText)
	a.logger.Debug("analysis complete",
		zap.String("resume", resumeName),
		zap.String("job_description", jobName),
		zap.Int("score", result.Score),
		zap.Int("matched", len(result.MatchedSkills)),
	)
	return result
}

// AnalyzeText scores already extracted resume text against job description
// text.
func AnalyzeText(resumeText, jobDescriptionText string) Result {
	return Score(ExtractRequirements(jobDescriptionText), DetectSkills(resumeText))
}
