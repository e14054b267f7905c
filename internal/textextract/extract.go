// Package textextract turns uploaded documents into the lowercase plain text
// the analysis works on.
package textextract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrNoText          = errors.New("no extractable text (image-only or empty document)")
)

// Document is an uploaded file.
type Document struct {
	Name string
	Mime string
	Data []byte
}

// Extractor reads text out of PDF, DOCX and plain text documents.
type Extractor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

var shared = sync.OnceValue(func() *Extractor {
	return New(zap.L().Named("textextract"))
})

// Shared returns the process-wide extractor. It is built on first use, once,
// even when the first calls race.
func Shared() *Extractor {
	return shared()
}

// ExtractText returns the document's text, lowercased, with pages joined by
// a single space.
func (e *Extractor) ExtractText(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch baseMime(doc.Mime) {
	case MimePDF:
		text, err = e.extractPDF(doc.Data)
	case MimeDOCX:
		text, err = extractDOCX(doc.Data)
	case MimeText, "text/markdown":
		text = string(doc.Data)
	default:
		return "", fmt.Errorf("%s: %w: %s", doc.Name, ErrUnsupportedType, doc.Mime)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", doc.Name, err)
	}

	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", fmt.Errorf("%s: %w", doc.Name, ErrNoText)
	}

	e.logger.Debug("extracted document text",
		zap.String("name", doc.Name),
		zap.String("mime", doc.Mime),
		zap.Int("chars", len(text)),
	)
	return text, nil
}

func (e *Extractor) extractPDF(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Debug("skipping unreadable pdf page", zap.Int("page", i), zap.Error(err))
			continue
		}
		if pageText = strings.TrimSpace(pageText); pageText != "" {
			pages = append(pages, pageText)
		}
	}
	return strings.Join(pages, " "), nil
}

var docxTag = regexp.MustCompile(`<[^>]+>`)

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = docxTag.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}

func baseMime(value string) string {
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(value))
	}
	return mediaType
}

// MimeFromFilename guesses a supported MIME type from a file extension.
func MimeFromFilename(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	case ".txt":
		return MimeText
	case ".md":
		return "text/markdown"
	default:
		return mime.TypeByExtension(filepath.Ext(name))
	}
}
