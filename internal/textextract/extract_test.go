package textextract

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml":            `<?xml version="1.0" encoding="UTF-8"?><w:document><w:body>` + body + `</w:body></w:document>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// buildPDF writes a minimal single-font PDF with one page per entry in
// pages. An empty entry becomes a page with an empty content stream.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // page tree, filled in below
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	kids := ""
	for _, text := range pages {
		pageNum := len(objects) + 1
		kids += fmt.Sprintf("%d 0 R ", pageNum)

		content := ""
		if text != "" {
			content = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", pageNum+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [ %s] /Count %d >>", kids, len(pages))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractText_PDF(t *testing.T) {
	e := New(zap.NewNop())
	data := buildPDF(t, "Must have PYTHON", "", "SQL is a Plus")

	text, err := e.ExtractText(context.Background(), Document{Name: "jd.pdf", Mime: MimePDF, Data: data})
	require.NoError(t, err)
	assert.Equal(t, "must have python sql is a plus", text)
}

func TestExtractText_PDFWithoutText(t *testing.T) {
	e := New(zap.NewNop())

	_, err := e.ExtractText(context.Background(), Document{Name: "scan.pdf", Mime: MimePDF, Data: buildPDF(t, "", "")})
	assert.ErrorIs(t, err, ErrNoText)
}

func TestExtractText_PlainText(t *testing.T) {
	e := New(zap.NewNop())

	text, err := e.ExtractText(context.Background(), Document{
		Name: "jd.txt",
		Mime: "text/plain; charset=utf-8",
		Data: []byte("  Must have PYTHON.\nSQL is a Plus  "),
	})
	require.NoError(t, err)
	assert.Equal(t, "must have python.\nsql is a plus", text)
}

func TestExtractText_DOCX(t *testing.T) {
	e := New(zap.NewNop())
	data := buildDOCX(t,
		`<w:p><w:r><w:t>Required: Go &amp; Docker</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>AWS is a bonus</w:t></w:r></w:p>`)

	text, err := e.ExtractText(context.Background(), Document{Name: "jd.docx", Mime: MimeDOCX, Data: data})
	require.NoError(t, err)
	assert.Contains(t, text, "required: go & docker\n")
	assert.Contains(t, text, "aws is a bonus")
	assert.NotContains(t, text, "<w:")
}

func TestExtractText_Failures(t *testing.T) {
	e := New(zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name    string
		doc     Document
		wantErr error
	}{
		{
			name:    "unsupported type",
			doc:     Document{Name: "photo.png", Mime: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}},
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "blank text",
			doc:     Document{Name: "empty.txt", Mime: MimeText, Data: []byte(" \n\t ")},
			wantErr: ErrNoText,
		},
		{
			name: "corrupt pdf",
			doc:  Document{Name: "broken.pdf", Mime: MimePDF, Data: []byte("this is not a pdf")},
		},
		{
			name: "corrupt docx",
			doc:  Document{Name: "broken.docx", Mime: MimeDOCX, Data: []byte("this is not a zip")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := e.ExtractText(ctx, tt.doc)
			require.Error(t, err)
			assert.Empty(t, text)
			assert.Contains(t, err.Error(), tt.doc.Name)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestExtractText_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).ExtractText(ctx, Document{Name: "a.txt", Mime: MimeText, Data: []byte("python")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShared_InitializesOnce(t *testing.T) {
	const callers = 16
	got := make([]*Extractor, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = Shared()
		}()
	}
	wg.Wait()

	require.NotNil(t, got[0])
	for _, e := range got[1:] {
		assert.Same(t, got[0], e)
	}
}

func TestMimeFromFilename(t *testing.T) {
	assert.Equal(t, MimePDF, MimeFromFilename("Resume.PDF"))
	assert.Equal(t, MimeDOCX, MimeFromFilename("cv.docx"))
	assert.Equal(t, MimeText, MimeFromFilename("jd.txt"))
	assert.Equal(t, "text/markdown", MimeFromFilename("jd.md"))
}
