package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// Text returns plain text extracted from the file at path. Plain-text, PDF
// and Word (.docx) documents are supported; anything else is read as-is.
func Text(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %q: %w", path, err)
		}
		return fromPDF(data)
	case ".docx":
		return fromDocx(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %q: %w", path, err)
		}
		return strings.TrimSpace(string(data)), nil
	}
}

func fromPDF(data []byte) (string, error) {
	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("pdf page count: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			continue
		}

		ex, err := extractor.New(page)
		if err != nil {
			continue
		}

		pageText, err := ex.ExtractText()
		if err != nil || pageText == "" {
			continue
		}

		builder.WriteString(pageText)
		builder.WriteString("\n\n")
	}

	text := strings.TrimSpace(builder.String())
	if text == "" {
		return "", fmt.Errorf("no text could be extracted from the pdf")
	}

	return text, nil
}

var (
	docxRunPattern = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

	docxEntities = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
	)
)

func fromDocx(path string) (string, error) {
	reader, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer reader.Close()

	paragraphs := splitParagraphs(reader.Editable().GetContent())

	var lines []string
	for _, paragraph := range paragraphs {
		if paragraph != "" {
			lines = append(lines, paragraph)
		}
	}

	if len(lines) == 0 {
		return "", fmt.Errorf("no text could be extracted from the document")
	}

	return strings.Join(lines, "\n"), nil
}

// splitParagraphs flattens document XML into per-paragraph plain text.
func splitParagraphs(content string) []string {
	paragraphs := strings.Split(content, "</w:p>")
	out := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		var line strings.Builder
		for _, run := range docxRunPattern.FindAllStringSubmatch(paragraph, -1) {
			line.WriteString(docxEntities.Replace(run[1]))
		}
		out = append(out, strings.TrimSpace(line.String()))
	}
	return out
}
