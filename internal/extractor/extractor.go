package extractor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// Source yields the text of an uploaded document. The parsing pipeline only
// sees text; where it came from is this package's concern.
type Source interface {
	Text() (string, error)
}

// RawText is a Source for text the client already extracted, for example OCR
// output posted directly to the API.
type RawText string

func (r RawText) Text() (string, error) {
	return string(r), nil
}

// PDFFile extracts text from a PDF on disk. Extraction is line-oriented so
// downstream line parsers see the statement rows in reading order.
type PDFFile struct {
	Path string
}

func (p PDFFile) Text() (string, error) {
	text, err := extractPDFText(p.Path)
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}
	if !isReadableText(text) {
		return "", fmt.Errorf("no readable text in PDF %s, the file may be image-based or use custom font encodings", p.Path)
	}
	return text, nil
}

func extractPDFText(path string) (text string, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			pages = append(pages, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(pages, "\n"), nil
}

// isReadableText guards against garbage from identity-encoded fonts: the
// text must be non-trivial and mostly plain ASCII.
func isReadableText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= 50 {
		return false
	}

	total, readable := 0, 0
	for _, r := range trimmed {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			strings.ContainsRune(".,-/:;()'\"£$₱%&@#!?+=*", r) {
			readable++
		}
	}
	return float64(readable)/float64(total) > 0.6
}
