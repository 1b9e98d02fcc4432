package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DocumentExtractor turns one PDF file into plain text.
//
// Extract never fails: a document that cannot be opened or parsed yields a
// diagnostic placeholder string instead, so a batch of N documents always
// produces N texts.
type DocumentExtractor interface {
	Extract(ctx context.Context, filePath string) string
}

type documentExtractor struct {
	ocr OCREngine
}

func NewDocumentExtractor(ocr OCREngine) DocumentExtractor {
	return &documentExtractor{ocr: ocr}
}

// Extract implements DocumentExtractor.
func (d *documentExtractor) Extract(ctx context.Context, filePath string) string {
	text, err := d.extractText(ctx, filePath)
	if err != nil {
		log.Printf("⚠️  Failed to read %s: %v\n", filePath, err)
		return fmt.Sprintf("[ERROR reading PDF] %v", err)
	}
	return text
}

func (d *documentExtractor) extractText(ctx context.Context, filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var pageTexts []string
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)

		var native string
		if !page.V.IsNull() {
			// A broken text layer is treated the same as an empty one.
			native, _ = page.GetPlainText(nil)
		}

		pageTexts = append(pageTexts, d.resolvePageText(ctx, native, filePath, pageIndex))
	}

	return strings.TrimSpace(strings.Join(pageTexts, "\n")), nil
}

// resolvePageText applies the fallback rule: a page with any non-whitespace
// native text keeps it; otherwise the page is rendered and recognized. An
// OCR failure degrades to empty page text and the document continues.
func (d *documentExtractor) resolvePageText(ctx context.Context, native, filePath string, pageNum int) string {
	if strings.TrimSpace(native) != "" {
		return native
	}

	recognized, err := d.ocr.RecognizePage(ctx, filePath, pageNum)
	if err != nil {
		log.Printf("⚠️  OCR failed for page %d of %s: %v\n", pageNum, filePath, err)
		return ""
	}
	return recognized
}

// CleanText collapses blank lines and trims each remaining line. Used to
// tidy extracted text before it is embedded into a prompt.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
