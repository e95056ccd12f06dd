// Package pdf converts uploaded PDF bytes to plain text (TP-30).
//
// We use the ledongthuc/pdf library — pure Go, no CGO or external binaries,
// so deployment stays a single static binary. The strengths parser treats
// this package as a black box: bytes in, text out.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractionResult holds the output of a PDF text extraction.
type ExtractionResult struct {
	Text      string // Extracted text content
	PageCount int    // Number of pages
	WordCount int    // Word count
}

// Extract reads a PDF from an in-memory buffer and extracts all text.
// Uploads arrive fully in memory, and the pdf library needs random access
// to the document structure, so a byte slice is the natural input.
func Extract(data []byte) (*ExtractionResult, error) {
	reader := bytes.NewReader(data)

	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	pageCount := pdfReader.NumPage()
	if pageCount == 0 {
		return &ExtractionResult{}, nil
	}

	var allText strings.Builder
	for i := 1; i <= pageCount; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only or damaged pages are skipped; the strengths
			// parser copes with partial text.
			continue
		}

		if allText.Len() > 0 {
			allText.WriteString("\n")
		}
		allText.WriteString(strings.TrimSpace(text))
	}

	extracted := strings.TrimSpace(allText.String())

	return &ExtractionResult{
		Text:      extracted,
		PageCount: pageCount,
		WordCount: len(strings.Fields(extracted)),
	}, nil
}

// ValidatePDF checks the magic bytes — PDF files start with "%PDF-".
func ValidatePDF(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
