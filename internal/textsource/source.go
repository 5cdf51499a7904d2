// =============================================================================
// Receipt Analyzer - Text Source Module
// =============================================================================
//
// This module turns a receipt document into the normalized text the field
// extractor works on.
//
// SUPPORTED INPUTS:
//   - .pdf : plain text of every page, each page followed by a line break
//   - .txt : text that was already extracted, read verbatim
//
// NORMALIZATION:
//   Receipts mix equivalent encodings of the same characters, e.g. the CJK
//   unified ideograph 文 (U+6587) and the Kangxi radical ⽂ (U+2F8A), or
//   full-width and half-width digits. All text is NFKC normalized so that the
//   extractor's anchors match every variant.
//
// =============================================================================

package textsource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// SOURCE
// =============================================================================

// Source yields the normalized text of one document.
type Source interface {
	Text(ctx context.Context, path string) (string, error)
}

// FileSource reads documents from the local filesystem.
type FileSource struct{}

// Text reads the document at path and returns its normalized text.
//
// PARAMETERS:
//   - ctx: Checked before the document is opened.
//   - path: The document path. The extension selects the reader.
//
// RETURNS:
//   - The NFKC normalized text.
//   - An error if the document cannot be read or its type is unsupported.
func (FileSource) Text(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		raw string
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		raw, err = ReadPDF(path)
	case ".txt":
		var data []byte
		data, err = os.ReadFile(path)
		raw = string(data)
	default:
		return "", fmt.Errorf("unsupported document type: %s", filepath.Base(path))
	}
	if err != nil {
		return "", err
	}

	return Normalize(raw), nil
}

// =============================================================================
// READERS
// =============================================================================

// ReadPDF returns the plain text of every page of a PDF, each page followed
// by a line break.
func ReadPDF(path string) (text string, err error) {
	// The pdf package panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read PDF %s: %v", filepath.Base(path), r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}
		s, err := page.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("failed to extract text of page %d: %w", i, err)
		}
		b.WriteString(s)
		b.WriteString("\n")
	}

	return b.String(), nil
}

// Normalize applies NFKC normalization.
func Normalize(s string) string {
	return norm.NFKC.String(s)
}
