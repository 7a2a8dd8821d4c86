// Package pdftext extracts per-page text lines from PDF documents.
//
// Page access goes through pdfcpu; the text itself is recovered from each
// page's content stream by a small tokenizer that understands the text-show
// and text-positioning operators. This handles the simple single-byte-font
// layout of screenplay PDFs; documents using CID-keyed fonts or heavy
// kerning tricks will come out garbled.
package pdftext

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Pages returns the text lines of every page of the PDF at path, in page
// order. A page with no extractable content yields an empty line slice
// rather than an error.
func Pages(ctx context.Context, path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF %s: %w", path, err)
	}

	pages := make([][]string, 0, pctx.PageCount)
	for p := 1; p <= pctx.PageCount; p++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := pdfcpu.ExtractPageContent(pctx, p)
		if err != nil || r == nil {
			// Degrade to an empty page instead of failing the run.
			pages = append(pages, nil)
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d content: %w", p, err)
		}
		pages = append(pages, Lines(content))
	}
	return pages, nil
}
