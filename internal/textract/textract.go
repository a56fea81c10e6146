// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textract turns a PDF on disk into plain text.
package textract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"
)

// ErrUnreadable reports a PDF that exists but could not be read (corrupt,
// locked, or rejected by the parser). It is recoverable: callers quarantine
// the file and continue.
var ErrUnreadable = errors.New("unreadable pdf")

// Extractor returns the plain text of a document. A missing or empty path
// yields "" and a nil error.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// PDFExtractor reads text with ledongthuc/pdf, rebuilding each page from
// positioned text as one line per label or value, after a pdfcpu preflight
// that logs the page count.
type PDFExtractor struct {
	logger *zap.Logger
}

// NewPDFExtractor returns an extractor that logs through logger.
func NewPDFExtractor(logger *zap.Logger) *PDFExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFExtractor{logger: logger}
}

// Extract concatenates the text of every page in order, without page-break
// markers.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (text string, err error) {
	if path == "" {
		return "", nil
	}
	if _, statErr := os.Stat(path); statErr != nil {
		if errors.Is(statErr, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, path, statErr)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	e.logger.Info("extracting text", zap.String("file", path))
	e.preflight(path)

	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %s: %v", ErrUnreadable, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pt, err := pageText(page)
		if err != nil {
			return "", fmt.Errorf("%w: %s: page %d: %v", ErrUnreadable, path, i, err)
		}
		b.WriteString(pt)
	}

	e.logger.Info("text extracted", zap.String("file", path), zap.Int("chars", b.Len()))
	return b.String(), nil
}

// preflight logs the page count reported by pdfcpu. Failures only warn:
// pdfcpu is stricter than the text parser and rejects some files the parser
// still reads.
func (e *PDFExtractor) preflight(path string) {
	pages, err := api.PageCountFile(path)
	if err != nil {
		e.logger.Warn("pdf preflight failed", zap.String("file", path), zap.Error(err))
		return
	}
	e.logger.Debug("pdf preflight", zap.String("file", path), zap.Int("pages", pages))
}

// pageText lays out the page from its positioned text rows. Pages without
// row information fall back to the parser's plain-text stream.
func pageText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil || len(rows) == 0 {
		return page.GetPlainText(nil)
	}
	return layoutText(rows), nil
}
