// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet fills the registration spreadsheet template.
package sheet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/pdiddy/ficha-cadastral/pkg/types"
)

// Write failures, checked with errors.Is.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrWriteFailed      = errors.New("unexpected write failure")
)

// OutputPrefix starts every generated file name.
const OutputPrefix = "FICHA CADASTRAL - "

// CellMapping places one record field in one cell of the active sheet.
type CellMapping struct {
	Field string
	Cell  string
}

// Cells is the template layout, in write order.
var Cells = []CellMapping{
	{Field: types.FieldCompanyName, Cell: "I12"},
	{Field: types.FieldTradeName, Cell: "I14"},
	{Field: types.FieldAddress, Cell: "I16"},
	{Field: types.FieldDistrict, Cell: "I18"},
	{Field: types.FieldPostalCodePart1, Cell: "AG18"},
	{Field: types.FieldPostalCodePart2, Cell: "AN18"},
	{Field: types.FieldState, Cell: "AU18"},
	{Field: types.FieldCity, Cell: "I20"},
	{Field: types.FieldCNPJPart1, Cell: "AF22"},
	{Field: types.FieldCNPJPart2, Cell: "AU22"},
	{Field: types.FieldStateReg, Cell: "I24"},
	{Field: types.FieldSegment, Cell: "AI14"},
	{Field: types.FieldRepresentative, Cell: "AI24"},
}

// Writer copies the template, writes a record into it and saves the result.
type Writer struct {
	logger *zap.Logger
}

// NewWriter returns a writer that logs through logger.
func NewWriter(logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{logger: logger}
}

// Fill opens templatePath, writes every non-empty mapped field of rec to the
// active sheet and saves to outputPath, creating its directory. The template
// file itself is never modified. Errors wrap ErrTemplateNotFound,
// ErrPermissionDenied or ErrWriteFailed and are logged before returning.
func (w *Writer) Fill(templatePath, outputPath string, rec types.Record) error {
	err := w.fill(templatePath, outputPath, rec)
	switch {
	case err == nil:
		w.logger.Info("spreadsheet saved", zap.String("output", outputPath))
	case errors.Is(err, ErrTemplateNotFound):
		w.logger.Error("excel template not found", zap.String("template", templatePath), zap.Error(err))
	case errors.Is(err, ErrPermissionDenied):
		w.logger.Error("cannot save spreadsheet: file open elsewhere or access denied", zap.String("output", outputPath), zap.Error(err))
	default:
		w.logger.Error("unexpected failure writing spreadsheet", zap.String("output", outputPath), zap.Error(err))
	}
	return err
}

func (w *Writer) fill(templatePath, outputPath string, rec types.Record) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrWriteFailed, r)
		}
	}()

	w.logger.Info("opening excel template", zap.String("template", templatePath))
	if _, err := os.Stat(templatePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, templatePath)
		}
		return classify(err)
	}

	f, err := excelize.OpenFile(templatePath)
	if err != nil {
		return classify(fmt.Errorf("opening template %s: %w", templatePath, err))
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	merged, err := mergedRanges(f, sheet)
	if err != nil {
		return classify(err)
	}

	for _, m := range Cells {
		value := rec.Get(m.Field)
		if value == "" {
			continue
		}
		if anchor, ok := merged.covering(m.Cell); ok && anchor != m.Cell {
			w.logger.Warn("cell is inside a merged block, skipping",
				zap.String("cell", m.Cell), zap.String("anchor", anchor), zap.String("field", m.Field))
			continue
		}
		w.logger.Debug("writing cell", zap.String("cell", m.Cell), zap.String("value", value))
		if err := f.SetCellValue(sheet, m.Cell, value); err != nil {
			return classify(fmt.Errorf("writing %s: %w", m.Cell, err))
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return classify(fmt.Errorf("creating output directory: %w", err))
	}
	w.logger.Info("saving spreadsheet", zap.String("output", outputPath))
	if err := f.SaveAs(outputPath); err != nil {
		return classify(fmt.Errorf("saving %s: %w", outputPath, err))
	}
	return nil
}

func classify(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return fmt.Errorf("%w: %v", ErrWriteFailed, err)
}

// OutputName returns the spreadsheet file name for a company, with the
// characters Windows rejects in file names removed.
func OutputName(companyName string) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`\/*?:"<>|`, r) {
			return -1
		}
		return r
	}, companyName)
	return OutputPrefix + clean + ".xlsx"
}
