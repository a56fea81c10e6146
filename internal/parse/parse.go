// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse extracts field records from classified document text.
//
// The CNPJ card has a fixed layout where every value sits on the line after
// its label, so fields are described by a table of (key, label, shape)
// entries consumed by one routine. The state registration layout varies and
// is matched with the looser inscription pattern instead.
package parse

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/ficha-cadastral/internal/classify"
	"github.com/pdiddy/ficha-cadastral/pkg/types"
)

// Shape is the form of the value on the line following a label.
type Shape int

const (
	// ShapeLine captures the whole next line.
	ShapeLine Shape = iota
	// ShapeDigits captures a run of digits alone on the next line.
	ShapeDigits
)

// FieldSpec declares one labelled field.
type FieldSpec struct {
	Key   string
	Label string
	Shape Shape
}

// CNPJFields is the CNPJ card layout, in extraction order.
var CNPJFields = []FieldSpec{
	{Key: types.FieldCNPJ, Label: "NÚMERO DE INSCRIÇÃO", Shape: ShapeLine},
	{Key: types.FieldCompanyName, Label: "NOME EMPRESARIAL", Shape: ShapeLine},
	{Key: types.FieldTradeName, Label: "TÍTULO DO ESTABELECIMENTO (NOME DE FANTASIA)", Shape: ShapeLine},
	{Key: types.FieldStreet, Label: "LOGRADOURO", Shape: ShapeLine},
	{Key: types.FieldNumber, Label: "NÚMERO", Shape: ShapeDigits},
	{Key: types.FieldComplement, Label: "COMPLEMENTO", Shape: ShapeLine},
	{Key: types.FieldDistrict, Label: "BAIRRO/DISTRITO", Shape: ShapeLine},
	{Key: types.FieldPostalCode, Label: "CEP", Shape: ShapeLine},
	{Key: types.FieldCity, Label: "MUNICÍPIO", Shape: ShapeLine},
	{Key: types.FieldState, Label: "UF", Shape: ShapeLine},
	{Key: types.FieldSegment, Label: "CÓDIGO E DESCRIÇÃO DA ATIVIDADE ECONÔMICA PRINCIPAL", Shape: ShapeLine},
}

// Table is a compiled set of field specs.
type Table struct {
	specs    []FieldSpec
	patterns []*regexp.Regexp
}

// Compile builds the case-insensitive pattern for every field. It panics on
// an unknown shape, which is a programming error.
func Compile(specs []FieldSpec) *Table {
	t := &Table{specs: specs, patterns: make([]*regexp.Regexp, len(specs))}
	for i, s := range specs {
		t.patterns[i] = regexp.MustCompile(pattern(s))
	}
	return t
}

func pattern(s FieldSpec) string {
	label := `(?i)` + regexp.QuoteMeta(s.Label) + `\s*\n`
	switch s.Shape {
	case ShapeLine:
		return label + `(.*?)\n`
	case ShapeDigits:
		return label + `\s*(\d+)\s*\n`
	default:
		panic(fmt.Sprintf("parse: unknown shape %d for %s", s.Shape, s.Key))
	}
}

// Extract returns a record with every key of the table. Labels that do not
// match yield "".
func (t *Table) Extract(text string) types.Record {
	rec := make(types.Record, len(t.specs))
	for i, s := range t.specs {
		rec[s.Key] = firstGroup(t.patterns[i], text)
	}
	return rec
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

var cnpjTable = Compile(CNPJFields)

// CNPJ extracts the CNPJ card fields from text.
func CNPJ(text string, logger *zap.Logger) types.Record {
	rec := cnpjTable.Extract(text)
	if name := rec.Get(types.FieldCompanyName); name != "" {
		logger.Info("cnpj fields extracted", zap.String("company", name))
	} else {
		logger.Warn("company name not found in cnpj card")
	}
	return rec
}

// StateRegistration extracts the state inscription number from text.
func StateRegistration(text string, logger *zap.Logger) types.Record {
	ie := firstGroup(classify.Inscription, text)
	if ie != "" {
		logger.Info("state inscription found", zap.String("inscription", ie))
	} else {
		logger.Warn("state inscription not found")
	}
	return types.Record{types.FieldStateReg: ie}
}

// Document dispatches to the parser for kind. Unrecognized documents yield
// a nil record.
func Document(kind types.DocumentKind, text string, logger *zap.Logger) types.Record {
	switch kind {
	case types.KindCNPJ:
		return CNPJ(text, logger)
	case types.KindStateRegistration:
		return StateRegistration(text, logger)
	default:
		return nil
	}
}
