// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rules derives the composite sheet fields from a merged record.
// Apply is pure and idempotent: it never mutates its input and feeding its
// output back in yields the same record.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/ficha-cadastral/pkg/types"
)

const (
	// AddressSeparator joins street, number and complement.
	AddressSeparator = " ; "

	// RedactionMarker appears in complements the registry masked out.
	RedactionMarker = "********"

	// DefaultRepresentative is written to every sheet until the
	// representative is extracted from a source document.
	DefaultRepresentative = "A MARQUES"

	numberPrefix = "Nº "
)

// Diagnostic explains why a derivation was skipped.
type Diagnostic struct {
	Field   string
	Value   string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %q: %s", d.Field, d.Value, d.Message)
}

var nonPostalChars = regexp.MustCompile(`[^\d-]`)

// Apply returns a copy of rec with endereco, the split postal code and CNPJ
// parts, and the representative added. Inputs that cannot be split are left
// as they are and reported as diagnostics.
func Apply(rec types.Record) (types.Record, []Diagnostic) {
	out := rec.Clone()
	var diags []Diagnostic

	out[types.FieldAddress] = Address(rec.Get(types.FieldStreet), rec.Get(types.FieldNumber), rec.Get(types.FieldComplement))

	if cep := rec.Get(types.FieldPostalCode); strings.Contains(cep, "-") {
		if a, b, ok := SplitPair(nonPostalChars.ReplaceAllString(cep, "")); ok {
			out[types.FieldPostalCodePart1] = a
			out[types.FieldPostalCodePart2] = b
		} else {
			diags = append(diags, Diagnostic{Field: types.FieldPostalCode, Value: cep, Message: "expected exactly one hyphen between two parts"})
		}
	}

	if cnpj := rec.Get(types.FieldCNPJ); strings.Contains(cnpj, "-") {
		if a, b, ok := SplitPair(cnpj); ok {
			out[types.FieldCNPJPart1] = a
			out[types.FieldCNPJPart2] = b
		} else {
			diags = append(diags, Diagnostic{Field: types.FieldCNPJ, Value: cnpj, Message: "expected exactly one hyphen between two parts"})
		}
	}

	out[types.FieldRepresentative] = DefaultRepresentative
	return out, diags
}

// Address joins the non-empty parts of a street address. A complement
// carrying the redaction marker is dropped.
func Address(street, number, complement string) string {
	var parts []string
	if s := strings.TrimSpace(street); s != "" {
		parts = append(parts, s)
	}
	if n := strings.TrimSpace(number); n != "" {
		parts = append(parts, numberPrefix+n)
	}
	if c := strings.TrimSpace(complement); c != "" && !strings.Contains(c, RedactionMarker) {
		parts = append(parts, c)
	}
	return strings.Join(parts, AddressSeparator)
}

// SplitPair splits s on its single hyphen. ok is false unless there is
// exactly one hyphen with text on both sides.
func SplitPair(s string) (before, after string, ok bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
