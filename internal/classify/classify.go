// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify labels extracted document text as a CNPJ registration
// card, a state registration certificate, or unrecognized.
package classify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/ficha-cadastral/pkg/types"
)

const (
	markerCompanyName  = "NOME EMPRESARIAL"
	markerRegistration = "NÚMERO DE INSCRIÇÃO"
	markerInscription  = "INSCRIÇÃO"
)

// Inscription matches a state inscription number: "INSCRIÇÃO", an optional
// ":" or "-", then digits, dots and dashes. The first group holds the number.
var Inscription = regexp.MustCompile(`(?i)INSCRIÇÃO\s*[:\-]?\s*([\d.\-]+)`)

// Classify returns the document kind for text. The CNPJ markers are checked
// first, so a text matching both kinds is a CNPJ card.
func Classify(text string) types.DocumentKind {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, markerCompanyName) && strings.Contains(upper, markerRegistration):
		return types.KindCNPJ
	case strings.Contains(upper, markerInscription) && Inscription.MatchString(text):
		return types.KindStateRegistration
	default:
		return types.KindUnrecognized
	}
}
