// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DocumentKind labels an extracted PDF by the registration document it holds.
type DocumentKind string

const (
	KindUnrecognized      DocumentKind = "unrecognized"
	KindCNPJ              DocumentKind = "cnpj"
	KindStateRegistration DocumentKind = "state_registration"
)

// Outcome is the terminal state of a batch run.
type Outcome string

const (
	// OutcomeNoInput means the input folder held no PDF files.
	OutcomeNoInput Outcome = "no_input"
	// OutcomeSucceeded means the sheet was written and inputs were filed as processed.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeNoPrimaryDocument means no CNPJ card was parsed.
	OutcomeNoPrimaryDocument Outcome = "no_primary_document"
	// OutcomeMissingCompanyName means the merged record has no company name.
	OutcomeMissingCompanyName Outcome = "missing_company_name"
	// OutcomeWriteFailed means the template could not be filled or saved.
	OutcomeWriteFailed Outcome = "write_failed"
)

// Succeeded reports whether the run produced a spreadsheet.
func (o Outcome) Succeeded() bool {
	return o == OutcomeSucceeded
}
