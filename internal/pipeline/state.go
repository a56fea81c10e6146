// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"github.com/pdiddy/ficha-cadastral/internal/router"
	"github.com/pdiddy/ficha-cadastral/internal/rules"
	"github.com/pdiddy/ficha-cadastral/pkg/types"
)

// Stage is a step of the batch state machine.
type Stage string

const (
	StageScanning        Stage = "scanning"
	StageClassifying     Stage = "classifying"
	StageParsing         Stage = "parsing"
	StageMerging         Stage = "merging"
	StageRuleApplication Stage = "rule_application"
	StageWriting         Stage = "writing"
	StageRouting         Stage = "routing"
	StageDone            Stage = "done"
)

// FileResult is the outcome of one input file.
type FileResult struct {
	Path  string
	Kind  types.DocumentKind
	Stage Stage

	// Err is set when the file was quarantined individually.
	Err error
}

// Run is the state of one batch: per-kind document counts and an explicit
// Outcome.
type Run struct {
	ID      string
	Stage   Stage
	Outcome types.Outcome

	// Documents counts successfully parsed files per kind.
	Documents map[types.DocumentKind]int
	Files     []FileResult

	// Record is the merged record; after rule application it holds the
	// derived fields as well.
	Record      types.Record
	Diagnostics []rules.Diagnostic

	// OutputPath is set when a spreadsheet was written.
	OutputPath string

	// MoveFailures lists files left in place because a move failed.
	MoveFailures []router.MoveFailure
}

func newRun(id string) *Run {
	return &Run{
		ID:        id,
		Documents: make(map[types.DocumentKind]int),
		Record:    make(types.Record),
	}
}

// Found reports whether at least one document of kind was parsed.
func (r *Run) Found(kind types.DocumentKind) bool {
	return r.Documents[kind] > 0
}

// Degraded reports whether any file could not be moved. Such files stay in
// the input folder and will be picked up again by the next run.
func (r *Run) Degraded() bool {
	return len(r.MoveFailures) > 0
}

// Quarantined returns the files routed to the error folder individually.
func (r *Run) Quarantined() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}
