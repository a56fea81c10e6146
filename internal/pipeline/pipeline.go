// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives one batch: scan the input folder, classify and
// parse each PDF, merge everything into a single client record, apply the
// business rules, fill the template, and file the sources.
//
// All PDFs in the input folder are assumed to belong to one client.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/ficha-cadastral/internal/classify"
	"github.com/pdiddy/ficha-cadastral/internal/parse"
	"github.com/pdiddy/ficha-cadastral/internal/router"
	"github.com/pdiddy/ficha-cadastral/internal/rules"
	"github.com/pdiddy/ficha-cadastral/internal/sheet"
	"github.com/pdiddy/ficha-cadastral/internal/textract"
	"github.com/pdiddy/ficha-cadastral/pkg/types"
)

// ExemptStateRegistration is written when no state registration document
// was found: the client is treated as exempt.
const ExemptStateRegistration = "Isento"

// Per-file failures.
var (
	ErrNoText       = errors.New("no text extracted")
	ErrUnrecognized = errors.New("unrecognized document")
	ErrUnexpected   = errors.New("unexpected failure")
)

// TemplateWriter fills the spreadsheet template. Any error means nothing
// usable was written.
type TemplateWriter interface {
	Fill(templatePath, outputPath string, rec types.Record) error
}

// Pipeline holds the collaborators of a batch run.
type Pipeline struct {
	cfg       types.Config
	extractor textract.Extractor
	writer    TemplateWriter
	router    *router.Router
	logger    *zap.Logger
}

// New wires a pipeline. The router shares logger.
func New(cfg types.Config, extractor textract.Extractor, writer TemplateWriter, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:       cfg,
		extractor: extractor,
		writer:    writer,
		router:    router.New(logger),
		logger:    logger,
	}
}

// EnsureFolders creates the processed and error folders.
func EnsureFolders(cfg types.Config) error {
	for _, dir := range []string{cfg.Paths.ProcessedFolder, cfg.Paths.ErrorFolder} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// Scan lists the *.pdf files directly inside dir, sorted by name. The
// extension match ignores case.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	var pdfs []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		pdfs = append(pdfs, filepath.Join(dir, e.Name()))
	}
	return pdfs, nil
}

// Run processes every PDF in the input folder. Per-file and batch-level
// failures are recorded on the returned Run, not returned as errors; the
// error is reserved for a failed scan or a canceled context, in which case
// unprocessed files are left where they are.
func (p *Pipeline) Run(ctx context.Context) (*Run, error) {
	run := newRun(uuid.NewString())
	log := p.logger.With(zap.String("run_id", run.ID))
	log.Info("starting registration sheet batch", zap.String("input", p.cfg.Paths.InputFolder))

	p.enter(run, log, StageScanning)
	files, err := Scan(p.cfg.Paths.InputFolder)
	if err != nil {
		return run, err
	}
	if len(files) == 0 {
		log.Info("no PDF files in input folder, nothing to do")
		run.Outcome = types.OutcomeNoInput
		p.enter(run, log, StageDone)
		return run, nil
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		res := p.processFile(ctx, run, log, path)
		if res.Err != nil {
			if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
				return run, res.Err
			}
			log.Warn("file quarantined", zap.String("file", filepath.Base(path)),
				zap.String("stage", string(res.Stage)), zap.Error(res.Err))
			if _, err := p.router.Move(path, p.cfg.Paths.ErrorFolder); err != nil {
				run.MoveFailures = append(run.MoveFailures, router.MoveFailure{Source: path, Dest: p.cfg.Paths.ErrorFolder, Err: err})
			}
		}
		run.Files = append(run.Files, res)
	}

	p.finish(run, log)
	p.enter(run, log, StageDone)
	if run.Degraded() {
		log.Warn("run degraded: some files could not be moved and remain in the input folder",
			zap.Int("files", len(run.MoveFailures)))
	}
	log.Info("batch finished", zap.String("outcome", string(run.Outcome)))
	return run, nil
}

// processFile extracts, classifies, parses and merges one file. A panic in
// any collaborator is contained to this file.
func (p *Pipeline) processFile(ctx context.Context, run *Run, log *zap.Logger, path string) (res FileResult) {
	res = FileResult{Path: path, Kind: types.KindUnrecognized, Stage: StageClassifying}
	name := filepath.Base(path)
	defer func() {
		if r := recover(); r != nil {
			log.Error("unexpected failure processing file", zap.String("file", name), zap.Any("panic", r))
			res.Err = fmt.Errorf("%w: %v", ErrUnexpected, r)
		}
	}()

	p.enter(run, log, StageClassifying)
	text, err := p.extractor.Extract(ctx, path)
	if err != nil {
		res.Err = err
		return res
	}
	if strings.TrimSpace(text) == "" {
		res.Err = fmt.Errorf("%w: %s", ErrNoText, name)
		return res
	}

	res.Kind = classify.Classify(text)
	if res.Kind == types.KindUnrecognized {
		res.Err = fmt.Errorf("%w: %s", ErrUnrecognized, name)
		return res
	}
	log.Info("document identified", zap.String("file", name), zap.String("kind", string(res.Kind)))

	p.enter(run, log, StageParsing)
	res.Stage = StageParsing
	rec := parse.Document(res.Kind, text, log)

	p.enter(run, log, StageMerging)
	res.Stage = StageMerging
	run.Record.Merge(rec)
	run.Documents[res.Kind]++
	return res
}

// finish applies the batch-level checks, writes the sheet and routes every
// PDF still in the input folder.
func (p *Pipeline) finish(run *Run, log *zap.Logger) {
	if !run.Found(types.KindCNPJ) {
		log.Error("no CNPJ card was processed, spreadsheet will not be generated")
		run.Outcome = types.OutcomeNoPrimaryDocument
		p.routeRemaining(run, log, p.cfg.Paths.ErrorFolder)
		return
	}
	if !run.Found(types.KindStateRegistration) {
		log.Warn("no state registration document found, marking client as exempt")
		run.Record[types.FieldStateReg] = ExemptStateRegistration
	}

	p.enter(run, log, StageRuleApplication)
	processed, diags := rules.Apply(run.Record)
	for _, d := range diags {
		log.Warn("field left unsplit", zap.String("field", d.Field), zap.String("value", d.Value), zap.String("reason", d.Message))
	}
	run.Record = processed
	run.Diagnostics = diags

	company := processed.Get(types.FieldCompanyName)
	if company == "" {
		log.Error("company name not extracted, spreadsheet will not be generated")
		run.Outcome = types.OutcomeMissingCompanyName
		p.routeRemaining(run, log, p.cfg.Paths.ErrorFolder)
		return
	}

	p.enter(run, log, StageWriting)
	output := filepath.Join(p.cfg.Paths.OutputFolder, sheet.OutputName(company))
	if err := p.writer.Fill(p.cfg.Paths.ExcelTemplate, output, processed); err != nil {
		log.Error("spreadsheet generation failed, moving sources to error folder", zap.Error(err))
		run.Outcome = types.OutcomeWriteFailed
		p.routeRemaining(run, log, p.cfg.Paths.ErrorFolder)
		return
	}
	run.OutputPath = output
	run.Outcome = types.OutcomeSucceeded
	log.Info("spreadsheet generated, moving sources to processed folder", zap.String("output", output))
	p.routeRemaining(run, log, p.cfg.Paths.ProcessedFolder)
}

// routeRemaining re-reads the input folder, so files dropped in during the
// run are filed too.
func (p *Pipeline) routeRemaining(run *Run, log *zap.Logger, dest string) {
	p.enter(run, log, StageRouting)
	files, err := Scan(p.cfg.Paths.InputFolder)
	if err != nil {
		log.Error("could not re-scan input folder", zap.Error(err))
		return
	}
	report := p.router.MoveAll(files, dest)
	run.MoveFailures = append(run.MoveFailures, report.Failures...)
}

func (p *Pipeline) enter(run *Run, log *zap.Logger, stage Stage) {
	run.Stage = stage
	log.Debug("stage", zap.String("stage", string(stage)))
}
