// =============================================================================
// Statutes at Large Tools - Pipeline
// =============================================================================
//
// This module orchestrates one run for the configured workbook. It decides
// whether the workbook still needs auditing, runs the audit loop, persists
// its state, and generates the HTML fragment.
//
// DECISION TABLE:
//
//   | audited file | HTML file | action                                     |
//   |--------------|-----------|--------------------------------------------|
//   | present      | present   | refuse (ErrOutputExists)                   |
//   | present      | absent    | generate from audited file                 |
//   | absent       | present   | refuse before auditing (ErrOutputExists)   |
//   | absent       | absent    | audit, then generate if audit completed    |
//
// AUDIT PERSISTENCE:
//   - complete: audited file written, checkpoint and in-process file removed
//   - paused:   in-process file written, checkpoint holds the resume index
//
// A resumed audit reads the in-process file when both it and a checkpoint
// exist, so corrections made before the pause are kept.
//
// =============================================================================

package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/loc-sal-tools/internal/audit"
	"github.com/ginjaninja78/loc-sal-tools/internal/checkpoint"
	"github.com/ginjaninja78/loc-sal-tools/internal/config"
	"github.com/ginjaninja78/loc-sal-tools/internal/htmlgen"
	"github.com/ginjaninja78/loc-sal-tools/internal/statute"
	"github.com/ginjaninja78/loc-sal-tools/internal/xlsxio"
	"github.com/ginjaninja78/loc-sal-tools/pkg/utils"
)

// Fatal pipeline errors.
var (
	ErrInputFile      = errors.New("input file error")
	ErrOutputExists   = errors.New("HTML output already exists")
	ErrAuditPaused    = errors.New("audit paused")
	ErrAlreadyAudited = errors.New("workbook already audited")
	ErrNotAudited     = errors.New("audited file not found")
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a pipeline run.
type Result struct {
	// Audited is true when the audit loop ran in this run.
	Audited bool

	// Resumed is true when the audit continued from an in-process file.
	Resumed bool

	Audit audit.Result

	// AuditedFile is set when a completed audit was written or read.
	AuditedFile string

	// InProcessFile is set when a paused audit was written.
	InProcessFile string

	// HTMLFile is set when the fragment was written.
	HTMLFile string

	Generation htmlgen.Result

	// DiagnosticsLog is the path of the diagnostics log, if one was written.
	DiagnosticsLog string

	Elapsed time.Duration
}

// =============================================================================
// PIPELINE
// =============================================================================

// Options holds the collaborators of a Pipeline.
type Options struct {
	// In and Out carry the audit conversation.
	In  io.Reader
	Out io.Writer

	Logger *zap.Logger

	// RunID tags the diagnostics log.
	RunID string

	// ClearScreen clears the terminal before each audit question.
	ClearScreen bool
}

// Pipeline runs the audit and generation steps for one workbook.
type Pipeline struct {
	settings   *config.Settings
	normalizer *statute.Normalizer
	dispatch   *htmlgen.Dispatch
	store      *checkpoint.Store
	files      *utils.FileManager
	opts       Options
	logger     *zap.Logger
}

// New builds a pipeline. The generator map is resolved here so an unknown
// formatter name fails before any workbook is touched.
func New(settings *config.Settings, mappings *config.Mappings, opts Options) (*Pipeline, error) {
	dispatch, err := htmlgen.NewDispatch(mappings.Generators)
	if err != nil {
		return nil, fmt.Errorf("invalid generator map: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	return &Pipeline{
		settings:   settings,
		normalizer: mappings.Normalizer(),
		dispatch:   dispatch,
		store:      checkpoint.New(settings.TmpDir),
		files:      utils.NewFileManager(settings.ExcelDir, settings.HTMLDir, settings.TmpDir),
		opts:       opts,
		logger:     logger.With(zap.String("workbook", settings.ExcelFile)),
	}, nil
}

// Run executes the whole pipeline following the decision table above.
// A paused audit returns the partial result together with ErrAuditPaused.
func (p *Pipeline) Run() (*Result, error) {
	start := time.Now()

	if err := p.files.EnsureDirectories(); err != nil {
		return nil, err
	}

	auditedPath := p.settings.AuditedPath()

	var (
		res   *Result
		sheet *statute.Sheet
		err   error
	)

	if utils.FileExists(auditedPath) {
		p.logger.Info("audited file exists, skipping audit", zap.String("path", auditedPath))

		if utils.FileExists(p.settings.HTMLPath()) {
			return nil, fmt.Errorf("%w: %s: delete or back up the existing file to regenerate",
				ErrOutputExists, p.settings.HTMLPath())
		}

		sheet, err = p.readAudited()
		if err != nil {
			return nil, err
		}
		res = &Result{AuditedFile: auditedPath}
	} else {
		if utils.FileExists(p.settings.HTMLPath()) {
			return nil, fmt.Errorf("%w: %s: delete or back up the existing file before auditing, or run the audit step alone",
				ErrOutputExists, p.settings.HTMLPath())
		}

		res, sheet, err = p.audit()
		if err != nil {
			return res, err
		}
		if res.Audit.Outcome == audit.Paused {
			res.Elapsed = time.Since(start)
			return res, ErrAuditPaused
		}
	}

	if err := p.generate(sheet, res); err != nil {
		return res, err
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

// Audit runs only the audit step. It refuses to re-audit a workbook whose
// audited file already exists.
func (p *Pipeline) Audit() (*Result, error) {
	start := time.Now()

	if err := p.files.EnsureDirectories(); err != nil {
		return nil, err
	}

	if utils.FileExists(p.settings.AuditedPath()) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyAudited, p.settings.AuditedPath())
	}

	res, _, err := p.audit()
	if err != nil {
		return res, err
	}

	res.Elapsed = time.Since(start)
	if res.Audit.Outcome == audit.Paused {
		return res, ErrAuditPaused
	}
	return res, nil
}

// Generate writes the HTML fragment from the audited file without auditing.
func (p *Pipeline) Generate() (*Result, error) {
	start := time.Now()

	if err := p.files.EnsureDirectories(); err != nil {
		return nil, err
	}

	if !utils.FileExists(p.settings.AuditedPath()) {
		return nil, fmt.Errorf("%w: %s", ErrNotAudited, p.settings.AuditedPath())
	}

	sheet, err := p.readAudited()
	if err != nil {
		return nil, err
	}

	res := &Result{AuditedFile: p.settings.AuditedPath()}
	if err := p.generate(sheet, res); err != nil {
		return res, err
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

// Load returns the most advanced version of the workbook: the audited file
// if present, then the in-process file, then the source.
func (p *Pipeline) Load() (*statute.Sheet, error) {
	if utils.FileExists(p.settings.AuditedPath()) {
		return p.readAudited()
	}
	if utils.FileExists(p.settings.InProcessPath()) {
		return p.read(p.settings.InProcessPath(), 2)
	}
	return p.read(p.settings.SourcePath(), p.settings.StartRow)
}

// ResetCheckpoint deletes the checkpoint of the configured workbook.
func (p *Pipeline) ResetCheckpoint() (string, error) {
	path := p.store.Path(p.settings.ExcelFile)
	if err := p.store.Clear(p.settings.ExcelFile); err != nil {
		return path, err
	}
	return path, nil
}

// Dispatch exposes the resolved generator bindings.
func (p *Pipeline) Dispatch() *htmlgen.Dispatch {
	return p.dispatch
}

// =============================================================================
// STEPS
// =============================================================================

// audit loads the workbook to audit, runs the loop from the checkpoint and
// persists the outcome.
func (p *Pipeline) audit() (*Result, *statute.Sheet, error) {
	res := &Result{Audited: true}
	workbook := p.settings.ExcelFile
	inProcessPath := p.settings.InProcessPath()

	var (
		sheet *statute.Sheet
		err   error
	)
	if utils.FileExists(inProcessPath) && p.store.Exists(workbook) {
		sheet, err = p.read(inProcessPath, 2)
		res.Resumed = true
	} else {
		sheet, err = p.read(p.settings.SourcePath(), p.settings.StartRow)
	}
	if err != nil {
		return nil, nil, err
	}

	startIdx, err := p.store.Load(workbook)
	if err != nil {
		return nil, nil, err
	}

	p.logger.Info("starting audit",
		zap.String("source", sheet.SourceFile),
		zap.Int("rows", len(sheet.Rows)),
		zap.Int("checkpoint", startIdx),
		zap.Bool("resumed", res.Resumed))

	auditor := audit.New(p.opts.In, p.opts.Out, p.store, audit.Options{
		Workbook:      workbook,
		DisplayOffset: p.settings.DisplayOffset(),
		ClearScreen:   p.opts.ClearScreen,
		Logger:        p.logger,
	})

	res.Audit, err = auditor.Run(sheet.Rows, startIdx)
	if err != nil {
		return res, nil, err
	}

	if res.Audit.Outcome == audit.Paused {
		if err := xlsxio.Write(inProcessPath, sheet); err != nil {
			return res, nil, err
		}
		res.InProcessFile = inProcessPath
		p.logger.Info("audit paused", zap.Int("index", res.Audit.Index), zap.String("in_process", inProcessPath))
		return res, sheet, nil
	}

	auditedPath := p.settings.AuditedPath()
	if err := xlsxio.Write(auditedPath, sheet); err != nil {
		return res, nil, err
	}
	res.AuditedFile = auditedPath

	if err := p.store.Clear(workbook); err != nil {
		return res, nil, err
	}
	if err := utils.RemoveIfExists(inProcessPath); err != nil {
		return res, nil, err
	}

	p.logger.Info("audit complete",
		zap.Int("confirmed", res.Audit.Confirmed),
		zap.Int("corrected", res.Audit.Corrected),
		zap.String("audited", auditedPath))

	return res, sheet, nil
}

// generate renders the sheet and writes the fragment once.
func (p *Pipeline) generate(sheet *statute.Sheet, res *Result) error {
	gen := htmlgen.New(p.settings, p.dispatch, p.logger)
	res.Generation = gen.Generate(sheet.Rows)

	if p.settings.DiagnosticsLog {
		logPath, err := utils.WriteDiagnosticsLog(diagnosticEntries(sheet, res.Generation.Diagnostics), p.settings.TmpDir, p.opts.RunID)
		if err != nil {
			p.logger.Warn("failed to write diagnostics log", zap.Error(err))
		}
		res.DiagnosticsLog = logPath
	}

	htmlPath := p.settings.HTMLPath()
	if err := utils.WriteFileExclusive(htmlPath, []byte(res.Generation.HTML)); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s: delete or back up the existing file to regenerate", ErrOutputExists, htmlPath)
		}
		return err
	}
	res.HTMLFile = htmlPath

	p.logger.Info("generated HTML",
		zap.String("path", htmlPath),
		zap.Int("tables", res.Generation.Tables),
		zap.Int("rows", res.Generation.Rows),
		zap.Int("diagnostics", len(res.Generation.Diagnostics)))

	return nil
}

func (p *Pipeline) readAudited() (*statute.Sheet, error) {
	return p.read(p.settings.AuditedPath(), 2)
}

func (p *Pipeline) read(path string, startRow int) (*statute.Sheet, error) {
	sheet, err := xlsxio.Read(path, xlsxio.Options{StartRow: startRow, Normalizer: p.normalizer})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputFile, err)
	}
	return sheet, nil
}

func diagnosticEntries(sheet *statute.Sheet, diags []htmlgen.Diagnostic) []utils.DiagnosticEntry {
	entries := make([]utils.DiagnosticEntry, 0, len(diags))
	now := time.Now()
	for _, d := range diags {
		session := ""
		if d.Index >= 0 && d.Index < len(sheet.Rows) {
			session = sheet.Rows[d.Index].Session
		}
		entries = append(entries, utils.DiagnosticEntry{
			Timestamp: now,
			FileName:  sheet.SourceFile,
			Kind:      d.Kind,
			Message:   d.Message,
			Index:     d.Index,
			RowNumber: d.Line,
			Session:   session,
		})
	}
	return entries
}
