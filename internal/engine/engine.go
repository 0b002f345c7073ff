// Package engine runs the scan, sort and write pipeline over a root directory.
// Compounds are independent: a failure in one is recorded in the report and
// never stops its siblings.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/structgen/internal/natsort"
	"github.com/leapstack-labs/structgen/internal/scan"
	"github.com/leapstack-labs/structgen/internal/structure"
)

// Status is the outcome for one compound.
type Status string

// Compound outcomes.
const (
	StatusWritten   Status = "written"
	StatusUnchanged Status = "unchanged"
	StatusPlanned   Status = "planned"
	StatusFailed    Status = "failed"
)

// Config holds engine configuration.
type Config struct {
	// Root is the directory holding one directory per compound.
	Root string
	// Ignore holds filepath.Match patterns for compound and part names.
	Ignore []string
	// Comparator orders parts (optional, uses natsort.Default if nil)
	Comparator *natsort.Comparator
	// Writer stores structure files (optional, XML next to the parts if nil)
	Writer *structure.Writer
	// Jobs is the number of compounds processed at once; values below 1 mean 1.
	Jobs int
	// DryRun encodes every structure to DryRunOutput instead of writing files.
	DryRun       bool
	DryRunOutput io.Writer
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Engine runs the pipeline. It holds no state between runs.
type Engine struct {
	root    string
	scanner *scan.Scanner
	sorter  *natsort.Comparator
	writer  *structure.Writer
	jobs    int
	dryRun  bool
	dryOut  io.Writer
	logger  *slog.Logger
}

// New creates an engine from cfg.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sorter := cfg.Comparator
	if sorter == nil {
		sorter = natsort.Default
	}
	writer := cfg.Writer
	if writer == nil {
		writer = &structure.Writer{}
	}
	jobs := cfg.Jobs
	if jobs < 1 {
		jobs = 1
	}
	dryOut := cfg.DryRunOutput
	if dryOut == nil {
		dryOut = io.Discard
	}

	// An output tree inside the root is not a compound.
	outEntry := writer.RootEntry(cfg.Root)
	if outEntry != "" {
		logger.Debug("excluding output directory from scan", "entry", outEntry)
	}

	return &Engine{
		root: cfg.Root,
		scanner: scan.New(cfg.Root,
			scan.WithIgnore(cfg.Ignore...),
			scan.WithExcludeCompounds(outEntry),
			scan.WithLogger(logger),
		),
		sorter:  sorter,
		writer:  writer,
		jobs:    jobs,
		dryRun:  cfg.DryRun,
		dryOut:  dryOut,
		logger:  logger,
	}
}

// Result is the outcome for one compound.
type Result struct {
	Compound string
	// Path is the structure file path, empty if the compound could not be scanned.
	Path      string
	Status    Status
	Structure structure.Structure
	Err       error

	document []byte
}

// Report summarizes a run. Results are in compound name order.
type Report struct {
	Root     string
	Results  []Result
	Duration time.Duration
}

// Count returns how many compounds ended with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Failed returns the results that failed.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			out = append(out, res)
		}
	}
	return out
}

// Err joins the errors of all failed compounds, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, res.Err)
	}
	return errors.Join(errs...)
}

// Run scans the root and writes one structure per compound. The returned
// error is non-nil when the root cannot be scanned, ctx is cancelled or any
// compound failed; the report covers every compound regardless.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	mode := "write"
	if e.dryRun {
		mode = "dry-run"
	}
	return e.run(ctx, mode)
}

// Plan scans and sorts every compound without writing anything.
func (e *Engine) Plan(ctx context.Context) (*Report, error) {
	return e.run(ctx, "plan")
}

func (e *Engine) run(ctx context.Context, mode string) (*Report, error) {
	start := time.Now()
	e.logger.Info("starting run", "root", e.root, "mode", mode, "jobs", e.jobs)

	var (
		compounds []scan.Compound
		results   []Result
	)
	for c, err := range e.scanner.Compounds(ctx) {
		if err != nil {
			var scanErr *scan.ScanError
			if !errors.As(err, &scanErr) || scanErr.Compound == "" {
				return nil, fmt.Errorf("failed to scan %s: %w", e.root, err)
			}
			e.logger.Warn("skipping unreadable compound", "compound", scanErr.Compound, "error", scanErr.Err)
			results = append(results, Result{Compound: scanErr.Compound, Status: StatusFailed, Err: err})
			continue
		}
		compounds = append(compounds, c)
		results = append(results, Result{Compound: c.Name})
	}

	// Index of each scanned compound within results.
	slots := make([]int, 0, len(compounds))
	for i, res := range results {
		if res.Status != StatusFailed {
			slots = append(slots, i)
		}
	}

	var g errgroup.Group
	g.SetLimit(e.jobs)
	for i, c := range compounds {
		slot := slots[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[slot] = e.process(c, mode)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if mode == "dry-run" {
		for _, res := range results {
			if res.document == nil {
				continue
			}
			if _, err := fmt.Fprintf(e.dryOut, "# %s\n%s", res.Path, res.document); err != nil {
				return nil, fmt.Errorf("failed to print structure: %w", err)
			}
		}
	}

	report := &Report{Root: e.root, Results: results, Duration: time.Since(start)}
	e.logger.Info("run completed",
		"root", e.root,
		"compounds", len(results),
		"written", report.Count(StatusWritten),
		"unchanged", report.Count(StatusUnchanged),
		"failed", report.Count(StatusFailed),
		"duration", report.Duration,
	)
	return report, report.Err()
}

// process sorts one compound and, depending on mode, writes or encodes it.
func (e *Engine) process(c scan.Compound, mode string) Result {
	s := structure.Build(c, e.sorter)
	res := Result{Compound: c.Name, Path: e.writer.Path(c), Structure: s}

	switch mode {
	case "plan":
		res.Status = StatusPlanned
	case "dry-run":
		doc, err := e.writer.Encode(s)
		if err != nil {
			res.Status = StatusFailed
			res.Err = &structure.WriteError{Compound: c.Name, Path: res.Path, Err: err}
			break
		}
		res.Status = StatusPlanned
		res.document = doc
	default:
		out, err := e.writer.Write(c, s)
		if err != nil {
			e.logger.Error("failed to write structure", "compound", c.Name, "error", err)
			res.Status = StatusFailed
			res.Err = err
			break
		}
		res.Status = StatusUnchanged
		if out.Changed {
			res.Status = StatusWritten
		}
	}

	e.logger.Debug("processed compound", "compound", c.Name, "parts", len(s.Records), "status", res.Status)
	return res
}
