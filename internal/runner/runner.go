package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/config"
	"ctor-generator/internal/diagnostic"
	"ctor-generator/internal/gen"
	"ctor-generator/internal/logger"
	"ctor-generator/internal/plan"
)

// ErrDiagnostics is returned when any package reported an error diagnostic.
var ErrDiagnostics = errors.New("errors reported")

// Mode selects how far the pipeline runs.
type Mode int

const (
	// ModeGenerate plans and writes the output files.
	ModeGenerate Mode = iota
	// ModeCheck plans without writing.
	ModeCheck
	// ModeExplain plans without writing and keeps the plans for display.
	ModeExplain
)

// PackageResult is the outcome for one package.
type PackageResult struct {
	Path        string
	Plan        *plan.Plan
	File        *gen.GeneratedFile
	Diagnostics diagnostic.Diagnostics
	// Written is set when the output file was created or changed.
	Written bool
	// Removed is set when a stale output file was deleted.
	Removed bool
}

// Report collects the results of a run in package load order.
type Report struct {
	Packages []*PackageResult
}

// Diagnostics merges the diagnostics of every package.
func (r *Report) Diagnostics() diagnostic.Diagnostics {
	var all diagnostic.Diagnostics
	for _, p := range r.Packages {
		all.Merge(p.Diagnostics)
	}

	return all
}

// HasErrors reports whether any package has error diagnostics.
func (r *Report) HasErrors() bool {
	for _, p := range r.Packages {
		if p.Diagnostics.HasErrors() {
			return true
		}
	}

	return false
}

// Runner drives analysis, planning and emission over a set of packages.
type Runner struct {
	cfg       config.GenerateConfig
	dir       string
	generator *gen.Generator
}

// New creates a Runner. dir is the working directory for package patterns.
func New(cfg config.GenerateConfig, dir string) *Runner {
	return &Runner{
		cfg: cfg,
		dir: dir,
		generator: gen.NewGenerator(gen.GeneratorConfig{
			Output:           cfg.Output,
			GenerateComments: cfg.Comments,
		}),
	}
}

func (r *Runner) analyzer() *analyze.Analyzer {
	return analyze.NewAnalyzer(analyze.Options{
		Directive: r.cfg.Directive,
		Output:    r.cfg.Output,
		Types:     r.cfg.Types,
		Markers:   r.cfg.Markers,
		Tags:      r.cfg.Tags,
		Unions:    r.cfg.Unions,
		BuildTags: r.cfg.BuildTags,
		Dir:       r.dir,
	})
}

func (r *Runner) workers() int {
	if r.cfg.Workers > 0 {
		return r.cfg.Workers
	}

	return runtime.GOMAXPROCS(0)
}

// Run loads the packages matching patterns and processes them concurrently.
// The report is returned even when the run fails on diagnostics.
func (r *Runner) Run(ctx context.Context, mode Mode, patterns ...string) (*Report, error) {
	log := logger.FromContext(ctx)

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	log.Debug("Loading packages", "patterns", patterns, "dir", r.dir)

	results, err := r.analyzer().LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	report := &Report{Packages: make([]*PackageResult, len(results))}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(r.workers())

	for i, res := range results {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			pr, err := r.process(ctx, mode, res)
			if err != nil {
				return fmt.Errorf("package %s: %w", res.Package.Path, err)
			}

			report.Packages[i] = pr

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if report.HasErrors() {
		return report, ErrDiagnostics
	}

	return report, nil
}

func (r *Runner) process(ctx context.Context, mode Mode, res *analyze.Result) (*PackageResult, error) {
	log := logger.FromContext(ctx).With("package", res.Package.Path)

	p := plan.Build(res.Package)

	pr := &PackageResult{Path: res.Package.Path, Plan: p}
	pr.Diagnostics.Merge(res.Diagnostics)
	pr.Diagnostics.Merge(p.Diagnostics)
	pr.Diagnostics.Sort()

	if mode != ModeGenerate {
		return pr, nil
	}

	if pr.Diagnostics.HasErrors() && !r.cfg.Partial {
		log.Warn("Skipping package with errors", "errors", len(pr.Diagnostics.Errors))
		return pr, nil
	}

	file, err := r.generator.Generate(p)
	if errors.Is(err, gen.ErrNothingToGenerate) {
		if p.HasErrors() {
			// Every annotated type failed; keep the previous output until fixed.
			return pr, nil
		}

		pr.Removed, err = gen.RemoveStale(res.Package.Dir, r.cfg.Output)
		if pr.Removed {
			log.Info("Removed stale output", "file", r.cfg.Output)
		}

		return pr, err
	}

	if err != nil {
		return nil, err
	}

	pr.File = file

	changed, err := gen.WriteFile(file)
	if err != nil {
		return nil, err
	}

	pr.Written = changed
	if changed {
		log.Info("Generated", "file", file.Path(), "types", len(p.ValidTypes()))
	} else {
		log.Debug("Up to date", "file", file.Path())
	}

	return pr, nil
}
