// Package driver wires the whole pipeline together: load every platform
// build of the library, extract and cross-check their descriptor tables,
// run the generation passes once on the canonical set and write the
// bindings source plus its project file.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"bindgen/internal/descriptor"
	"bindgen/internal/diag"
	"bindgen/internal/elfload"
	"bindgen/internal/marshal"
	"bindgen/internal/names"
	"bindgen/internal/passes"
	"bindgen/internal/project"
)

// Binary is one platform build of the library to generate bindings for.
type Binary struct {
	Platform project.Platform
	Path     string
}

// Options configures one generation run. Zero values for Library,
// Namespace and Class are filled from the binary set's base name.
type Options struct {
	Library     string
	Namespace   string
	Class       string
	Framework   string
	AllowUnsafe bool
	Format      bool
	Binaries    []Binary
	OutDir      string
	Jobs        int
}

// Result carries the generated artifacts. Paths are empty when no
// output directory was requested.
type Result struct {
	Exports     []descriptor.Export
	Source      string
	Project     string
	SourcePath  string
	ProjectPath string
}

// Generate runs the full pipeline. Every failure is also reported as a
// diagnostic so callers render one consistent error surface.
func Generate(ctx context.Context, opts Options, r diag.Reporter) (*Result, error) {
	if len(opts.Binaries) == 0 {
		err := fmt.Errorf("no binaries to process")
		diag.Error(r, diag.BinInfo, "", err.Error())
		return nil, err
	}

	nativeBins := make([]project.NativeBinary, len(opts.Binaries))
	for i, bin := range opts.Binaries {
		nativeBins[i] = project.NativeBinary{Platform: bin.Platform, Path: bin.Path}
	}
	set, err := project.NewBinarySet(nativeBins)
	if err != nil {
		diag.Error(r, diag.BinInfo, "", err.Error())
		return nil, err
	}

	if opts.Library == "" {
		opts.Library = set.BaseName()
	}
	if opts.Namespace == "" {
		opts.Namespace = names.ToPascal(opts.Library)
	}
	if opts.Class == "" {
		opts.Class = "Imports"
	}

	exports, err := extractAll(ctx, opts, r)
	if err != nil {
		return nil, err
	}

	stream, err := passes.Default(opts.Library, opts.Namespace, opts.Class, opts.Format).Run(exports)
	if err != nil {
		report(r, err)
		return nil, err
	}

	res := &Result{
		Exports: exports,
		Source:  stream.RenderString(),
		Project: project.ProjFile{
			TargetFramework: opts.Framework,
			AllowUnsafe:     opts.AllowUnsafe,
			Binaries:        set,
		}.Render(),
	}

	if opts.OutDir != "" {
		if err := writeOutputs(opts.OutDir, set.BaseName(), res); err != nil {
			diag.Error(r, diag.BinInfo, "", err.Error())
			return nil, err
		}
	}
	return res, nil
}

// extractAll loads every binary concurrently and checks that all
// platforms describe the same exports.
func extractAll(ctx context.Context, opts Options, r diag.Reporter) ([]descriptor.Export, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([][]descriptor.Export, len(opts.Binaries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(opts.Binaries)))
	for i, bin := range opts.Binaries {
		i, bin := i, bin
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			exports, err := Extract(bin.Path)
			if err != nil {
				return fmt.Errorf("%s: %w", bin.Path, err)
			}
			results[i] = exports
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		report(r, err)
		return nil, err
	}

	canonical := results[0]
	for i := 1; i < len(results); i++ {
		if !descriptor.SetsEqual(canonical, results[i]) {
			msg := fmt.Sprintf("binary %s (%s) describes different exports than %s (%s)",
				opts.Binaries[i].Path, opts.Binaries[i].Platform,
				opts.Binaries[0].Path, opts.Binaries[0].Platform)
			diag.Error(r, diag.BinPlatformMismatch, "", msg)
			return nil, fmt.Errorf("%s: %s", diag.BinPlatformMismatch, msg)
		}
	}
	return canonical, nil
}

func writeOutputs(dir, baseName string, res *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	res.SourcePath = filepath.Join(dir, "Bindings.cs")
	if err := os.WriteFile(res.SourcePath, []byte(res.Source), 0o644); err != nil {
		return fmt.Errorf("failed to write bindings: %w", err)
	}
	res.ProjectPath = filepath.Join(dir, names.ToPascal(baseName)+"Bindings.csproj")
	if err := os.WriteFile(res.ProjectPath, []byte(res.Project), 0o644); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	return nil
}

// report turns a pipeline error into a diagnostic, preserving the code
// and export attribution of typed errors.
func report(r diag.Reporter, err error) {
	var lerr *elfload.Error
	if errors.As(err, &lerr) {
		r.Report(lerr.Diagnostic())
		return
	}
	var merr *marshal.Error
	if errors.As(err, &merr) {
		r.Report(merr.Diagnostic())
		return
	}
	diag.Error(r, diag.UnknownCode, "", err.Error())
}
