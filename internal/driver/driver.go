// Package driver runs the generator over package directories: it loads
// Go files, parses them, transforms the annotated declarations and emits
// the generated file and spec sidecar.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"contractgen/internal/codegen"
	"contractgen/internal/contract"
	"contractgen/internal/diag"
	"contractgen/internal/directive"
	"contractgen/internal/frontend"
	"contractgen/internal/pipeline"
	"contractgen/internal/source"
	"contractgen/internal/specstore"
)

// ErrForeignOutput is returned when the output path holds a file that was
// not written by the generator.
var ErrForeignOutput = errors.New("output file is not generated")

// Run processes dirs in parallel. Results are returned in the order of dirs.
func Run(ctx context.Context, dirs []string, opts Options) ([]*PackageResult, error) {
	results := make([]*PackageResult, len(dirs))
	if len(dirs) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), len(dirs)))
	for i, dir := range dirs {
		g.Go(func() error {
			res, err := RunPackage(gctx, dir, opts)
			if err != nil {
				opts.emit(pipeline.Event{Package: dir, Status: pipeline.StatusError, Err: err})
				return fmt.Errorf("%s: %w", dir, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RunPackage processes the Go files of a single directory.
func RunPackage(ctx context.Context, dir string, opts Options) (*PackageResult, error) {
	res := &PackageResult{
		Dir:      dir,
		Bag:      diag.NewBag(opts.MaxDiagnostics),
		Registry: directive.NewRegistry(),
	}
	log := Logger().With(zap.String("dir", dir))

	// load
	start := stageStart(&opts, dir, pipeline.StageLoad)
	paths, err := listGoFiles(dir, opts.output())
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	fs, ids := loadFiles(dir, paths, res.Bag)
	res.Files = fs
	stageEnd(&opts, dir, pipeline.StageLoad, start)
	log.Debug("files loaded", zap.Int("files", len(ids)))

	// parse
	start = stageStart(&opts, dir, pipeline.StageParse)
	pkg, err := parsePackage(ctx, fs, ids, res.Registry, res.Bag, opts.jobs())
	if err != nil {
		return nil, err
	}
	res.Name = pkg.Name
	stageEnd(&opts, dir, pipeline.StageParse, start)

	// transform
	start = stageStart(&opts, dir, pipeline.StageTransform)
	res.Results, err = transformPackage(ctx, pkg, res.Bag, opts.jobs())
	if err != nil {
		return nil, err
	}
	stageEnd(&opts, dir, pipeline.StageTransform, start)
	log.Debug("package transformed",
		zap.String("package", res.Name),
		zap.Int("candidates", len(res.Results)),
		zap.Int("exports", res.Exports()))

	// emit
	start = stageStart(&opts, dir, pipeline.StageEmit)
	if err := emitPackage(res, &opts); err != nil {
		return nil, err
	}
	res.Bag.Dedup()
	res.Bag.Sort()
	status := pipeline.StatusDone
	switch res.Action {
	case ActionFailed:
		status = pipeline.StatusError
	case ActionNone:
		status = pipeline.StatusSkipped
	}
	elapsed := time.Since(start)
	opts.Timings.Add(pipeline.StageEmit, elapsed)
	opts.emit(pipeline.Event{Package: dir, Stage: pipeline.StageEmit, Status: status, Elapsed: elapsed})
	log.Debug("package emitted", zap.Stringer("action", res.Action))
	return res, nil
}

func stageStart(opts *Options, dir string, stage pipeline.Stage) time.Time {
	opts.emit(pipeline.Event{Package: dir, Stage: stage, Status: pipeline.StatusWorking})
	return time.Now()
}

func stageEnd(opts *Options, dir string, stage pipeline.Stage, start time.Time) {
	elapsed := time.Since(start)
	opts.Timings.Add(stage, elapsed)
	opts.emit(pipeline.Event{Package: dir, Stage: stage, Status: pipeline.StatusDone, Elapsed: elapsed})
}

// parsePackage parses files in parallel, each into its own bag, and merges
// the bags in file order.
func parsePackage(ctx context.Context, fs *source.FileSet, ids []source.FileID, reg *directive.Registry, bag *diag.Bag, jobs int) (*frontend.Package, error) {
	parser := frontend.NewParser(fs, reg)
	files := make([]*frontend.File, len(ids))
	bags := make([]*diag.Bag, len(ids))

	if len(ids) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(ids)))
		for i, id := range ids {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				fileBag := diag.NewBag(bag.Cap())
				files[i] = parser.ParseFile(id, diag.BagReporter{Bag: fileBag})
				bags[i] = fileBag
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}
	for _, b := range bags {
		bag.Merge(b)
	}
	return frontend.Assemble(files, diag.BagReporter{Bag: bag}), nil
}

// transformPackage selects every candidate of pkg and transforms them in
// parallel. Results keep source order.
func transformPackage(ctx context.Context, pkg *frontend.Package, bag *diag.Bag, jobs int) ([]contract.Result, error) {
	var cands []contract.Candidate
	for _, fn := range pkg.Funcs {
		cands = append(cands, contract.SelectFunction(fn)...)
	}
	for _, impl := range pkg.Impls {
		selected := contract.SelectImpl(impl)
		if len(selected) == 0 {
			bag.Add(diag.NewWarning(diag.CtrEmptyContractImpl, impl.Span,
				fmt.Sprintf("impl of %s selects no methods", impl.SelfType.String())))
		}
		cands = append(cands, selected...)
	}
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i].Span, cands[j].Span
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Start < b.Start
	})

	results := make([]contract.Result, len(cands))
	if len(cands) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(cands)))
		for i := range cands {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = contract.Transform(cands[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	for i := range results {
		bag.AddAll(results[i].Diagnostics)
	}
	bag.AddAll(contract.CheckDuplicates(results))
	return results, nil
}

func emitPackage(res *PackageResult, opts *Options) error {
	res.OutputPath = filepath.Join(res.Dir, opts.output())
	if opts.Sidecar != "" {
		res.SidecarPath = filepath.Join(res.Dir, opts.Sidecar)
	}
	if res.Bag.HasErrors() {
		res.Action = ActionFailed
		return nil
	}

	existing, err := readGenerated(res.OutputPath)
	if err != nil {
		return err
	}

	if res.Exports() == 0 {
		if existing == nil {
			res.Action = ActionNone
			return nil
		}
		if opts.Mode == ModeCheck {
			res.Action = ActionStale
			return nil
		}
		res.Action = ActionRemoved
		if opts.DryRun {
			return nil
		}
		if err := os.Remove(res.OutputPath); err != nil {
			return fmt.Errorf("remove stale output: %w", err)
		}
		if res.SidecarPath != "" {
			if err := os.Remove(res.SidecarPath); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove stale sidecar: %w", err)
			}
		}
		Logger().Info("stale output removed", zap.String("path", res.OutputPath))
		return nil
	}

	src, err := codegen.Generate(res.Name, res.Results, opts.Codegen)
	if err != nil {
		return fmt.Errorf("generate %s: %w", res.OutputPath, err)
	}
	res.Source = src
	if res.SidecarPath != "" {
		res.Sidecar = specstore.FromResults(res.Name, res.Results)
	}

	if existing != nil && bytes.Equal(existing, src) {
		res.Action = ActionUnchanged
	} else if opts.Mode == ModeCheck {
		res.Action = ActionStale
		return nil
	} else {
		res.Action = ActionWritten
	}
	if opts.Mode == ModeCheck || opts.DryRun {
		return nil
	}

	if res.Action == ActionWritten {
		if err := os.WriteFile(res.OutputPath, src, 0o600); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		Logger().Info("output written", zap.String("path", res.OutputPath), zap.Int("bytes", len(src)))
	}
	if res.Sidecar != nil {
		if err := specstore.Write(res.SidecarPath, res.Sidecar); err != nil {
			return fmt.Errorf("write sidecar: %w", err)
		}
		Logger().Debug("sidecar written", zap.String("path", res.SidecarPath), zap.Int("records", len(res.Sidecar.Records)))
	}
	return nil
}

// readGenerated returns the content of an existing generated file, nil when
// there is none, and ErrForeignOutput for a hand-written file.
func readGenerated(path string) ([]byte, error) {
	// #nosec G304 -- path is built from a package directory and the configured output name
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	if !codegen.IsGenerated(data) {
		return nil, fmt.Errorf("%w: %s", ErrForeignOutput, path)
	}
	return data, nil
}
