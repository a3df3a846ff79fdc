package cdef

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// Extractor resolves groups of constants and writes one module file per group.
type Extractor struct {
	Prober Prober
	Layout Layout
	// Dir is the directory group outputs are relative to.
	Dir string
	// Mode of written files; zero means 0644.
	Mode os.FileMode
	// Jobs bounds concurrent probes; zero means runtime.NumCPU().
	Jobs   int
	Logger hclog.Logger
}

// Result is the outcome for one group.
type Result struct {
	Unit    Unit
	Entries []Entry
	State   FileState
}

// Counts returns the number of defined and undefined constants.
func (r Result) Counts() (defined, undefined int) {
	for _, e := range r.Entries {
		if e.Defined {
			defined++
		} else {
			undefined++
		}
	}
	return defined, undefined
}

// Report lists the results of a run in configuration order.
type Report struct {
	Results []Result
}

// OutOfDate returns the results whose files are stale or missing.
func (r *Report) OutOfDate() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.State == StateStale || res.State == StateMissing {
			out = append(out, res)
		}
	}
	return out
}

func (x *Extractor) logger() hclog.Logger {
	if x.Logger == nil {
		return hclog.NewNullLogger()
	}
	return x.Logger
}

func (x *Extractor) jobs() int {
	if x.Jobs <= 0 {
		return runtime.NumCPU()
	}
	return x.Jobs
}

func (x *Extractor) mode() os.FileMode {
	if x.Mode == 0 {
		return 0644
	}
	return x.Mode
}

func (x *Extractor) dir() string {
	if x.Dir == "" {
		return "."
	}
	return x.Dir
}

// Run validates all groups, resolves every constant and then writes every
// file. Nothing is written if any group fails validation, probing or staging.
func (x *Extractor) Run(ctx context.Context, groups []Group) (*Report, error) {
	logger := x.logger()

	report, err := x.resolve(ctx, groups)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(report.Results))
	contents := make([][]byte, len(report.Results))
	for i := range report.Results {
		res := &report.Results[i]
		paths[i] = res.Unit.Path
		contents[i] = Format(res.Unit.Module, res.Entries)

		state, err := compareFile(res.Unit.Path, contents[i])
		if err != nil {
			logger.Debug("Could not read previous output", "path", res.Unit.Path, "error", err)
		}
		if state == StateUnchanged {
			res.State = StateUnchanged
		} else {
			res.State = StateWritten
		}
	}

	if err := writeAllAtomic(paths, contents, x.mode()); err != nil {
		logger.Error("❌ Writing failed, outputs left untouched", "error", err)
		return nil, err
	}

	for _, res := range report.Results {
		defined, undefined := res.Counts()
		logger.Info("✅ Wrote module", "module", res.Unit.Module, "path", res.Unit.Path,
			"defined", defined, "undefined", undefined, "state", res.State)
	}

	return report, nil
}

// Check resolves every constant and compares the rendered files with those
// on disk without writing. It returns ErrStale if any file differs.
func (x *Extractor) Check(ctx context.Context, groups []Group) (*Report, error) {
	logger := x.logger()

	report, err := x.resolve(ctx, groups)
	if err != nil {
		return nil, err
	}

	for i := range report.Results {
		res := &report.Results[i]
		state, err := compareFile(res.Unit.Path, Format(res.Unit.Module, res.Entries))
		if err != nil {
			return report, fmt.Errorf("failed to read %s: %w", res.Unit.Path, err)
		}
		res.State = state
		logger.Debug("🔍 Checked module", "module", res.Unit.Module, "path", res.Unit.Path, "state", state)
	}

	if stale := report.OutOfDate(); len(stale) > 0 {
		for _, res := range stale {
			logger.Warn("⚠️ Module out of date", "module", res.Unit.Module, "path", res.Unit.Path, "state", res.State)
		}
		return report, fmt.Errorf("%w: %d of %d files", ErrStale, len(stale), len(report.Results))
	}
	return report, nil
}

func (x *Extractor) resolve(ctx context.Context, groups []Group) (*Report, error) {
	logger := x.logger()

	units, err := Plan(x.Layout, x.dir(), groups)
	if err != nil {
		return nil, err
	}
	if x.Prober == nil {
		return nil, fmt.Errorf("%w: no prober", ErrConfiguration)
	}
	logger.Debug("Planned groups", "count", len(units), "jobs", x.jobs())

	results := make([]Result, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(x.jobs())
	for i, u := range units {
		g.Go(func() error {
			logger.Debug("🔍 Probing group", "module", u.Module, "header", u.Group.Header, "names", len(u.Group.Names))
			entries, err := x.Prober.Probe(gctx, u.Group)
			if err != nil {
				return fmt.Errorf("%s: %w", u.Group.Output, err)
			}
			if err := checkEntries(u.Group, entries); err != nil {
				return fmt.Errorf("%s: %w", u.Group.Output, err)
			}
			results[i] = Result{Unit: u, Entries: entries}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("❌ Probing failed, no files written", "error", err)
		return nil, err
	}

	return &Report{Results: results}, nil
}

func checkEntries(g Group, entries []Entry) error {
	if len(entries) != len(g.Names) {
		return fmt.Errorf("%w: got %d of %d constants", ErrProbe, len(entries), len(g.Names))
	}
	for i, e := range entries {
		if e.Name != g.Names[i] {
			return fmt.Errorf("%w: entry %d is %s, expected %s", ErrProbe, i, e.Name, g.Names[i])
		}
	}
	return nil
}
