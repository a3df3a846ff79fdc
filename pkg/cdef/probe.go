package cdef

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/cdef/internal/workenv"
	"github.com/provide-io/cdef/pkg/utils/shellparse"
)

// Prober resolves the constants of a group on the current platform.
// The returned entries are in the order of g.Names.
type Prober interface {
	Probe(ctx context.Context, g Group) ([]Entry, error)
}

const (
	probeSourceName = "probe.c"
	probeBinaryName = "probe"
)

// CCProber compiles and runs ProbeSource with the host C compiler.
type CCProber struct {
	// CC is the compiler command, e.g. ["ccache", "gcc"]. Defaults to "cc".
	CC []string
	// CFlags are passed to the compiler before the source file.
	CFlags []string
	// Reuse keeps compiled probes in the cache root and reuses them while
	// their inputs are unchanged.
	Reuse bool
	// KeepWork leaves scratch directories in place for inspection.
	KeepWork bool
	Logger   hclog.Logger
}

// NewCCProber builds a prober from $CC-style and $CFLAGS-style strings.
func NewCCProber(cc, cflags string, logger hclog.Logger) (*CCProber, error) {
	ccArgs, err := shellparse.Split(cc)
	if err != nil {
		return nil, fmt.Errorf("%w: CC %q: %v", ErrConfiguration, cc, err)
	}
	flagArgs, err := shellparse.Split(cflags)
	if err != nil {
		return nil, fmt.Errorf("%w: CFLAGS %q: %v", ErrConfiguration, cflags, err)
	}
	return &CCProber{CC: ccArgs, CFlags: flagArgs, Logger: logger}, nil
}

func (p *CCProber) logger() hclog.Logger {
	if p.Logger == nil {
		return hclog.NewNullLogger()
	}
	return p.Logger
}

func (p *CCProber) compiler() []string {
	if len(p.CC) == 0 {
		return []string{"cc"}
	}
	return p.CC
}

// Probe implements Prober.
func (p *CCProber) Probe(ctx context.Context, g Group) ([]Entry, error) {
	logger := p.logger().With("output", g.Output, "header", g.Header)
	source := ProbeSource(g)
	cc := p.compiler()

	var dir string
	if p.Reuse {
		key := workenv.Key(string(source), shellparse.Join(cc), shellparse.Join(p.CFlags), runtime.GOOS, runtime.GOARCH)
		dir = workenv.GetWorkenvPath(key)
		if workenv.IsValid(dir, key, probeBinaryName) {
			logger.Debug("♻️ Reusing cached probe", "dir", dir)
		} else {
			if err := workenv.CreateWorkenv(dir); err != nil {
				return nil, err
			}
			if err := p.build(ctx, logger, dir, source); err != nil {
				return nil, err
			}
			if err := workenv.MarkComplete(dir, key, shellparse.Join(cc)); err != nil {
				logger.Warn("⚠️ Failed to mark probe complete", "dir", dir, "error", err)
			}
		}
	} else {
		var err error
		dir, err = workenv.CreateScratch("probe")
		if err != nil {
			return nil, err
		}
		if p.KeepWork {
			logger.Info("📁 Keeping probe work directory", "dir", dir)
		} else {
			defer workenv.Clean(dir)
		}
		if err := p.build(ctx, logger, dir, source); err != nil {
			return nil, err
		}
	}

	out, err := p.run(ctx, dir)
	if err != nil {
		return nil, err
	}
	return ParseProbeOutput(g, out)
}

func (p *CCProber) build(ctx context.Context, logger hclog.Logger, dir string, source []byte) error {
	src := filepath.Join(dir, probeSourceName)
	if err := os.WriteFile(src, source, 0644); err != nil {
		return fmt.Errorf("failed to write probe source: %w", err)
	}

	cc := p.compiler()
	args := make([]string, 0, len(cc)+len(p.CFlags)+3)
	args = append(args, cc[1:]...)
	args = append(args, p.CFlags...)
	args = append(args, "-o", filepath.Join(dir, probeBinaryName), src)

	logger.Debug("🔨 Compiling probe", "command", shellparse.Join(append([]string{cc[0]}, args...)))

	cmd := exec.CommandContext(ctx, cc[0], args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		diag := strings.TrimSpace(string(output))
		if markErr := workenv.MarkIncomplete(dir, diag); markErr != nil {
			logger.Debug("Failed to mark probe incomplete", "error", markErr)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return fmt.Errorf("%w: compiler %q: %v", ErrProbe, cc[0], execErr.Err)
		}
		return fmt.Errorf("%w: %s: %v\n%s", ErrUnavailableHeader, probeSourceName, err, diag)
	}
	return nil
}

func (p *CCProber) run(ctx context.Context, dir string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, filepath.Join(dir, probeBinaryName))
	cmd.Dir = dir
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: running probe: %v: %s", ErrProbe, err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// ParseProbeOutput converts the lines printed by a probe into entries and
// checks them against the names of g.
func ParseProbeOutput(g Group, out []byte) ([]Entry, error) {
	entries := make([]Entry, 0, len(g.Names))

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		i := len(entries)
		if i >= len(g.Names) {
			return nil, fmt.Errorf("%w: unexpected line %q", ErrProbe, line)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != g.Names[i] {
			return nil, fmt.Errorf("%w: line %d is %q, expected %s", ErrProbe, i+1, line, g.Names[i])
		}

		switch {
		case len(fields) == 2 && fields[1] == "0":
			entries = append(entries, Undefined(fields[0]))
		case len(fields) == 3 && fields[1] == "1":
			v, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrProbe, fields[0], err)
			}
			entries = append(entries, Defined(fields[0], v))
		default:
			return nil, fmt.Errorf("%w: malformed line %q", ErrProbe, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProbe, err)
	}
	if len(entries) != len(g.Names) {
		return nil, fmt.Errorf("%w: got %d of %d constants", ErrProbe, len(entries), len(g.Names))
	}
	return entries, nil
}
