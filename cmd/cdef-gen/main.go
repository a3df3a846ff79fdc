package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/provide-io/cdef/pkg/cdef"
	"github.com/provide-io/cdef/pkg/logging"
	"github.com/provide-io/cdef/pkg/utils/permissions"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

type options struct {
	configPath string
	dir        string
	cc         string
	cflags     string
	jobs       int
	mode       string
	reuse      bool
	keepWork   bool
	logLevel   string
}

func getBuildTimestamp() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var versionFlag bool

	rootCmd := &cobra.Command{
		Use:   "cdef-gen",
		Short: "Generate platform constant modules from C headers",
		Long: `cdef-gen probes system headers such as fcntl.h and poll.h with the host
C compiler and writes one module file per group of constants:

  module core.sys.posix.fcntl_c;
  enum O_CREAT = 64;
  // O_EXLOCK not defined`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			return runGenerate(cmd.Context(), opts, false)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML or JSON group table (default: built-in fcntl/poll table)")
	flags.StringVarP(&opts.dir, "dir", "C", ".", "Directory group outputs are relative to")
	flags.StringVar(&opts.cc, "cc", envOr("CC", "cc"), "C compiler command")
	flags.StringVar(&opts.cflags, "cflags", os.Getenv("CFLAGS"), "Extra C compiler flags")
	flags.IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "Number of groups probed in parallel")
	flags.StringVar(&opts.mode, "mode", permissions.FormatOctal(permissions.DefaultFilePerms), "File mode of generated files")
	flags.BoolVar(&opts.reuse, "reuse", false, "Reuse cached probe binaries while their inputs are unchanged")
	flags.BoolVar(&opts.keepWork, "keep-work", false, "Keep probe work directories")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, json:<level>)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:           "check",
			Short:         "Verify generated files are up to date without writing",
			Args:          cobra.NoArgs,
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runGenerate(cmd.Context(), opts, true)
			},
		},
		&cobra.Command{
			Use:   "source [output]",
			Short: "Print the C probe program for one or all groups",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(opts.configPath)
				if err != nil {
					return err
				}
				groups := cfg.Groups
				if len(args) == 1 {
					g, ok := cfg.Find(args[0])
					if !ok {
						return fmt.Errorf("%w: no group writes %q", cdef.ErrConfiguration, args[0])
					}
					groups = []cdef.Group{g}
				}
				for _, g := range groups {
					if _, err := cmd.OutOrStdout().Write(cdef.ProbeSource(g)); err != nil {
						return err
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "modules",
			Short: "List configured outputs and their module names",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(opts.configPath)
				if err != nil {
					return err
				}
				units, err := cdef.Plan(cfg.Layout(), opts.dir, cfg.Groups)
				if err != nil {
					return err
				}
				for _, u := range units {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\n", u.Group.Output, u.Module, u.Group.Header, len(u.Group.Names))
				}
				return nil
			},
		},
	)

	return rootCmd
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "cdef-gen %s\n", version)
	fmt.Fprintf(w, "Built: %s\n", getBuildTimestamp())
}

func loadConfig(path string) (*cdef.Config, error) {
	if path == "" {
		return cdef.DefaultConfig(), nil
	}
	return cdef.LoadConfig(path)
}

func runGenerate(ctx context.Context, opts *options, check bool) error {
	logger, closeLog := logging.Setup("cdef-gen", opts.logLevel)
	defer closeLog()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.configPath != "" {
		logger.Info("📄 Loaded config", "path", opts.configPath, "groups", len(cfg.Groups))
	}

	mode, err := permissions.ParseOctalString(opts.mode)
	if err != nil {
		return fmt.Errorf("%w: --mode: %v", cdef.ErrConfiguration, err)
	}

	prober, err := cdef.NewCCProber(opts.cc, opts.cflags, logger.Named("probe"))
	if err != nil {
		return err
	}
	prober.Reuse = opts.reuse
	prober.KeepWork = opts.keepWork

	x := &cdef.Extractor{
		Prober: prober,
		Layout: cfg.Layout(),
		Dir:    opts.dir,
		Mode:   mode,
		Jobs:   opts.jobs,
		Logger: logger,
	}

	if check {
		report, err := x.Check(ctx, cfg.Groups)
		if err != nil {
			return err
		}
		logger.Info("✅ All modules up to date", "count", len(report.Results))
		return nil
	}

	report, err := x.Run(ctx, cfg.Groups)
	if err != nil {
		return err
	}
	logger.Info("🎉 Generated modules", "count", len(report.Results), "dir", opts.dir)
	return nil
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		printVersion(os.Stdout)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, cdef.ErrStale) {
			stop()
			os.Exit(2)
		}
		stop()
		os.Exit(1)
	}
}
