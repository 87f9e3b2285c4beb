package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/danpilch/checkdisk/pkg/collectors/mounts"
	"github.com/danpilch/checkdisk/pkg/collectors/usage"
	"github.com/danpilch/checkdisk/pkg/config"
	"github.com/danpilch/checkdisk/pkg/debug"
	"github.com/danpilch/checkdisk/pkg/health"
	"github.com/danpilch/checkdisk/pkg/output"
	"github.com/danpilch/checkdisk/pkg/state"
)

// Version is set at build time.
var Version = "dev"

// env holds everything a run touches outside the process.
type env struct {
	fs      afero.Fs
	source  mounts.Source
	querier usage.Querier
	stdout  io.Writer
	stderr  io.Writer
}

type rootFlags struct {
	configPath string
	logLevel   string
	version    bool
}

func newRootCmd(e env, exit *int) *cobra.Command {
	settings := config.Default()
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "check_disk [flags] [warn-used% [crit-used%]]",
		Short: "Check free space on mounted filesystems",
		Long: `Checks the amount of used disk space on mounted filesystems and exits
with WARNING or CRITICAL if free space on any filesystem falls below the
given thresholds. Thresholds given before -p apply to that path.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.version {
				fmt.Fprintf(e.stdout, "check_disk %s\n", Version)
				*exit = 0
				return nil
			}
			*exit = run(cmd.Context(), e, settings, flags, args)
			return nil
		},
	}
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)

	fs := cmd.Flags()
	fs.SortFlags = false
	// Option parsing stops at the first positional argument.
	fs.SetInterspersed(false)
	settings.BindFlags(fs)
	fs.StringVar(&flags.configPath, "config", "", "YAML file applied before command-line flags")
	fs.StringVar(&flags.logLevel, "log-level", "warn", "Log level for stderr diagnostics (debug, info, warn, error)")
	fs.BoolVarP(&flags.version, "version", "V", false, "Print version and exit")

	return cmd
}

// execute parses args, runs one check and returns the process exit code.
func execute(args []string, e env) int {
	exit := 0
	cmd := newRootCmd(e, &exit)
	cmd.SetArgs(config.NormalizeArgs(args))
	if err := cmd.Execute(); err != nil {
		return unknown(e.stdout, err)
	}
	return exit
}

func unknown(w io.Writer, err error) int {
	fmt.Fprintf(w, "DISK %s - %v\n", state.Unknown, err)
	return state.Unknown.ExitCode()
}

func newLogger(w io.Writer, level string, verbosity int) (*logrus.Logger, error) {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbosity >= 3 && l < logrus.DebugLevel {
		l = logrus.DebugLevel
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(l)
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000000",
		FullTimestamp:   true,
	})
	return logger, nil
}

type outcome struct {
	overall *health.Overall
	err     error
}

func run(ctx context.Context, e env, s *config.Settings, flags rootFlags, args []string) int {
	if flags.configPath != "" {
		f, err := config.Load(e.fs, flags.configPath)
		if err != nil {
			return unknown(e.stdout, err)
		}
		if err := f.Apply(s); err != nil {
			return unknown(e.stdout, err)
		}
	}
	if err := s.ApplyFlags(); err != nil {
		return unknown(e.stdout, err)
	}
	s.ApplyPositional(args)
	if err := s.Validate(); err != nil {
		return unknown(e.stdout, err)
	}

	logger, err := newLogger(e.stderr, flags.logLevel, s.Verbosity)
	if err != nil {
		return unknown(e.stdout, err)
	}
	logger.WithFields(logrus.Fields{
		"thresholds": s.Global,
		"unit":       s.Unit.Name,
		"paths":      s.Paths.Names(),
		"timeout":    s.Timeout,
	}).Debug("Settings resolved")

	src, q := e.source, e.querier
	rec := &debug.Recorder{}
	if s.Verbosity >= 3 {
		src = debug.NewTimedSource(src, rec)
		q = debug.NewTimedQuerier(q, rec)
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	checker := health.NewChecker(s.HealthOptions(), logger)
	done := make(chan outcome, 1)
	go func() {
		o, err := checker.Run(ctx, src, q)
		done <- outcome{overall: o, err: err}
	}()

	var res outcome
	select {
	case res = <-done:
	case <-ctx.Done():
		return timedOut(e.stdout, s.Timeout)
	}
	if res.err != nil {
		if errors.Is(res.err, context.DeadlineExceeded) {
			return timedOut(e.stdout, s.Timeout)
		}
		return unknown(e.stdout, res.err)
	}

	if s.Verbosity >= 3 {
		debug.TimingReport(e.stderr, rec.Timings())
		debug.DumpRawUsage(e.stderr, res.overall.Results)
	}

	formatter := output.NewFormatter(output.Format(s.Format), e.stdout, output.Display{
		Unit:          s.Unit,
		ErrorsOnly:    s.ErrorsOnly,
		DisplayDevice: s.DisplayDevice,
		Verbosity:     s.Verbosity,
	})
	if err := formatter.Render(res.overall); err != nil {
		logger.WithError(err).Error("Failed to render output")
		return state.Unknown.ExitCode()
	}
	return res.overall.State.ExitCode()
}

func timedOut(w io.Writer, timeout time.Duration) int {
	fmt.Fprintf(w, "DISK %s - check timed out after %d seconds\n", state.Unknown, int(timeout/time.Second))
	return state.Unknown.ExitCode()
}
