package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/maddestlabs/tstorie/pkg/cellbuf"
	"github.com/maddestlabs/tstorie/pkg/config"
	"github.com/maddestlabs/tstorie/pkg/lifecycle"
	"github.com/maddestlabs/tstorie/pkg/runtime"
	"github.com/maddestlabs/tstorie/pkg/terminal"
	"github.com/maddestlabs/tstorie/pkg/theme"
)

// cliConfig holds flag values bound to the root command.
type cliConfig struct {
	Debug      bool
	Document   string
	ConfigPath string
	TargetFPS  int
	AudioOn    bool
	CrashLog   string
}

func main() {
	var cfg cliConfig

	rootCmd := &cobra.Command{
		Use:   "tstorie [flags] [document]",
		Short: "Terminal interactive-fiction presentation engine",
		Long: `tstorie renders cell-buffer based interactive fiction to a terminal,
compositing layered frames at a fixed frame rate and routing input
through scripted sections.`,
		Example: `  # Run with an on-disk document
  tstorie story.md

  # Override the frame rate and enable audio
  tstorie --fps 30 --audio story.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.Document = args[0]
			}
			return runApp(cmd.Context(), cfg)
		},
	}

	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&cfg.ConfigPath, "config", "", "Path to tstorie.toml (searched upward from cwd if unset)")
	rootCmd.Flags().IntVar(&cfg.TargetFPS, "fps", 0, "Override the configured target frame rate")
	rootCmd.Flags().BoolVar(&cfg.AudioOn, "audio", false, "Set audio_on in the loaded config (no audio output is attached)")
	rootCmd.Flags().StringVar(&cfg.CrashLog, "crash-log", "", "Path a recovered panic's crash report is appended to")

	ctx := context.Background()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion(versionString),
		fang.WithCommit(commitString),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			if errors.Is(err, terminal.ErrUnavailable) {
				_, _ = fmt.Fprintln(w, theme.RenderTerminalUnavailable())
				return
			}
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// versionString/commitString are overridden at build time via -ldflags
// and surfaced through fang.WithVersion/WithCommit.
var (
	versionString = "dev"
	commitString  = "dev"
)

func runApp(ctx context.Context, cli cliConfig) error {
	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var (
		fileCfg config.Config
		err     error
	)
	if cli.ConfigPath != "" {
		fileCfg, err = config.Load(cli.ConfigPath)
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return fmt.Errorf("tstorie: resolve working directory: %w", wdErr)
		}
		_, fileCfg, err = config.Find(wd)
	}
	if err != nil {
		return fmt.Errorf("tstorie: loading config: %w", err)
	}

	if cli.TargetFPS > 0 {
		fileCfg.TargetFPS = cli.TargetFPS
	}
	if cli.AudioOn {
		fileCfg.AudioOn = true
	}
	if cli.Document == "" {
		cli.Document = fileCfg.Document
	}

	themeBg := cellbuf.Style{
		BgR: fileCfg.Theme.BgR,
		BgG: fileCfg.Theme.BgG,
		BgB: fileCfg.Theme.BgB,
	}

	backend := terminal.NewProcessBackend()
	hooks := lifecycle.Hooks{}
	lc := lifecycle.New(backend, themeBg, hooks, logger)
	if fileCfg.TargetFPS > 0 {
		lc.TargetHz = fileCfg.TargetFPS
	}
	lc.CrashLog = cli.CrashLog

	host := newWelcomeHost(cli.Document)
	rt := runtime.New(lc, host)

	runErr := runtime.Run(rt)

	if rt.LastCrash != nil {
		fmt.Fprintln(os.Stderr, theme.RenderCrashReport(rt.SessionID, rt.LastCrash.PanicValue))
		if lc.CrashLog != "" {
			if writeErr := rt.LastCrash.AppendJSONLine(crashReportPath(lc.CrashLog)); writeErr != nil {
				logger.Warn("tstorie: failed to append structured crash report", "err", writeErr)
			}
		}
	}

	if runErr == nil && lc.SigIntReceived() {
		return errSigInt
	}
	return runErr
}

// errSigInt signals runApp's caller to use exit code 130 after SIGINT
// ended an otherwise clean run; like any other returned error, its
// message is printed once by fang's error output.
var errSigInt = errors.New("tstorie: interrupted")

func crashReportPath(crashLogPath string) string {
	ext := filepath.Ext(crashLogPath)
	return crashLogPath[:len(crashLogPath)-len(ext)] + ".json"
}

// exitCodeFor maps a runApp error to the process exit code:
// 0 clean quit, 1 unhandled error, 2 terminal init failure, 130 SIGINT.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errSigInt):
		return 130
	case errors.Is(err, terminal.ErrUnavailable):
		return 2
	default:
		return 1
	}
}
