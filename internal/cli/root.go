// Package cli implements the vdplayer command line.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/vdplayer/internal/config"
	"github.com/llehouerou/vdplayer/internal/engine"
	"github.com/llehouerou/vdplayer/internal/errmsg"
)

// Version is set at build time.
var Version = "dev"

// ExitFatal is the status for failures before or while starting playback.
const ExitFatal = -1

// flags hold the command-line overrides of the configuration.
type flags struct {
	config    string
	engine    string
	logLevel  string
	noInhibit bool
	windowed  bool
}

// apply copies the flags that were given onto cfg.
func (f flags) apply(cfg *config.Config) {
	if f.engine != "" {
		cfg.Engine = f.engine
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.noInhibit {
		cfg.Inhibit.Enabled = false
	}
	if f.windowed {
		cfg.Fullscreen = false
	}
}

// fatalError is a failure that ends the process with ExitFatal.
type fatalError struct {
	op  errmsg.Op
	err error
}

func fatal(op errmsg.Op, err error) error {
	return &fatalError{op: op, err: err}
}

func (e *fatalError) Error() string { return errmsg.Format(e.op, e.err) }
func (e *fatalError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "vdplayer [flags] <file or url>",
		Short: "Play a video or audio file from the terminal",
		Long: "vdplayer plays one video file or URL in its own window and controls it\n" +
			"from the terminal. The screen is kept awake while playing.",
		Version:       Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.config)
			if err != nil {
				return fatal(errmsg.OpConfigLoad, err)
			}
			f.apply(cfg)
			if _, err := engine.ParseKind(cfg.Engine); err != nil {
				return fatal(errmsg.OpConfigLoad, err)
			}
			return run(cmd.Context(), cfg, args[0])
		},
	}

	cmd.Flags().StringVarP(&f.config, "config", "c", "", "Read an extra config file, applied last")
	cmd.Flags().StringVarP(&f.engine, "engine", "e", "", "Playback engine: mpv, beep or auto")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.Flags().BoolVar(&f.noInhibit, "no-inhibit", false, "Let the screen blank during playback")
	cmd.Flags().BoolVarP(&f.windowed, "windowed", "w", false, "Start in a window instead of fullscreen")

	lo.Must0(cmd.RegisterFlagCompletionFunc("engine", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(engine.KindMPV), string(engine.KindBeep), string(engine.KindAuto)}, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(cmd.RegisterFlagCompletionFunc("log-level", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	}))

	return cmd
}

// Execute runs the command line and exits with its status.
func Execute() {
	os.Exit(execute(newRootCmd(), os.Args[1:]))
}

func execute(cmd *cobra.Command, args []string) int {
	if args == nil {
		// cobra reads os.Args for nil
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), strings.TrimSpace(err.Error()))

	var fe *fatalError
	if !errors.As(err, &fe) {
		// usage errors
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Run 'vdplayer --help' for usage.")
	}
	return ExitFatal
}
