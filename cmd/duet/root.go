package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dshills/duet/internal/app"
	"github.com/dshills/duet/internal/config"
	"github.com/dshills/duet/internal/renderer/backend"
	"github.com/dshills/duet/internal/version"
)

// flags holds the command-line flags.
type flags struct {
	lineNumbers bool
	configPath  string
	logLevel    string
	logFile     string
	showVersion bool
}

func (f *flags) register(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.lineNumbers, "line-numbers", "n", false, "show line numbers")
	fs.StringVarP(&f.configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/duet/config.toml)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&f.logFile, "log-file", "", "write logs to this file")
	fs.BoolVarP(&f.showVersion, "version", "v", false, "print version information and exit")
}

// overrides returns the config settings given on the command line. Only
// flags the user set override lower layers.
func (f *flags) overrides(fs *pflag.FlagSet) map[string]any {
	out := make(map[string]any)
	if fs.Changed("line-numbers") {
		out["editor.lineNumbers"] = f.lineNumbers
	}
	if fs.Changed("log-level") {
		out["logging.level"] = f.logLevel
	}
	if fs.Changed("log-file") {
		out["logging.file"] = f.logFile
	}
	return out
}

// launcher runs an editing session for path with the loaded configuration.
type launcher func(ctx context.Context, fs afero.Fs, path string, cfg *config.Config) error

type rootOptions struct {
	fs      afero.Fs
	environ func() []string
	launch  launcher
}

func defaultRootOptions() rootOptions {
	return rootOptions{
		fs:      afero.NewOsFs(),
		environ: os.Environ,
		launch:  runSession,
	}
}

func newRootCmd(opts rootOptions) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "duet [file]",
		Short: "A small terminal text editor with a second cursor",
		Long: `duet edits one file in the terminal. Alt+C adds a second cursor that
Alt+arrows move; Ctrl+<letter> then types at both cursors at once.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.showVersion {
				_, err := fmt.Fprint(cmd.OutOrStdout(), version.Long())
				return err
			}

			var path string
			if len(args) > 0 {
				path = args[0]
			}

			cfgOpts := []config.Option{
				config.WithFs(opts.fs),
				config.WithEnviron(opts.environ),
				config.WithOverrides(f.overrides(cmd.Flags())),
			}
			if f.configPath != "" {
				cfgOpts = append(cfgOpts, config.WithPath(f.configPath))
			}
			cfg := config.New(cfgOpts...)
			if err := cfg.Load(cmd.Context()); err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			return opts.launch(cmd.Context(), opts.fs, path, cfg)
		},
	}
	f.register(cmd.Flags())

	return cmd
}

// runSession opens the terminal and runs the editor until the user quits.
func runSession(ctx context.Context, fs afero.Fs, path string, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	logCfg := cfg.Logging()
	logger, logCloser, err := app.OpenLogFile(fs, logCfg.File, app.ParseLogLevel(logCfg.Level))
	if err != nil {
		return err
	}
	defer logCloser.Close()
	logger.Info("starting %s (config %s)", version.Title(), cfg.Path())

	term, err := backend.NewTerminal()
	if err != nil {
		return &app.InitError{Component: "terminal", Err: err}
	}

	application, err := app.New(app.Options{
		Path:    path,
		Fs:      fs,
		Backend: term,
		Config:  cfg,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil && !errors.Is(err, app.ErrQuit) {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}
