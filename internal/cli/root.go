// Package cli is the command-line front end. Each subcommand is a thin
// wrapper around one recordlist operation; running without a subcommand
// opens the interactive editor.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/records/internal/config"
	"github.com/Makepad-fr/records/internal/logging"
	"github.com/Makepad-fr/records/internal/recordlist"
	"github.com/Makepad-fr/records/internal/store"
	"github.com/Makepad-fr/records/internal/ui"
	"github.com/Makepad-fr/records/internal/version"
)

// app carries state shared by all subcommands for one invocation.
type app struct {
	configPath string
	backend    string
	dir        string
	key        string
	logLevel   string
	theme      string
	noColor    bool
	forceColor bool

	cfg   *config.Config
	store *store.Records
	list  *recordlist.List
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.close()
	if err == nil {
		return exitOK
	}
	ui.Fail(stderr, err.Error())
	if isUsage(err) {
		return exitUsage
	}
	return exitError
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "records",
		Short: "A tiny task-list editor",
		Long: `records keeps a list of short text records you can add, edit,
complete and delete. Run without a subcommand to open the interactive editor.`,
		Version:           fmt.Sprintf("%s (commit: %s)", version.Version, version.Commit),
		Args:              usageArgs(noArgs),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default: <config dir>/config.yaml)")
	pf.StringVar(&a.backend, "backend", "", "storage backend: file | sqlite")
	pf.StringVar(&a.dir, "dir", "", "data directory")
	pf.StringVar(&a.key, "key", "", "storage key the list lives under")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug | info | warn | error (default: $"+logging.LogLevelEnvVar+")")
	pf.StringVar(&a.theme, "theme", "", "output theme: classic | neon | mono")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colors")
	pf.BoolVar(&a.forceColor, "force-color", false, "force colors even when not a terminal")

	root.AddCommand(
		a.lsCommand(),
		a.addCommand(),
		a.editCommand(),
		a.doneCommand(),
		a.rmCommand(),
		a.exportCommand(),
		a.tuiCommand(),
		a.initCommand(),
		versionCommand(),
	)
	return root
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

// setup loads config, applies flag overrides, initializes logging and opens
// the store. Commands that do not touch records skip the store.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.backend != "" {
		cfg.Storage.Backend = a.backend
	}
	if a.dir != "" {
		cfg.Storage.Dir = a.dir
	}
	if a.key != "" {
		cfg.Storage.Key = a.key
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.theme != "" {
		cfg.UI.Theme = a.theme
	}
	a.cfg = cfg

	ui.SetColorForcing(a.forceColor, a.noColor)
	ui.SetTheme(cfg.UI.Theme)

	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.Log.Level, logPath); err != nil {
		return err
	}

	if cmd.Name() == "version" || cmd.Name() == "init" {
		return nil
	}
	dir, err := cfg.DataDir()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	st, err := store.Open(ctx, cfg.Storage.Backend, dir, cfg.Storage.Key)
	if err != nil {
		if errors.Is(err, store.ErrUnknownBackend) {
			return usageError{err}
		}
		return fmt.Errorf("open store: %w", err)
	}
	a.store = st
	a.list = recordlist.New(ctx, st, recordlist.WithLogger(logging.Named("recordlist")))
	logging.Debug("session started",
		zap.String("command", cmd.Name()),
		zap.String("backend", cfg.Storage.Backend),
		zap.String("dir", dir),
		zap.String("key", st.Key),
	)
	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logging.Warn("close store", zap.Error(err))
		}
	}
	logging.Sync()
}

// contextOf returns the command context, never nil.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// initCommand writes the effective configuration, flag overrides included,
// to the config file so later runs pick it up without flags.
func (a *app) initCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the config file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				p, err := config.GetConfigPath()
				if err != nil {
					return err
				}
				path = p
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := a.cfg.Save(path); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "wrote "+path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "records %s (commit: %s)\n", version.Version, version.Commit)
		},
	}
}
