// Package cli wires the apptime commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sadopc/apptime/internal/config"
	"github.com/sadopc/apptime/internal/logging"
	"github.com/sadopc/apptime/internal/store"
	"github.com/sadopc/apptime/internal/tui"
)

var version = "dev"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath  string
	dbPath      string
	interactive bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "apptime",
		Short: "apptime - track how long applications run each day",
		Long: `apptime samples which of your tracked applications are running, once per
tick, and keeps a daily minute count per app in a local SQLite file. Browse the
history with "apptime ui" or print it with "apptime day" and "apptime query".`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.interactive {
				return runUI(cmd, opts)
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath(), "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Path to the database (overrides database.path)")
	rootCmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Open the interactive browser")

	rootCmd.AddCommand(
		newUpdateCmd(opts),
		newWatchCmd(opts),
		newAppCmd(opts),
		newSettingsCmd(opts),
		newNotifyCmd(opts),
		newDayCmd(opts),
		newQueryCmd(opts),
		newUICmd(opts),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what a command needs at run time.
type env struct {
	cfg      *config.Config
	logger   zerolog.Logger
	store    *store.Store
	closeLog func() error
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Error().Err(err).Msg("Failed to close database")
	}
	e.closeLog()
}

// setup loads configuration, builds the logger and opens the store. ui
// selects a logger that never writes to the terminal.
func setup(opts *globalOptions, ui bool) (*env, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.dbPath != "" {
		cfg.Database.Path = opts.dbPath
	}

	if !cfg.UI.Color {
		color.NoColor = true
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	var (
		logger   zerolog.Logger
		closeLog func() error
	)
	if ui {
		logger, closeLog, err = logging.ForUI(cfg.Logging)
	} else {
		logger, closeLog, err = logging.New(cfg.Logging, os.Stderr)
	}
	if err != nil {
		return nil, err
	}

	s, err := store.New(cfg.Database.Path)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Debug().Str("path", cfg.Database.Path).Msg("Database opened")

	return &env{cfg: cfg, logger: logger, store: s, closeLog: closeLog}, nil
}

func newUICmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, opts)
		},
	}
}

func runUI(_ *cobra.Command, opts *globalOptions) error {
	e, err := setup(opts, true)
	if err != nil {
		return err
	}
	defer e.Close()
	return tui.Run(e.store, e.logger)
}

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	okColor      = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
)

func heading(w io.Writer, title string) {
	headingColor.Fprintln(w, title)
}

func mutedNote(w io.Writer, text string) {
	color.New(color.Faint).Fprintln(w, "  "+text)
}
