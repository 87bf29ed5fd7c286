// Package commands implements the designer command line.
package commands

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldmark/designer/internal/cli/config"
	"github.com/fieldmark/designer/internal/cli/ui"
	"github.com/fieldmark/designer/internal/logging"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// App carries the state shared by every subcommand: global flags, the
// loaded configuration and the logger built from it
type App struct {
	ConfigPath string
	Verbose    bool
	NoColor    bool

	Config *config.Config
	Logger *zap.Logger
}

// setup loads configuration and builds the logger. It runs before every
// subcommand.
func (a *App) setup() error {
	if a.NoColor {
		color.NoColor = true
	}

	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return &reportedError{err: err, report: ui.ConfigError(err.Error(), a.NoColor)}
	}
	a.Config = cfg

	level := cfg.Log.Level
	if a.Verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.Logger = logger
	return nil
}

// reportedError carries a preformatted message for Execute to print
type reportedError struct {
	err    error
	report string
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:   "designer",
		Short: "Notebook designer for field data collection",
		Long: color.CyanString(`Designer - notebook authoring tools

Designer validates, migrates and edits field data collection notebooks:
the forms, sections and fields a survey team fills in, plus the conditions
that decide what is shown.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.ConfigPath, "config", "", "config file (default: designer.yml in the current directory)")
	flags.BoolVarP(&app.Verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&app.NoColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewValidateCommand(app))
	rootCmd.AddCommand(NewMigrateCommand(app))
	rootCmd.AddCommand(NewNewCommand(app))
	rootCmd.AddCommand(NewApplyCommand(app))
	rootCmd.AddCommand(NewConditionsCommand(app))
	rootCmd.AddCommand(NewFieldsCommand(app))
	rootCmd.AddCommand(NewOperationsCommand(app))
	rootCmd.AddCommand(NewServeCommand(app))
	rootCmd.AddCommand(NewTokenCommand(app))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the designer version, Git commit, build date, and Go version",
		// version needs no configuration
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			noColor, _ := cmd.Flags().GetBool("no-color")
			table := ui.NewKeyValueTable(cmd.OutOrStdout(), noColor)
			table.AddRow("Designer version", Version)
			table.AddRow("Git commit", GitCommit)
			table.AddRow("Build date", BuildDate)
			table.AddRow("Go version", runtime.Version())
			table.Render()
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		var reported *reportedError
		if errors.As(err, &reported) && reported.report != "" {
			fmt.Fprint(rootCmd.ErrOrStderr(), reported.report)
			return err
		}
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
