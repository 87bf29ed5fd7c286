package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldmark/designer/internal/cli/ui"
	"github.com/fieldmark/designer/internal/condition"
	"github.com/fieldmark/designer/internal/migrate"
	"github.com/fieldmark/designer/internal/notebook"
	"github.com/fieldmark/designer/internal/schema"
	"github.com/fieldmark/designer/internal/session"
	"github.com/fieldmark/designer/internal/uispec"
	"github.com/fieldmark/designer/internal/utils"
	"github.com/fieldmark/designer/internal/watch"
)

// NewValidateCommand creates the validate command
func NewValidateCommand(app *App) *cobra.Command {
	var watchFiles bool

	cmd := &cobra.Command{
		Use:   "validate <notebook.json|dir>...",
		Short: "Check notebooks against the notebook schema",
		Long: `Validate one or more notebook files against the notebook JSON schema.

Directories are searched for .json files. Every violation is listed and the
command exits non-zero if any file is invalid. With --watch the files are
checked again whenever they change, until interrupted.

Examples:
  designer validate survey.json
  designer validate notebooks/
  designer validate notebooks/ --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := utils.ExpandNotebookPaths(args)
			if err != nil {
				return err
			}
			if len(files) == 0 && !watchFiles {
				return fmt.Errorf("no notebook files found")
			}

			invalid, err := validateFiles(cmd, app, files)
			if err != nil {
				return err
			}
			if watchFiles {
				return watchAndValidate(cmd, app, args)
			}
			if invalid > 0 {
				return &reportedError{err: fmt.Errorf("%d of %d notebooks are invalid", invalid, len(files))}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watchFiles, "watch", "w", false, "validate again when files change")
	return cmd
}

// validateFiles reports each file and returns how many were invalid
func validateFiles(cmd *cobra.Command, app *App, files []string) (int, error) {
	var invalid int
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return invalid, fmt.Errorf("failed to read %s: %w", file, err)
		}

		err = schema.ValidateBytes(data)
		var verr *schema.ValidationError
		switch {
		case err == nil:
			ui.WriteSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s is a valid notebook", file), app.NoColor)
		case errors.As(err, &verr):
			invalid++
			fmt.Fprint(cmd.ErrOrStderr(), ui.InvalidNotebookError(file, verr.Messages, app.NoColor))
		default:
			invalid++
			fmt.Fprint(cmd.ErrOrStderr(), ui.InvalidNotebookError(file, []string{err.Error()}, app.NoColor))
		}
	}
	return invalid, nil
}

func watchAndValidate(cmd *cobra.Command, app *App, paths []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw, err := watch.NewFileWatcher(paths, watch.Options{Logger: app.Logger}, func(changed []string) error {
		_, err := validateFiles(cmd, app, changed)
		return err
	})
	if err != nil {
		return err
	}
	fw.Start()
	fmt.Fprintln(cmd.ErrOrStderr(), "Watching for changes, press Ctrl+C to stop")

	<-ctx.Done()
	return fw.Stop()
}

// NewMigrateCommand creates the migrate command
func NewMigrateCommand(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "migrate <notebook.json>",
		Short: "Upgrade a notebook to the current format",
		Long: `Migrate a notebook written by an older designer to the current format.

Examples:
  designer migrate old.json              # Print the migrated notebook
  designer migrate old.json -o new.json  # Write it to a file`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := readNotebook(args[0])
			if err != nil {
				return err
			}
			app.Logger.Debug("notebook migrated", zap.String("file", args[0]), zap.String("notebook", nb.Name()))
			return writeNotebook(cmd, app, nb, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the notebook to this file instead of stdout")
	return cmd
}

// NewApplyCommand creates the apply command
func NewApplyCommand(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "apply <notebook.json> <script.yml>",
		Short: "Run a script of edit operations against a notebook",
		Long: `Apply a list of designer operations to a notebook.

The script is a YAML or JSON list of steps, each naming an operation and its
payload:

  - type: fieldAdded
    payload: {fieldName: Site name, fieldType: TextField, viewSetId: FORM1, viewId: FORM1SECTION1}
  - type: sectionRenamed
    payload: {viewId: FORM1SECTION1, label: Location}

Nothing is written unless every step succeeds.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := readNotebook(args[0])
			if err != nil {
				return err
			}

			script, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[1], err)
			}
			ops, err := uispec.DecodeScript(script)
			if err != nil {
				return scriptError(app, err)
			}

			sessions := session.NewManager(nil, session.Options{
				HistoryDepth: app.Config.History.Depth,
				Logger:       app.Logger,
			})
			s := sessions.Create(nb)
			for i, op := range ops {
				if _, err := s.Apply(op); err != nil {
					step := fmt.Sprintf("step %d (%s)", i+1, op.Name())
					return &reportedError{err: err, report: ui.OperationError(step, err, app.NoColor)}
				}
			}

			app.Logger.Debug("script applied", zap.String("script", args[1]), zap.Int("steps", len(ops)))
			return writeNotebook(cmd, app, s.Notebook(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the notebook to this file instead of stdout")
	return cmd
}

func scriptError(app *App, err error) error {
	var stepErr *uispec.StepError
	if !errors.As(err, &stepErr) {
		return err
	}
	step := fmt.Sprintf("step %d", stepErr.Step)
	if errors.Is(stepErr.Err, uispec.ErrNotFound) {
		suggestions := ui.FindSimilar(stepErr.Type, uispec.OperationNames())
		return &reportedError{err: err, report: ui.UnknownOperationError(step, stepErr.Type, suggestions, app.NoColor)}
	}
	return &reportedError{err: err, report: ui.OperationError(step+" ("+stepErr.Type+")", stepErr.Err, app.NoColor)}
}

// NewConditionsCommand creates the conditions command
func NewConditionsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "conditions <notebook.json>",
		Short: "Show every visibility condition in plain language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := readNotebook(args[0])
			if err != nil {
				return err
			}

			translations := condition.TranslateAll(nb.UISpec)
			if len(translations) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No conditions defined")
				return nil
			}
			table := ui.NewTable(cmd.OutOrStdout(), app.NoColor, "KIND", "ID", "LABEL", "CONDITION")
			for _, t := range translations {
				table.AddRow(t.Kind, t.ID, t.Label, t.Text)
			}
			table.Render()
			return nil
		},
	}
}

// readNotebook loads a notebook file through the migration pipeline
func readNotebook(path string) (*notebook.Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	nb, err := migrate.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nb, nil
}

// writeNotebook prints nb, or writes it to output when set
func writeNotebook(cmd *cobra.Command, app *App, nb *notebook.Notebook, output string) error {
	data, err := json.MarshalIndent(nb, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode notebook: %w", err)
	}
	data = append(data, '\n')

	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	ui.WriteSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Wrote %s", output), app.NoColor)
	return nil
}
