package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldmark/designer/internal/cli/ui"
	"github.com/fieldmark/designer/internal/templates"
)

type newOptions struct {
	template        string
	projectLead     string
	leadInstitution string
	force           bool
}

// NewNewCommand creates the new command
func NewNewCommand(app *App) *cobra.Command {
	opts := &newOptions{}

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create an empty notebook",
		Long: `Create a notebook with one form holding one empty section.

The file is written to the configured output directory and named after the
notebook. When no name is given you are prompted for one and for the
template to start from.

Templates:
  blank            one form with one empty section (default)
  site-survey      site records with an id, name, location, photos and notes
  observation-log  timed observations with counts, plus a specimen form

Examples:
  designer new "Site Survey"
  designer new "Site Survey" --template site-survey
  designer new "Site Survey" --project-lead "R. Ortiz" --lead-institution "Field Lab"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			} else {
				prompt := &survey.Input{
					Message: "Notebook name:",
				}
				if err := survey.AskOne(prompt, &name, survey.WithValidator(survey.Required)); err != nil {
					return fmt.Errorf("failed to get notebook name: %w", err)
				}
				if !cmd.Flags().Changed("template") {
					selectPrompt := &survey.Select{
						Message: "Start from template:",
						Options: templates.DefaultRegistry().Names(),
						Default: opts.template,
					}
					if err := survey.AskOne(selectPrompt, &opts.template); err != nil {
						return fmt.Errorf("failed to get template: %w", err)
					}
				}
			}
			return runNew(cmd, app, name, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "blank", "template to start from")
	cmd.Flags().StringVar(&opts.projectLead, "project-lead", "", "person leading the project")
	cmd.Flags().StringVar(&opts.leadInstitution, "lead-institution", "", "institution running the project")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func runNew(cmd *cobra.Command, app *App, name string, opts *newOptions) error {
	tmpl, err := templates.DefaultRegistry().Get(opts.template)
	if err != nil {
		suggestions := ui.FindSimilar(opts.template, templates.DefaultRegistry().Names())
		if len(suggestions) > 0 {
			return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(suggestions, ", "))
		}
		return err
	}
	nb, err := tmpl.Build(nil, name)
	if err != nil {
		return err
	}
	for key, value := range map[string]string{
		"project_lead":     opts.projectLead,
		"lead_institution": opts.leadInstitution,
	} {
		if value == "" {
			continue
		}
		meta, err := nb.Metadata.SetProperty(key, value)
		if err != nil {
			return err
		}
		nb.Metadata = meta
	}

	path := filepath.Join(app.Config.Output.Dir, nb.ExportFileName())
	if _, err := os.Stat(path); err == nil && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := writeNotebook(cmd, app, nb, path); err != nil {
		return err
	}
	app.Logger.Debug("notebook created",
		zap.String("path", path),
		zap.String("template", tmpl.Name),
		zap.Any("project_id", nb.Metadata["project_id"]))
	return nil
}
