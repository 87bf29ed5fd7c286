package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldmark/designer/internal/cli/ui"
	"github.com/fieldmark/designer/internal/fields"
	"github.com/fieldmark/designer/internal/uispec"
)

// NewFieldsCommand creates the fields command
func NewFieldsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the field types that can be added to a notebook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := fields.NewRegistry()
			table := ui.NewTable(cmd.OutOrStdout(), app.NoColor, "NAME", "COMPONENT", "RETURNS")
			for _, name := range reg.Names() {
				t, _ := reg.Get(name)
				component := t.Prototype.ComponentNamespace + "::" + t.Prototype.ComponentName
				table.AddRow(name, component, t.Prototype.TypeReturned)
			}
			table.Render()
			return nil
		},
	}
}

// NewOperationsCommand creates the operations command
func NewOperationsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the edit operations accepted by apply and the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range uispec.OperationNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
