package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldmark/designer/internal/web/auth"
)

// NewTokenCommand creates the token command
func NewTokenCommand(app *App) *cobra.Command {
	var roles []string

	cmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "Issue an API token signed with auth.secret",
		Long: `Issue a bearer token for the designer HTTP API.

Roles:
  admin     open and close sessions, edit and read notebooks
  designer  edit and read notebooks
  viewer    read notebooks`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if cfg.Auth.Secret == "" {
				return fmt.Errorf("auth.secret is not configured")
			}
			for _, role := range roles {
				if auth.GetRoleByName(role) == nil {
					return fmt.Errorf("unknown role %q (expected admin, designer or viewer)", role)
				}
			}

			token, err := auth.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL).Issue(args[0], roles)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "roles: %s, expires in %s\n", strings.Join(roles, ","), cfg.Auth.TokenTTL)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&roles, "role", "r", []string{"designer"}, "role granted by the token (repeatable)")
	return cmd
}
