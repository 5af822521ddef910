package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ismaalAdmin/internal/cli/formatter"
	"ismaalAdmin/internal/models"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:         "login",
		Short:       "Log in as a marketplace admin",
		Annotations: map[string]string{annotationPublic: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Auth.Login(cmd.Context(), models.LoginRequest{Email: email, Password: password})
			if err != nil {
				return err
			}
			if err := app.Session.Save(cmd.Context(), user); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Logged in as %s (%s)", user.Name, user.Email)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email")
	cmd.Flags().StringVar(&password, "password", "", "Admin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "logout",
		Short:       "Forget the cached admin",
		Annotations: map[string]string{annotationPublic: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Logged out"))
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the cached admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderFields([][2]string{
				{"ID", app.admin.ID.String()},
				{"Name", string(app.admin.Name)},
				{"Email", string(app.admin.Email)},
				{"Role", string(app.admin.Role)},
			}))
			return nil
		},
	}
}
