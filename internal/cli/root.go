package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/services"
	"ismaalAdmin/internal/session"
)

// annotationPublic marks commands that run without a cached admin.
const annotationPublic = "public"

type LoginAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AdminUser, error)
}

// App holds everything the commands need. The current admin is loaded from
// Session before any non-public command runs.
type App struct {
	Session       *session.Session
	Auth          LoginAPI
	Submissions   *services.SubmissionService
	Products      *services.ProductService
	Professionals *services.ProfessionalService
	Businesses    *services.BusinessService
	Plans         *services.PlanService
	Users         *services.UserService

	admin *models.AdminUser
}

// NewRootCmd creates the top-level "adminctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "Moderate marketplace submissions from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if isPublic(cmd) {
				return nil
			}
			return app.loadAdmin(cmd.Context())
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newSubmissionsCmd(app),
		newProductsCmd(app),
		newProfessionalsCmd(app),
		newUsersCmd(app),
		newBusinessesCmd(app),
		newPlansCmd(app),
	)

	return root
}

func isPublic(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationPublic] == "true" {
			return true
		}
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

func (app *App) loadAdmin(ctx context.Context) error {
	user, err := app.Session.Load(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return fmt.Errorf("not logged in, run: adminctl login --email <email> --password <password>")
	}
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	app.admin = user
	return nil
}
