package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ismaalAdmin/internal/cli/formatter"
	"ismaalAdmin/internal/moderation"
	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/services"
)

func newPlansCmd(app *App) *cobra.Command {
	cmd := newEntityCmd("plans", "plan", entityOps[models.Plan]{
		list:   func(ctx context.Context, q services.EntityQuery) (moderation.Page[models.Plan], error) { return app.Plans.List(ctx, q) },
		get:    func(ctx context.Context, id models.EntityID) (models.Plan, error) { return app.Plans.Get(ctx, id) },
		remove: func(ctx context.Context, id models.EntityID) error { return app.Plans.Delete(ctx, id) },
		table:  formatter.FormatPlans,
		detail: formatPlan,
	})
	cmd.Short = "Browse, edit and delete subscription plans"
	cmd.AddCommand(newPlanUpdateCmd(app))
	return cmd
}

func formatPlan(p models.Plan) string {
	return formatter.FormatRecord(string(p.Name), [][2]string{
		{"ID", p.ID.String()},
		{"Description", string(p.Description)},
		{"Price", p.Price.String()},
		{"Monthly", p.PriceMonthly.String()},
		{"Yearly", p.PriceYearly.String()},
		{"Businesses", strconv.Itoa(int(p.AllowedBusinesses))},
		{"Products", strconv.Itoa(int(p.AllowedProducts))},
		{"Profile", string(p.ProfileStatus)},
		{"Users", strconv.Itoa(int(p.Users))},
	})
}

// planForm prefills the edit form from the stored plan, the way the
// dashboard modal opens.
func planForm(p models.Plan) models.PlanUpdate {
	return models.PlanUpdate{
		Name:              p.Name,
		Description:       p.Description,
		Price:             models.Text(p.Price.String()),
		AllowedBusinesses: models.Text(strconv.Itoa(int(p.AllowedBusinesses))),
		AllowedProducts:   models.Text(strconv.Itoa(int(p.AllowedProducts))),
		ProfileStatus:     p.ProfileStatus,
	}
}

func newPlanUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a plan; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := models.EntityID(args[0])
			current, err := app.Plans.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			form := planForm(current)
			cmd.Flags().Visit(func(f *pflag.Flag) {
				v := models.Text(f.Value.String())
				switch f.Name {
				case "name":
					form.Name = v
				case "description":
					form.Description = v
				case "price":
					form.Price = v
				case "allowed-businesses":
					form.AllowedBusinesses = v
				case "allowed-products":
					form.AllowedProducts = v
				case "profile-status":
					form.ProfileStatus = v
				}
			})

			updated, err := app.Plans.Update(cmd.Context(), id, form)
			if err != nil {
				return err
			}
			if updated.ID.IsZero() {
				updated, err = app.Plans.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Updated plan %s", id)))
			fmt.Fprint(cmd.OutOrStdout(), formatPlan(updated))
			return nil
		},
	}

	cmd.Flags().String("name", "", "Plan name")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("price", "", "Price (0 or greater)")
	cmd.Flags().String("allowed-businesses", "", "Allowed businesses (0 or greater)")
	cmd.Flags().String("allowed-products", "", "Allowed products (0 or greater)")
	cmd.Flags().String("profile-status", "", "Profile status")

	return cmd
}
