package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ismaalAdmin/internal/cli/formatter"
	"ismaalAdmin/internal/moderation"
	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/services"
)

// entityOps is the list/show/delete surface shared by the entity tables.
type entityOps[T any] struct {
	list   func(context.Context, services.EntityQuery) (moderation.Page[T], error)
	get    func(context.Context, models.EntityID) (T, error)
	remove func(context.Context, models.EntityID) error
	table  func(moderation.Page[T]) string
	detail func(T) string
}

func newEntityCmd[T any](use, noun string, ops entityOps[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Browse and delete %s", use),
	}

	var (
		q             string
		page, perPage int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", use),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := ops.list(cmd.Context(), services.EntityQuery{Q: q, Page: page, PerPage: perPage})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ops.table(res))
			return nil
		},
	}
	list.Flags().StringVarP(&q, "search", "q", "", "Case-insensitive search")
	list.Flags().IntVar(&page, "page", 1, "Page number")
	list.Flags().IntVar(&perPage, "per-page", moderation.DefaultPerPage, "Rows per page (5, 10, 20 or 50)")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: fmt.Sprintf("Show one %s", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := ops.get(cmd.Context(), models.EntityID(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ops.detail(item))
			return nil
		},
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete a %s", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := models.EntityID(args[0])
			if !yes && !confirm(cmd, fmt.Sprintf("Delete %s %s?", noun, id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			if err := ops.remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted %s %s", noun, id)))
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	cmd.AddCommand(list, show, del)
	return cmd
}

func newProductsCmd(app *App) *cobra.Command {
	return newEntityCmd("products", "product", entityOps[models.Product]{
		list:   func(ctx context.Context, q services.EntityQuery) (moderation.Page[models.Product], error) { return app.Products.List(ctx, q) },
		get:    func(ctx context.Context, id models.EntityID) (models.Product, error) { return app.Products.Get(ctx, id) },
		remove: func(ctx context.Context, id models.EntityID) error { return app.Products.Delete(ctx, id) },
		table:  formatter.FormatProducts,
		detail: func(p models.Product) string {
			return formatter.FormatRecord(string(p.Name), [][2]string{
				{"ID", p.ID.String()},
				{"Category", string(p.Category)},
				{"Location", string(p.Location)},
				{"Price", p.Price.String()},
				{"Status", formatter.Status(string(p.Status))},
				{"Created", string(p.CreatedAt)},
				{"Description", string(p.Description)},
			})
		},
	})
}

func newProfessionalsCmd(app *App) *cobra.Command {
	return newEntityCmd("professionals", "professional", entityOps[models.Professional]{
		list: func(ctx context.Context, q services.EntityQuery) (moderation.Page[models.Professional], error) {
			return app.Professionals.List(ctx, q)
		},
		get:    func(ctx context.Context, id models.EntityID) (models.Professional, error) { return app.Professionals.Get(ctx, id) },
		remove: func(ctx context.Context, id models.EntityID) error { return app.Professionals.Delete(ctx, id) },
		table:  formatter.FormatProfessionals,
		detail: func(p models.Professional) string {
			return formatter.FormatRecord(string(p.Name), [][2]string{
				{"ID", p.ID.String()},
				{"Email", string(p.Email)},
				{"Phone", string(p.Phone)},
				{"Profession", string(p.Profession)},
				{"Specialty", string(p.Specialty)},
				{"Experience", string(p.Experience)},
				{"Location", string(p.Location)},
				{"Status", formatter.Status(string(p.Status))},
			})
		},
	})
}

func newUsersCmd(app *App) *cobra.Command {
	return newEntityCmd("users", "user", entityOps[models.User]{
		list:   func(ctx context.Context, q services.EntityQuery) (moderation.Page[models.User], error) { return app.Users.List(ctx, q) },
		get:    func(ctx context.Context, id models.EntityID) (models.User, error) { return app.Users.Get(ctx, id) },
		remove: func(ctx context.Context, id models.EntityID) error { return app.Users.Delete(ctx, id) },
		table:  formatter.FormatUsers,
		detail: func(u models.User) string {
			return formatter.FormatRecord(string(u.Name), [][2]string{
				{"ID", u.ID.String()},
				{"Email", string(u.Email)},
				{"Phone", string(u.Phone)},
				{"Role", string(u.Role)},
				{"Plan", string(u.Plan)},
				{"Businesses", strconv.Itoa(int(u.Businesses))},
				{"Products", strconv.Itoa(int(u.Products))},
				{"Joined", string(u.CreatedAt)},
			})
		},
	})
}

func newBusinessesCmd(app *App) *cobra.Command {
	return newEntityCmd("businesses", "business", entityOps[models.Business]{
		list:   func(ctx context.Context, q services.EntityQuery) (moderation.Page[models.Business], error) { return app.Businesses.List(ctx, q) },
		get:    func(ctx context.Context, id models.EntityID) (models.Business, error) { return app.Businesses.Get(ctx, id) },
		remove: func(ctx context.Context, id models.EntityID) error { return app.Businesses.Delete(ctx, id) },
		table:  formatter.FormatBusinesses,
		detail: func(b models.Business) string {
			return formatter.FormatRecord(string(b.Name), [][2]string{
				{"ID", b.ID.String()},
				{"Category", string(b.Category)},
				{"Email", string(b.Email)},
				{"Phone", string(b.Phone)},
				{"Location", string(b.Location)},
				{"Status", formatter.Status(string(b.Status))},
				{"Description", string(b.Description)},
			})
		},
	})
}
