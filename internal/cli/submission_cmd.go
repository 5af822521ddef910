package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ismaalAdmin/internal/cli/formatter"
	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/services"
)

func newSubmissionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "submissions",
		Aliases: []string{"subs"},
		Short:   "List and moderate pending submissions",
	}

	cmd.AddCommand(
		newSubmissionsListCmd(app),
		newSubmissionsShowCmd(app),
		newSubmissionDecisionCmd(app, "approve", "Approve a submission"),
		newSubmissionDecisionCmd(app, "reject", "Reject a submission"),
		newSubmissionsDeleteCmd(app),
	)

	return cmd
}

func newSubmissionsListCmd(app *App) *cobra.Command {
	var (
		filter        string
		page, perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submissions of every type, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			// filter and page size changes go back to page one, so the
			// page is applied in a second step
			res, err := app.Submissions.List(cmd.Context(), app.admin.ID, services.SubmissionQuery{
				Filter:  filter,
				PerPage: perPage,
			})
			if err != nil {
				return err
			}
			if page > 1 {
				if res, err = app.Submissions.List(cmd.Context(), app.admin.ID, services.SubmissionQuery{Page: page}); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubmissions(res.Page, res.Filter, res.Counts))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "all, pending, approved or rejected")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 10, "Rows per page (5, 10, 20 or 50)")

	return cmd
}

func newSubmissionsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <type> <id>",
		Short: "Show one submission",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := models.ParseSubmissionKey(args[0], args[1])
			if err != nil {
				return err
			}
			sub, err := app.Submissions.Get(cmd.Context(), app.admin.ID, key)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubmission(sub))
			return nil
		},
	}
}

func newSubmissionDecisionCmd(app *App, action, short string) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   action + " <type> <id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := models.ParseSubmissionKey(args[0], args[1])
			if err != nil {
				return err
			}

			decide := app.Submissions.Approve
			if action == "reject" {
				decide = app.Submissions.Reject
			}
			sub, err := decide(cmd.Context(), app.admin.ID, key, notes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("%s %q is now %s", sub.Label, sub.Name, formatter.Status(sub.Status))))
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Admin notes (sent with plan requests)")

	return cmd
}

func newSubmissionsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <type> <id>",
		Short: "Delete a submission from the marketplace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := models.ParseSubmissionKey(args[0], args[1])
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd, fmt.Sprintf("Delete %s %s?", key.Type.Label(), key.ID)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			if err := app.Submissions.Delete(cmd.Context(), app.admin.ID, key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted %s %s", key.Type.Label(), key.ID)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
