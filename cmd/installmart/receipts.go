package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/installmart/internal/cli"
)

func receiptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipts",
		Short: "List applications submitted from this machine",
		Long: `List the local receipts of applications submitted with 'installmart apply'.

Receipts are kept in the local database and survive logging out. The
server-side status of each application is shown by 'installmart applications'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				receipts, err := e.store.ListReceipts(ctx, limit)
				if err != nil {
					return fmt.Errorf("failed to list receipts: %w", err)
				}

				out := cmd.OutOrStdout()
				if len(receipts) == 0 {
					fmt.Fprintln(out, cli.InfoStyle.Render("No receipts yet. Use 'installmart apply' to submit an application."))
					return nil
				}

				fmt.Fprintln(out, cli.FormatTitleWithIcon(cli.ApplicationIcon, "Submitted Applications"))
				t := newTable(out, "Submitted", "Kind", "For", "Application", "Message")
				for _, r := range receipts {
					t.row(
						r.SubmittedAt.Local().Format("2006-01-02 15:04"),
						string(r.Kind),
						r.ReferenceID,
						orDash(r.ApplicationID),
						truncate(orDash(r.Message), 40),
					)
				}
				t.flush()
				return nil
			})
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "number of receipts to show")
	return cmd
}
