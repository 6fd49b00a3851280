package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/installmart/internal/cli"
	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/dashboard"
	"github.com/Veraticus/installmart/internal/model"
)

func applicationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "applications",
		Aliases: []string{"dashboard"},
		Short:   "Show your applications and their status",
		Long: `Show every installment, property and loan application you have made,
newest first, with a summary by status. You must be logged in.`,
		Args: cobra.NoArgs,
		RunE: runApplications,
	}

	cmd.Flags().String("status", "", "only applications in this status (pending, approved, rejected, ...)")
	cmd.Flags().String("kind", "", "only this kind (installment, property, loan)")

	return cmd
}

func runApplications(cmd *cobra.Command, _ []string) error {
	statusFlag, _ := cmd.Flags().GetString("status")
	kindFlag, _ := cmd.Flags().GetString("kind")

	var kind model.ApplicationKind
	if kindFlag != "" {
		parsed, err := model.ParseApplicationKind(kindFlag)
		if err != nil {
			return common.NewUserError("Unknown application kind", err)
		}
		kind = parsed
	}

	return withEnv(cmd, func(ctx context.Context, e *env) error {
		stop := loading(cmd, "Loading your applications")
		dash, err := dashboard.New(e.client).Load(ctx)
		stop()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, k := range model.ApplicationKinds {
			if loadErr := dash.Errors[k]; loadErr != nil {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Could not load %s applications: %v", k, loadErr)))
			}
		}

		records := dash.Records
		if statusFlag != "" {
			records = dashboard.FilterByStatus(records, model.ParseStatus(statusFlag))
		}
		if kind != "" {
			records = filterByKind(records, kind)
		}

		fmt.Fprintln(out, cli.FormatTitleWithIcon(cli.ApplicationIcon, "My Applications"))
		writeStats(out, dash.Stats)
		fmt.Fprintln(out)

		if len(records) == 0 {
			fmt.Fprintln(out, cli.InfoStyle.Render("No applications found."))
			return nil
		}
		writeApplicationTable(out, records)
		return nil
	})
}

func filterByKind(records []model.ApplicationRecord, kind model.ApplicationKind) []model.ApplicationRecord {
	out := make([]model.ApplicationRecord, 0, len(records))
	for _, rec := range records {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out
}

func writeStats(out io.Writer, stats dashboard.Stats) {
	statuses := make([]string, 0, len(stats.ByStatus))
	for status, n := range stats.ByStatus {
		statuses = append(statuses, fmt.Sprintf("%s %d", status, n))
	}
	sort.Strings(statuses)

	field(out, "Total", fmt.Sprintf("%d (%d active)", stats.Total, stats.Active))
	field(out, "By status", strings.Join(statuses, ", "))
}

func writeApplicationTable(out io.Writer, records []model.ApplicationRecord) {
	t := newTable(out, "ID", "Kind", "For", "Status", "Submitted")
	for _, rec := range records {
		t.row(
			rec.ID,
			string(rec.Kind),
			truncate(orDash(firstNonEmpty(rec.ReferenceTitle, rec.ReferenceID)), 32),
			cli.FormatStatus(rec.Status, rec.RawStatus),
			submittedLabel(rec),
		)
	}
	t.flush()
}

func submittedLabel(rec model.ApplicationRecord) string {
	if rec.CreatedAt.IsZero() {
		return "-"
	}
	return rec.CreatedAt.Local().Format("2006-01-02")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
