package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/installmart/internal/catalog"
	"github.com/Veraticus/installmart/internal/cli"
	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/model"
	"github.com/Veraticus/installmart/internal/review"
)

func installmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "installments",
		Aliases: []string{"plans"},
		Short:   "Browse products sold on installments",
	}

	cmd.AddCommand(installmentsListCmd())
	cmd.AddCommand(installmentsShowCmd())

	return cmd
}

func installmentsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installment plans",
		Long: `List every installment plan on the marketplace.

Filters are applied locally after the full catalog is fetched.`,
		RunE: runInstallmentsList,
	}

	cmd.Flags().StringP("query", "q", "", "match product name, company or description")
	cmd.Flags().String("category", "", "only this category")
	cmd.Flags().String("city", "", "only this city")
	cmd.Flags().Float64("max-monthly", 0, "maximum monthly installment")

	return cmd
}

func runInstallmentsList(cmd *cobra.Command, _ []string) error {
	var f catalog.InstallmentFilter
	f.Query, _ = cmd.Flags().GetString("query")
	f.Category, _ = cmd.Flags().GetString("category")
	f.City, _ = cmd.Flags().GetString("city")
	f.MaxMonthly, _ = cmd.Flags().GetFloat64("max-monthly")

	return withEnv(cmd, func(ctx context.Context, e *env) error {
		stop := loading(cmd, "Loading installment plans")
		res := catalog.New(e.client, e.settings).Installments(ctx)
		stop()

		out := cmd.OutOrStdout()
		warnDegraded(out, "installment plans", res)

		plans := catalog.FilterInstallments(res.Items, f)
		if len(plans) == 0 {
			fmt.Fprintln(out, cli.InfoStyle.Render("No installment plans found."))
			return nil
		}

		fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Installment Plans (%d)", len(plans))))
		writeInstallmentTable(out, plans)
		return nil
	})
}

func writeInstallmentTable(out io.Writer, plans []model.Installment) {
	t := newTable(out, "ID", "Product", "Company", "City", "Monthly", "Months", "Total")
	for i := range plans {
		p := &plans[i]
		t.row(
			p.ID,
			truncate(p.ProductName, 32),
			orDash(p.Company),
			orDash(p.City),
			cli.FormatPrice(p.MonthlyPayment),
			durationLabel(p.Duration),
			cli.FormatPrice(p.TotalAmount),
		)
	}
	t.flush()
}

func durationLabel(months int) string {
	if months <= 0 {
		return "-"
	}
	return strconv.Itoa(months)
}

func installmentsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <plan-id>",
		Short: "Show one installment plan with its payment options and reviews",
		Args:  cobra.ExactArgs(1),
		RunE:  runInstallmentsShow,
	}
}

func runInstallmentsShow(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		stop := loading(cmd, "Loading plan")
		plan, err := catalog.New(e.client, e.settings).InstallmentByID(ctx, args[0])
		stop()
		if err != nil {
			return err
		}
		if plan == nil {
			return common.NewUserError(fmt.Sprintf("No installment plan with ID %q", args[0]), common.ErrNotFound)
		}

		out := cmd.OutOrStdout()
		writeInstallment(out, plan)

		reviews, err := review.New(e.client).List(ctx, plan.ID)
		if err != nil {
			fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Could not load reviews: %v", err)))
			return nil
		}
		writeReviewSummary(out, review.Summarize(reviews))
		return nil
	})
}

func writeInstallment(out io.Writer, p *model.Installment) {
	fmt.Fprintln(out, cli.FormatTitle(p.ProductName))
	field(out, "ID", p.ID)
	field(out, "Company", p.Company)
	field(out, "Category", p.Category)
	field(out, "City", p.City)
	field(out, "Status", p.Status)
	field(out, "Image", p.ImageURL)
	if p.Description != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, p.Description)
	}

	if len(p.Specifications) > 0 {
		keys := make([]string, 0, len(p.Specifications))
		for k := range p.Specifications {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		specs := make([]string, 0, len(keys))
		for _, k := range keys {
			specs = append(specs, fmt.Sprintf("%s: %v", k, p.Specifications[k]))
		}
		fmt.Fprintln(out)
		list(out, "Specifications", specs)
	}

	if len(p.PaymentPlans) > 0 {
		fmt.Fprintln(out)
		t := newTable(out, "Plan", "Down payment", "Monthly", "Months", "Total", "Rate")
		for _, pp := range p.PaymentPlans {
			t.row(
				orDash(pp.PlanName),
				cli.FormatPrice(pp.DownPayment),
				cli.FormatPrice(pp.MonthlyInstallment),
				durationLabel(pp.TenureMonths),
				cli.FormatPrice(pp.TotalAmount),
				fmt.Sprintf("%.1f%%", pp.InterestRate),
			)
		}
		t.flush()
	}
}
