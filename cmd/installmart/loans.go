package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/installmart/internal/catalog"
	"github.com/Veraticus/installmart/internal/cli"
	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/loan"
	"github.com/Veraticus/installmart/internal/model"
)

func loansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loans",
		Short: "Browse bank financing plans and estimate repayments",
	}

	cmd.AddCommand(loansListCmd())
	cmd.AddCommand(loansShowCmd())
	cmd.AddCommand(loansCalcCmd())

	return cmd
}

func loansListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List loan plans",
		Long: `List every bank financing plan.

With --amount or --months only plans whose limits allow that loan are shown.`,
		RunE: runLoansList,
	}

	cmd.Flags().String("financing", "", "financing type (conventional, islamic)")
	cmd.Flags().Float64("amount", 0, "loan amount the plan must allow")
	cmd.Flags().Int("months", 0, "tenure in months the plan must allow")

	return cmd
}

func runLoansList(cmd *cobra.Command, _ []string) error {
	var f catalog.LoanFilter
	f.Amount, _ = cmd.Flags().GetFloat64("amount")
	f.TenureMonths, _ = cmd.Flags().GetInt("months")

	financing, _ := cmd.Flags().GetString("financing")
	parsed, err := parseFinancingType(financing)
	if err != nil {
		return err
	}
	f.FinancingType = parsed

	return withEnv(cmd, func(ctx context.Context, e *env) error {
		stop := loading(cmd, "Loading loan plans")
		res := catalog.New(e.client, e.settings).Loans(ctx)
		stop()

		out := cmd.OutOrStdout()
		warnDegraded(out, "loan plans", res)

		plans := catalog.FilterLoans(res.Items, f)
		if len(plans) == 0 {
			fmt.Fprintln(out, cli.InfoStyle.Render("No loan plans found."))
			return nil
		}

		fmt.Fprintln(out, cli.FormatTitleWithIcon(cli.BankIcon, fmt.Sprintf("Loan Plans (%d)", len(plans))))
		t := newTable(out, "ID", "Bank", "Plan", "Type", "Rate", "Amount", "Tenure")
		for i := range plans {
			p := &plans[i]
			t.row(
				p.ID,
				orDash(p.BankName),
				truncate(p.PlanName, 28),
				string(p.FinancingType),
				fmt.Sprintf("%.2f%%", p.InterestRate),
				amountRange(p.MinAmount, p.MaxAmount),
				tenureRange(p.MinTenureMonths, p.MaxTenureMonths),
			)
		}
		t.flush()
		return nil
	})
}

func parseFinancingType(s string) (model.FinancingType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "conventional":
		return model.FinancingConventional, nil
	case "islamic", "shariah":
		return model.FinancingIslamic, nil
	default:
		return "", common.NewUserError(
			fmt.Sprintf("Unknown financing type %q, expected conventional or islamic", s),
			common.ErrInvalidPayload)
	}
}

func amountRange(minAmount, maxAmount float64) string {
	switch {
	case minAmount == 0 && maxAmount == 0:
		return "-"
	case maxAmount == 0:
		return "from " + cli.Money(minAmount)
	default:
		return cli.Money(minAmount) + " – " + cli.Money(maxAmount)
	}
}

func tenureRange(minMonths, maxMonths int) string {
	switch {
	case minMonths == 0 && maxMonths == 0:
		return "-"
	case maxMonths == 0:
		return fmt.Sprintf("%d+ mo", minMonths)
	default:
		return fmt.Sprintf("%d–%d mo", minMonths, maxMonths)
	}
}

func loansShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <loan-id>",
		Short: "Show one loan plan with its eligibility rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				plan, err := lookupLoan(ctx, cmd, e, args[0])
				if err != nil {
					return err
				}
				writeLoan(cmd.OutOrStdout(), plan)
				return nil
			})
		},
	}
}

func lookupLoan(ctx context.Context, cmd *cobra.Command, e *env, id string) (*model.LoanPlan, error) {
	stop := loading(cmd, "Loading loan plan")
	plan, err := catalog.New(e.client, e.settings).LoanByID(ctx, id)
	stop()
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, common.NewUserError(fmt.Sprintf("No loan plan with ID %q", id), common.ErrNotFound)
	}
	return plan, nil
}

func writeLoan(out io.Writer, p *model.LoanPlan) {
	fmt.Fprintln(out, cli.FormatTitleWithIcon(cli.BankIcon, strings.TrimSpace(p.BankName+" "+p.PlanName)))
	field(out, "ID", p.ID)
	field(out, "Financing", string(p.FinancingType))
	field(out, "Rate", fmt.Sprintf("%.2f%% per year", p.InterestRate))
	field(out, "Amount", amountRange(p.MinAmount, p.MaxAmount))
	field(out, "Tenure", tenureRange(p.MinTenureMonths, p.MaxTenureMonths))
	if p.ProcessingFee > 0 {
		field(out, "Processing fee", cli.FormatPrice(p.ProcessingFee))
	}
	if p.Description != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, p.Description)
	}
	fmt.Fprintln(out)
	list(out, "Features", p.Features)

	e := p.Eligibility
	var rules []string
	if e.MinAge > 0 || e.MaxAge > 0 {
		rules = append(rules, fmt.Sprintf("Age %d to %d", e.MinAge, e.MaxAge))
	}
	if e.MinIncome > 0 {
		rules = append(rules, "Monthly income at least "+cli.Money(e.MinIncome))
	}
	if len(e.EmploymentTypes) > 0 {
		rules = append(rules, "Employment: "+strings.Join(e.EmploymentTypes, ", "))
	}
	list(out, "Eligibility", rules)
}

func loansCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Estimate the monthly installment of a loan",
		Long: `Estimate the equated monthly installment of a loan.

Give the rate directly with --rate, or take it from a plan with --plan. With
--plan the amount and tenure are also checked against the plan's limits, and
--age, --income and --employment against its eligibility rules.`,
		RunE: runLoansCalc,
	}

	cmd.Flags().Float64("amount", 0, "loan amount (required)")
	cmd.Flags().Int("months", 0, "tenure in months (required)")
	cmd.Flags().Float64("rate", 0, "annual interest rate in percent")
	cmd.Flags().String("plan", "", "take the rate and limits from this loan plan")
	cmd.Flags().Bool("schedule", false, "print the month by month schedule")
	cmd.Flags().Int("age", 0, "applicant age")
	cmd.Flags().Float64("income", 0, "applicant monthly income")
	cmd.Flags().String("employment", "", "applicant employment type")

	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("months")

	return cmd
}

// calcRequest carries the flags of loans calc.
type calcRequest struct {
	applicant loan.Applicant
	planID    string
	amount    float64
	rate      float64
	months    int
	schedule  bool
}

func runLoansCalc(cmd *cobra.Command, _ []string) error {
	var req calcRequest
	req.amount, _ = cmd.Flags().GetFloat64("amount")
	req.months, _ = cmd.Flags().GetInt("months")
	req.rate, _ = cmd.Flags().GetFloat64("rate")
	req.planID, _ = cmd.Flags().GetString("plan")
	req.schedule, _ = cmd.Flags().GetBool("schedule")
	req.applicant.Age, _ = cmd.Flags().GetInt("age")
	req.applicant.MonthlyIncome, _ = cmd.Flags().GetFloat64("income")
	req.applicant.EmploymentType, _ = cmd.Flags().GetString("employment")

	out := cmd.OutOrStdout()
	if req.planID == "" {
		return writeCalc(out, req, nil)
	}

	return withEnv(cmd, func(ctx context.Context, e *env) error {
		plan, err := lookupLoan(ctx, cmd, e, req.planID)
		if err != nil {
			return err
		}
		req.rate = plan.InterestRate
		return writeCalc(out, req, plan)
	})
}

// writeCalc prints the estimate. When plan is set its limits and
// eligibility rules are reported too; failing them is not an error.
func writeCalc(out io.Writer, req calcRequest, plan *model.LoanPlan) error {
	sched, err := loan.NewSchedule(decimal.NewFromFloat(req.amount), decimal.NewFromFloat(req.rate), req.months)
	if err != nil {
		return common.NewUserError("Cannot calculate this loan", err)
	}

	fmt.Fprintln(out, cli.FormatTitleWithIcon(cli.BankIcon, "Loan Estimate"))
	field(out, "Amount", cli.Money(req.amount))
	field(out, "Rate", fmt.Sprintf("%.2f%% per year", req.rate))
	field(out, "Tenure", fmt.Sprintf("%d months", req.months))
	field(out, "Monthly installment", cli.FormatPrice(sched.MonthlyPayment.InexactFloat64()))
	field(out, "Total payment", cli.Money(sched.TotalPayment.InexactFloat64()))
	field(out, "Total interest", cli.Money(sched.TotalInterest.InexactFloat64()))

	if plan != nil {
		fmt.Fprintln(out)
		within := true
		for _, check := range []error{
			loan.CheckEligibility(plan, req.amount, req.months),
			loan.CheckApplicant(plan.Eligibility, req.applicant),
		} {
			if check != nil {
				within = false
				fmt.Fprintln(out, cli.FormatWarning(check.Error()))
			}
		}
		if within {
			fmt.Fprintln(out, cli.FormatSuccess("Within the limits of "+strings.TrimSpace(plan.BankName+" "+plan.PlanName)))
		}
	}

	if req.schedule {
		fmt.Fprintln(out)
		t := newTable(out, "Month", "Payment", "Principal", "Interest", "Balance")
		for _, r := range sched.Rows {
			t.row(
				fmt.Sprintf("%d", r.Month),
				r.Payment.StringFixed(2),
				r.Principal.StringFixed(2),
				r.Interest.StringFixed(2),
				r.Balance.StringFixed(2),
			)
		}
		t.flush()
	}
	return nil
}
