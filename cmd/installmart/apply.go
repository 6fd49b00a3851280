package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/installmart/internal/application"
	"github.com/Veraticus/installmart/internal/cli"
	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/model"
)

const applyExample = `  # installment.yaml
  planId: PLAN-1042
  fullName: Ayesha Khan
  cnic: "35202-1234567-1"
  phone: "03001234567"
  city: Lahore
  selectedPlan: 12 months

  installmart apply installment --file installment.yaml --document salary-slip.pdf`

func applyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Submit an application",
		Long: `Submit an installment, property or loan application described in a YAML
(or JSON) file. Unknown keys are rejected. You must be logged in.

A receipt of every accepted application is kept locally, see
'installmart receipts'.`,
		Example: applyExample,
	}

	cmd.AddCommand(applySubCmd(model.KindInstallmentApplication, "Apply for an installment plan"))
	cmd.AddCommand(applySubCmd(model.KindPropertyApplication, "Apply for a property"))
	cmd.AddCommand(applySubCmd(model.KindLoanApplication, "Apply for a bank loan"))

	return cmd
}

func applySubCmd(kind model.ApplicationKind, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(kind),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, _ := cmd.Flags().GetString("file")
			document, _ := cmd.Flags().GetString("document")
			return runApply(cmd, kind, file, document)
		},
	}

	cmd.Flags().StringP("file", "f", "", "application file (required)")
	cmd.Flags().String("document", "", "supporting document to upload after submitting")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runApply(cmd *cobra.Command, kind model.ApplicationKind, file, document string) error {
	submit, err := loadApplication(kind, file)
	if err != nil {
		return common.NewUserError("Application file is not valid", err)
	}

	return withEnv(cmd, func(ctx context.Context, e *env) error {
		svc := application.New(e.client, e.store)

		stop := loading(cmd, "Submitting application")
		result, err := submit(ctx, svc)
		stop()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		writeSubmitResult(out, result, "Application submitted")

		if document == "" {
			return nil
		}
		appID := application.ApplicationID(result)
		if appID == "" {
			fmt.Fprintln(out, cli.FormatWarning("The server did not return an application ID, the document was not uploaded."))
			return nil
		}
		return uploadDocument(ctx, cmd, svc, appID, document)
	})
}

type submitFunc func(ctx context.Context, svc *application.Service) (*model.SubmitResult, error)

// loadApplication reads and validates the file for kind and returns the
// matching submit call.
func loadApplication(kind model.ApplicationKind, path string) (submitFunc, error) {
	switch kind {
	case model.KindInstallmentApplication:
		app, err := application.LoadFile[model.InstallmentApplication](path)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, svc *application.Service) (*model.SubmitResult, error) {
			return svc.ApplyInstallment(ctx, app)
		}, nil
	case model.KindPropertyApplication:
		app, err := application.LoadFile[model.PropertyApplication](path)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, svc *application.Service) (*model.SubmitResult, error) {
			return svc.ApplyProperty(ctx, app)
		}, nil
	case model.KindLoanApplication:
		app, err := application.LoadFile[model.LoanApplication](path)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, svc *application.Service) (*model.SubmitResult, error) {
			return svc.ApplyLoan(ctx, app)
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown application kind %q", common.ErrInvalidPayload, kind)
	}
}

func uploadDocument(ctx context.Context, cmd *cobra.Command, svc *application.Service, appID, path string) error {
	f, err := os.Open(path) //nolint:gosec // path is supplied by the user on the command line
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	stop := loading(cmd, "Uploading "+filepath.Base(path))
	result, err := svc.UploadDocument(ctx, appID, filepath.Base(path), f)
	stop()
	if err != nil {
		return err
	}
	writeSubmitResult(cmd.OutOrStdout(), result, "Document uploaded")
	return nil
}

// writeSubmitResult prints the server's message, or fallback when it sent none.
func writeSubmitResult(out io.Writer, result *model.SubmitResult, fallback string) {
	msg := result.Message
	if msg == "" {
		msg = fallback
	}
	fmt.Fprintln(out, cli.FormatSuccess(msg))
	if id := application.ApplicationID(result); id != "" {
		field(out, "Application ID", id)
	}
}
