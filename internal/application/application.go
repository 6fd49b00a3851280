// Package application submits installment, property and loan applications.
package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/installmart/internal/api"
	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/model"
	"github.com/Veraticus/installmart/internal/normalize"
	"github.com/Veraticus/installmart/internal/service"
)

// Submission endpoints.
const (
	PathApplyInstallment = "/applyInstallment"
	PathApplyProperty    = "/applyProperty"
	PathApplyLoan        = "/applyLoan"
	PathUploadDocument   = "/uploadDocument"
)

// Transport is the subset of *api.Client the service needs.
type Transport interface {
	Post(ctx context.Context, path string, body any, opts ...api.RequestOption) (*api.Response, error)
	PostMultipart(ctx context.Context, path string, fields map[string]string, files []api.File, opts ...api.RequestOption) (*api.Response, error)
}

// Service submits applications. Payload validation is left to the backend;
// its messages are returned verbatim.
type Service struct {
	client   Transport
	receipts service.ReceiptStore
	now      func() time.Time
}

// New creates a Service. A nil receipts store disables local receipts.
func New(client Transport, receipts service.ReceiptStore) *Service {
	return &Service{client: client, receipts: receipts, now: time.Now}
}

// ApplyInstallment submits an installment application.
func (s *Service) ApplyInstallment(ctx context.Context, app *model.InstallmentApplication) (*model.SubmitResult, error) {
	return s.submit(ctx, model.KindInstallmentApplication, PathApplyInstallment, app.PlanID, app)
}

// ApplyProperty submits a property enquiry.
func (s *Service) ApplyProperty(ctx context.Context, app *model.PropertyApplication) (*model.SubmitResult, error) {
	return s.submit(ctx, model.KindPropertyApplication, PathApplyProperty, app.PropertyID, app)
}

// ApplyLoan submits a loan application.
func (s *Service) ApplyLoan(ctx context.Context, app *model.LoanApplication) (*model.SubmitResult, error) {
	return s.submit(ctx, model.KindLoanApplication, PathApplyLoan, app.LoanID, app)
}

func (s *Service) submit(ctx context.Context, kind model.ApplicationKind, path, referenceID string, payload any) (*model.SubmitResult, error) {
	resp, err := s.client.Post(ctx, path, payload)
	result, err := api.Outcome(resp, err, fmt.Sprintf("Failed to submit %s application", kind))
	if err != nil {
		slog.Debug("Application rejected", "kind", kind, "error", err)
		return nil, err
	}

	slog.Info("Application submitted", "kind", kind, "reference", referenceID)
	s.recordReceipt(ctx, kind, referenceID, result)
	return result, nil
}

func (s *Service) recordReceipt(ctx context.Context, kind model.ApplicationKind, referenceID string, result *model.SubmitResult) {
	if s.receipts == nil {
		return
	}
	receipt := &model.Receipt{
		ApplicationID: ApplicationID(result),
		Kind:          kind,
		ReferenceID:   referenceID,
		Message:       result.Message,
		SubmittedAt:   s.now(),
	}
	// The submission already succeeded remotely; a local write failure must not undo that.
	if err := s.receipts.SaveReceipt(ctx, receipt); err != nil {
		slog.Warn("Failed to save receipt", "kind", kind, "error", err)
	}
}

// ApplicationID extracts the created application's identifier from a
// submission result, or "" when the backend did not return one.
func ApplicationID(result *model.SubmitResult) string {
	if result == nil {
		return ""
	}
	data := normalize.Object(result.Data)
	if data == nil {
		return ""
	}
	if id := normalize.String(data, "_id", "id", "applicationId"); id != "" {
		return id
	}
	if nested := normalize.Object(data["application"]); nested != nil {
		return normalize.String(nested, "_id", "id")
	}
	return ""
}

// UploadDocument attaches a file to an existing application.
func (s *Service) UploadDocument(ctx context.Context, applicationID, filename string, content io.Reader) (*model.SubmitResult, error) {
	if strings.TrimSpace(applicationID) == "" {
		return nil, fmt.Errorf("%w: application ID is required", common.ErrInvalidPayload)
	}
	if strings.TrimSpace(filename) == "" || content == nil {
		return nil, fmt.Errorf("%w: a document is required", common.ErrInvalidPayload)
	}

	resp, err := s.client.PostMultipart(ctx, PathUploadDocument,
		map[string]string{"applicationId": applicationID},
		[]api.File{{FieldName: "document", FileName: filename, Content: content}})
	return api.Outcome(resp, err, "Failed to upload document")
}
