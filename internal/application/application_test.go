package application

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/model"
	"github.com/Veraticus/installmart/internal/testutil"
)

func newService(t *testing.T) (*Service, *testutil.Backend, *testutil.TestDB) {
	t.Helper()
	db := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{Token: "tok"})
	backend := testutil.NewBackend(t)
	svc := New(backend.Client(db.Storage), db.Storage)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, backend, db
}

func installmentApp() *model.InstallmentApplication {
	return &model.InstallmentApplication{
		Applicant: model.Applicant{FullName: "Ayesha Khan", CNIC: "35202-1234567-1", Phone: "03001234567"},
		PlanID:    "P1",
	}
}

func TestApplyInstallment_Success(t *testing.T) {
	svc, backend, db := newService(t)
	backend.Respond(http.MethodPost, PathApplyInstallment, http.StatusCreated,
		`{"success":true,"message":"Application submitted","data":{"_id":"app-9"}}`)

	result, err := svc.ApplyInstallment(context.Background(), installmentApp())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Application submitted", result.Message)

	req := backend.LastRequest()
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.Body), &sent))
	assert.Equal(t, "P1", sent["planId"])
	assert.Equal(t, "Ayesha Khan", sent["fullName"])

	receipts := db.MustReceipts()
	require.Len(t, receipts, 1)
	assert.Equal(t, "app-9", receipts[0].ApplicationID)
	assert.Equal(t, model.KindInstallmentApplication, receipts[0].Kind)
	assert.Equal(t, "P1", receipts[0].ReferenceID)
}

func TestApply_ServerRejection(t *testing.T) {
	svc, backend, db := newService(t)
	backend.Respond(http.MethodPost, PathApplyLoan, http.StatusBadRequest, `{"message":"Tenure exceeds plan maximum"}`)

	result, err := svc.ApplyLoan(context.Background(), &model.LoanApplication{
		Applicant:       model.Applicant{FullName: "A", CNIC: "1", Phone: "2"},
		LoanID:          "L1",
		RequestedAmount: 100000,
		TenureMonths:    120,
	})
	assert.Nil(t, result)

	var opErr *model.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.False(t, opErr.Success)
	assert.Equal(t, "Tenure exceeds plan maximum", opErr.Message)
	assert.Empty(t, db.MustReceipts())
}

func TestApply_SuccessFalseIn200(t *testing.T) {
	svc, backend, db := newService(t)
	backend.Respond(http.MethodPost, PathApplyProperty, http.StatusOK, `{"success":false,"message":"You already applied"}`)

	_, err := svc.ApplyProperty(context.Background(), &model.PropertyApplication{PropertyID: "abc123"})
	var opErr *model.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "You already applied", opErr.Message)
	assert.Empty(t, db.MustReceipts())
}

func TestApply_UnauthorizedClearsToken(t *testing.T) {
	svc, backend, db := newService(t)
	backend.Respond(http.MethodPost, PathApplyProperty, http.StatusUnauthorized, `{"message":"Not authorized"}`)

	_, err := svc.ApplyProperty(context.Background(), &model.PropertyApplication{PropertyID: "abc123"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Empty(t, db.MustToken())
}

func TestApply_WithoutReceiptStore(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodPost, PathApplyInstallment, http.StatusOK, `{"success":true}`)
	svc := New(backend.Client(nil), nil)

	result, err := svc.ApplyInstallment(context.Background(), installmentApp())
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestApplicationID(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{name: "underscore id", data: map[string]any{"_id": "a"}, want: "a"},
		{name: "application id", data: map[string]any{"applicationId": "b"}, want: "b"},
		{name: "nested", data: map[string]any{"application": map[string]any{"_id": "c"}}, want: "c"},
		{name: "none", data: "ok", want: ""},
		{name: "nil", data: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplicationID(&model.SubmitResult{Data: tt.data}))
		})
	}
}

func TestUploadDocument(t *testing.T) {
	svc, backend, _ := newService(t)
	var gotApp, gotFile string
	backend.HandleFunc(http.MethodPost, PathUploadDocument, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotApp = r.FormValue("applicationId")
		_, header, err := r.FormFile("document")
		if err == nil {
			gotFile = header.Filename
		}
		_, _ = w.Write([]byte(`{"success":true,"message":"Uploaded"}`))
	})

	result, err := svc.UploadDocument(context.Background(), "app-9", "salary-slip.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "Uploaded", result.Message)
	assert.Equal(t, "app-9", gotApp)
	assert.Equal(t, "salary-slip.pdf", gotFile)
}

func TestUploadDocument_Validation(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.UploadDocument(context.Background(), "", "a.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, common.ErrInvalidPayload)

	_, err = svc.UploadDocument(context.Background(), "app", "", strings.NewReader("x"))
	assert.ErrorIs(t, err, common.ErrInvalidPayload)
}

func TestLoad(t *testing.T) {
	yamlDoc := `
fullName: Bilal Ahmed
cnic: 42101-7654321-3
phone: "03111234567"
loanId: L1
requestedAmount: 750000
tenureMonths: 36
employmentType: Salaried
`
	app, err := Load[model.LoanApplication](strings.NewReader(yamlDoc))
	require.NoError(t, err)
	assert.Equal(t, "Bilal Ahmed", app.FullName)
	assert.Equal(t, "L1", app.LoanID)
	assert.Equal(t, 750000.0, app.RequestedAmount)
	assert.Equal(t, 36, app.TenureMonths)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "unknown field", doc: "fullName: A\ncnic: \"1\"\nphone: \"2\"\nplanId: P\ncolour: red\n"},
		{name: "missing required", doc: "fullName: A\nplanId: P\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load[model.InstallmentApplication](strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, common.ErrInvalidPayload)
		})
	}
}

func TestValidateSchema(t *testing.T) {
	valid := model.Applicant{FullName: "Ayesha Khan", CNIC: "3520212345671", Phone: "0300-1234567"}

	tests := []struct {
		payload Payload
		name    string
		wantErr string
	}{
		{
			name:    "valid installment",
			payload: &model.InstallmentApplication{Applicant: valid, PlanID: "P1"},
		},
		{
			name:    "bad CNIC",
			payload: &model.InstallmentApplication{Applicant: model.Applicant{FullName: "Ayesha Khan", CNIC: "12345", Phone: "03001234567"}, PlanID: "P1"},
			wantErr: "cnic",
		},
		{
			name:    "landline phone",
			payload: &model.PropertyApplication{Applicant: model.Applicant{FullName: "Ayesha Khan", CNIC: "35202-1234567-1", Phone: "042-35761234"}, PropertyID: "X"},
			wantErr: "phone",
		},
		{
			name:    "bad email",
			payload: &model.PropertyApplication{Applicant: model.Applicant{FullName: "Ayesha Khan", CNIC: "35202-1234567-1", Phone: "03001234567", Email: "ayesha@"}, PropertyID: "X"},
			wantErr: "email",
		},
		{
			name:    "bad visit date",
			payload: &model.PropertyApplication{Applicant: valid, PropertyID: "X", PreferredVisitDate: "next tuesday"},
			wantErr: "preferredVisitDate",
		},
		{
			name:    "zero amount",
			payload: &model.LoanApplication{Applicant: valid, LoanID: "L1", TenureMonths: 12},
			wantErr: "requestedAmount",
		},
		{
			name:    "valid loan",
			payload: &model.LoanApplication{Applicant: valid, LoanID: "L1", RequestedAmount: 500000, TenureMonths: 24},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchema(tt.payload.Kind(), tt.payload)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, common.ErrInvalidPayload)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateSchema_UnknownKind(t *testing.T) {
	err := ValidateSchema("mortgage", map[string]any{})
	assert.ErrorIs(t, err, common.ErrInvalidPayload)
}
