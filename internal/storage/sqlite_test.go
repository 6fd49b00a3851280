package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/installmart/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	require.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))

	var version int
	require.NoError(t, store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestTokenStore(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token, "fresh database holds no token")

	require.NoError(t, store.SaveToken(ctx, "first"))
	require.NoError(t, store.SaveToken(ctx, "second"))

	token, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	require.NoError(t, store.DeleteToken(ctx))
	require.NoError(t, store.DeleteToken(ctx))

	token, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	assert.ErrorIs(t, store.SaveToken(ctx, ""), ErrEmptyString)
}

func TestReceipts(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, kind := range []model.ApplicationKind{
		model.KindInstallmentApplication,
		model.KindPropertyApplication,
		model.KindLoanApplication,
	} {
		r := &model.Receipt{
			ApplicationID: "app-" + string(kind),
			Kind:          kind,
			ReferenceID:   "ref-" + string(kind),
			Message:       "Application submitted",
			SubmittedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, store.SaveReceipt(ctx, r))
		assert.NotZero(t, r.ID)
	}

	all, err := store.ListReceipts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, model.KindLoanApplication, all[0].Kind, "newest first")
	assert.Equal(t, "ref-installment", all[2].ReferenceID)

	limited, err := store.ListReceipts(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSaveReceipt_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		receipt *model.Receipt
		wantErr error
		name    string
	}{
		{name: "nil", receipt: nil, wantErr: ErrNilParameter},
		{name: "unknown kind", receipt: &model.Receipt{Kind: "mortgage", ReferenceID: "x"}, wantErr: ErrInvalidRecord},
		{name: "missing reference", receipt: &model.Receipt{Kind: model.KindLoanApplication}, wantErr: ErrInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, store.SaveReceipt(ctx, tt.receipt), tt.wantErr)
		})
	}

	ok := &model.Receipt{Kind: model.KindLoanApplication, ReferenceID: "loan-1"}
	require.NoError(t, store.SaveReceipt(ctx, ok))
	assert.False(t, ok.SubmittedAt.IsZero(), "submission time defaults to now")
}
