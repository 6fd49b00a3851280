// Package testutil provides shared test infrastructure: an isolated SQLite
// store and a scriptable fake backend.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/installmart/internal/model"
	"github.com/Veraticus/installmart/internal/service"
	"github.com/Veraticus/installmart/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, service.Storage) error
	Token          string
	Receipts       []model.Receipt
	SkipMigrations bool
}

// SetupTestDB creates a migrated in-memory database that is closed when the test ends.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	ctx := context.Background()

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if opts.Token != "" {
		if err := store.SaveToken(ctx, opts.Token); err != nil {
			t.Fatalf("failed to seed token: %v", err)
		}
	}

	for i := range opts.Receipts {
		if err := store.SaveReceipt(ctx, &opts.Receipts[i]); err != nil {
			t.Fatalf("failed to seed receipt: %v", err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustToken returns the stored token or fails the test.
func (db *TestDB) MustToken() string {
	db.t.Helper()
	token, err := db.Storage.Token(context.Background())
	if err != nil {
		db.t.Fatalf("failed to read token: %v", err)
	}
	return token
}

// MustReceipts returns every stored receipt, newest first, or fails the test.
func (db *TestDB) MustReceipts() []model.Receipt {
	db.t.Helper()
	receipts, err := db.Storage.ListReceipts(context.Background(), 0)
	if err != nil {
		db.t.Fatalf("failed to list receipts: %v", err)
	}
	return receipts
}
