// Package service defines the contracts shared between the client layer and its collaborators.
package service

import (
	"context"

	"github.com/Veraticus/installmart/internal/model"
)

// TokenStore persists the bearer token used to authenticate API calls.
// Token returns an empty string and no error when nothing is stored.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	DeleteToken(ctx context.Context) error
}

// ReceiptStore keeps a local log of submitted applications.
type ReceiptStore interface {
	SaveReceipt(ctx context.Context, receipt *model.Receipt) error
	ListReceipts(ctx context.Context, limit int) ([]model.Receipt, error)
}

// Storage is the full local persistence layer.
type Storage interface {
	TokenStore
	ReceiptStore

	Migrate(ctx context.Context) error
	Close() error
}
