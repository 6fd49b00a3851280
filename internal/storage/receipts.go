package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/installmart/internal/model"
)

// SaveReceipt records a submitted application. ID and SubmittedAt are filled in.
func (s *SQLiteStorage) SaveReceipt(ctx context.Context, receipt *model.Receipt) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateReceipt(receipt); err != nil {
		return err
	}

	if receipt.SubmittedAt.IsZero() {
		receipt.SubmittedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO receipts (application_id, kind, reference_id, message, submitted_at)
		VALUES (?, ?, ?, ?, ?)
	`, receipt.ApplicationID, string(receipt.Kind), receipt.ReferenceID, receipt.Message, receipt.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to save receipt: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read receipt id: %w", err)
	}
	receipt.ID = id
	return nil
}

// ListReceipts returns the most recent receipts first. A non-positive limit returns all.
func (s *SQLiteStorage) ListReceipts(ctx context.Context, limit int) ([]model.Receipt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, application_id, kind, reference_id, message, submitted_at
		FROM receipts
		ORDER BY submitted_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	receipts := []model.Receipt{}
	for rows.Next() {
		var r model.Receipt
		var kind string
		if err := rows.Scan(&r.ID, &r.ApplicationID, &kind, &r.ReferenceID, &r.Message, &r.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		r.Kind = model.ApplicationKind(kind)
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}
	return receipts, nil
}
