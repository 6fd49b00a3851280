package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Token returns the stored bearer token, or "" when the user is logged out.
func (s *SQLiteStorage) Token(ctx context.Context) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	var token string
	err := s.db.QueryRowContext(ctx, `SELECT token FROM auth_tokens WHERE id = 1`).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return token, nil
}

// SaveToken replaces the stored bearer token.
func (s *SQLiteStorage) SaveToken(ctx context.Context, token string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(token, "token"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO auth_tokens (id, token, saved_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, saved_at = excluded.saved_at
	`, token)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// DeleteToken removes the stored token. Deleting when none is stored is not an error.
func (s *SQLiteStorage) DeleteToken(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM auth_tokens`); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
