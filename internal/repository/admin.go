// Package repository provides data access for the treasure hunt ledger.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Common errors for repository operations.
var (
	ErrAlreadyInitialized = errors.New("admin already initialized")
	ErrNotInitialized     = errors.New("admin not initialized")
	ErrHuntNotFound       = errors.New("hunt not found")
	ErrHuntExists         = errors.New("hunt id already exists")
	ErrAlreadyCompleted   = errors.New("hunt already completed")
)

// AdminRepository stores the instance-wide admin principal. The value is set
// exactly once; there is no rotation or transfer.
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository instance.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// Initialize stores the admin principal. Returns ErrAlreadyInitialized if an
// admin is already stored; the stored value is left untouched.
func (r *AdminRepository) Initialize(ctx context.Context, principal string) error {
	const query = `
		INSERT INTO registry_admin (singleton, principal)
		VALUES (TRUE, $1)
		ON CONFLICT (singleton) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, principal)
	if err != nil {
		return fmt.Errorf("failed to initialize admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyInitialized
	}
	return nil
}

// Get returns the stored admin principal.
// Returns ErrNotInitialized if Initialize has never succeeded.
func (r *AdminRepository) Get(ctx context.Context) (string, error) {
	const query = `SELECT principal FROM registry_admin WHERE singleton`

	var principal string
	err := r.pool.QueryRow(ctx, query).Scan(&principal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotInitialized
		}
		return "", fmt.Errorf("failed to get admin: %w", err)
	}
	return principal, nil
}
