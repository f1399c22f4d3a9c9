package repository

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"treasure-hunt-service/internal/model"
)

// HuntRepository handles hunt catalog persistence.
type HuntRepository struct {
	pool *pgxpool.Pool
}

// NewHuntRepository creates a new HuntRepository instance.
func NewHuntRepository(pool *pgxpool.Pool) *HuntRepository {
	return &HuntRepository{pool: pool}
}

// Create stores a new hunt. Hunts are created active and are immutable
// afterwards. Returns ErrHuntExists if the id is already taken.
func (r *HuntRepository) Create(ctx context.Context, id uint32, name, answerDigest string, reward *big.Int) (*model.Hunt, error) {
	const query = `
		INSERT INTO hunts (id, name, answer_digest, reward_amount, active, created_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW())
		ON CONFLICT (id) DO NOTHING
		RETURNING id, name, answer_digest, reward_amount, active, created_at
	`

	hunt, err := scanHunt(r.pool.QueryRow(ctx, query, int64(id), name, answerDigest, numericFromBig(reward)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHuntExists
		}
		return nil, fmt.Errorf("failed to create hunt: %w", err)
	}
	return hunt, nil
}

// GetByID retrieves a hunt by its id.
// Returns ErrHuntNotFound if no hunt exists at that id.
func (r *HuntRepository) GetByID(ctx context.Context, id uint32) (*model.Hunt, error) {
	const query = `
		SELECT id, name, answer_digest, reward_amount, active, created_at
		FROM hunts
		WHERE id = $1
	`

	hunt, err := scanHunt(r.pool.QueryRow(ctx, query, int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHuntNotFound
		}
		return nil, fmt.Errorf("failed to get hunt: %w", err)
	}
	return hunt, nil
}

// ListIDs returns all hunt ids in creation order.
func (r *HuntRepository) ListIDs(ctx context.Context) ([]uint32, error) {
	const query = `SELECT id FROM hunts ORDER BY position`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list hunt ids: %w", err)
	}
	defer rows.Close()

	ids := []uint32{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan hunt id: %w", err)
		}
		ids = append(ids, uint32(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hunt ids: %w", err)
	}

	return ids, nil
}

// List returns all hunts in creation order.
func (r *HuntRepository) List(ctx context.Context) ([]*model.Hunt, error) {
	const query = `
		SELECT id, name, answer_digest, reward_amount, active, created_at
		FROM hunts
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list hunts: %w", err)
	}
	defer rows.Close()

	var hunts []*model.Hunt
	for rows.Next() {
		hunt, err := scanHunt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hunt: %w", err)
		}
		hunts = append(hunts, hunt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hunts: %w", err)
	}

	return hunts, nil
}

// scanHunt scans one hunt row, converting the id and reward columns.
func scanHunt(row pgx.Row) (*model.Hunt, error) {
	var (
		hunt   model.Hunt
		id     int64
		reward pgtype.Numeric
	)
	err := row.Scan(&id, &hunt.Name, &hunt.AnswerDigest, &reward, &hunt.Active, &hunt.CreatedAt)
	if err != nil {
		return nil, err
	}

	hunt.ID = uint32(id)
	hunt.RewardAmount, err = bigFromNumeric(reward)
	if err != nil {
		return nil, fmt.Errorf("invalid reward amount: %w", err)
	}
	return &hunt, nil
}
