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

// ProgressRepository handles the per-player completion ledger.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository instance.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// GetProgress retrieves a player's progress. A player with no stored state
// gets the default empty record; this lookup never reports "not found".
// Both reads run in one repeatable-read transaction so the completion list
// and the total come from the same snapshot even while Complete commits
// concurrently.
func (r *ProgressRepository) GetProgress(ctx context.Context, player string) (*model.PlayerProgress, error) {
	progress := model.NewPlayerProgress(player)

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const completionsQuery = `
		SELECT hunt_id
		FROM hunt_completions
		WHERE player = $1
		ORDER BY completed_at, hunt_id
	`
	rows, err := tx.Query(ctx, completionsQuery, player)
	if err != nil {
		return nil, fmt.Errorf("failed to get completions: %w", err)
	}

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		progress.CompletedHunts = append(progress.CompletedHunts, uint32(id))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating completions: %w", err)
	}

	const totalQuery = `SELECT total_rewards FROM player_progress WHERE player = $1`
	var total pgtype.Numeric
	err = tx.QueryRow(ctx, totalQuery, player).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if err := tx.Commit(ctx); err != nil {
				return nil, fmt.Errorf("failed to commit progress read: %w", err)
			}
			return progress, nil
		}
		return nil, fmt.Errorf("failed to get reward total: %w", err)
	}

	progress.TotalRewards, err = bigFromNumeric(total)
	if err != nil {
		return nil, fmt.Errorf("invalid reward total: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit progress read: %w", err)
	}
	return progress, nil
}

// HasCompleted reports whether the player has already completed the hunt.
func (r *ProgressRepository) HasCompleted(ctx context.Context, player string, huntID uint32) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM hunt_completions WHERE player = $1 AND hunt_id = $2)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, player, int64(huntID)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check completion: %w", err)
	}
	return exists, nil
}

// Complete records a completion and accrues its reward in one transaction.
// Either both writes land or neither does. Returns ErrAlreadyCompleted if the
// (player, hunt) pair is already recorded.
func (r *ProgressRepository) Complete(ctx context.Context, player string, huntID uint32, reward *big.Int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const completionQuery = `
		INSERT INTO hunt_completions (player, hunt_id, reward, completed_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (player, hunt_id) DO NOTHING
	`
	tag, err := tx.Exec(ctx, completionQuery, player, int64(huntID), numericFromBig(reward))
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyCompleted
	}

	const accrueQuery = `
		INSERT INTO player_progress (player, total_rewards, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (player) DO UPDATE
		SET total_rewards = player_progress.total_rewards + EXCLUDED.total_rewards,
		    updated_at = NOW()
	`
	if _, err := tx.Exec(ctx, accrueQuery, player, numericFromBig(reward)); err != nil {
		return fmt.Errorf("failed to accrue reward: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit completion: %w", err)
	}
	return nil
}

// GetLeaderboard retrieves the top players by total rewards, descending.
// Ties break on player id for a stable order.
func (r *ProgressRepository) GetLeaderboard(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	const query = `
		SELECT p.player, p.total_rewards, COUNT(c.hunt_id) AS hunts_completed
		FROM player_progress p
		LEFT JOIN hunt_completions c ON c.player = p.player
		GROUP BY p.player, p.total_rewards
		ORDER BY p.total_rewards DESC, p.player
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []*model.LeaderboardEntry{}
	for rows.Next() {
		var (
			entry model.LeaderboardEntry
			total pgtype.Numeric
		)
		if err := rows.Scan(&entry.Player, &total, &entry.HuntsCompleted); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entry.TotalRewards, err = bigFromNumeric(total)
		if err != nil {
			return nil, fmt.Errorf("invalid reward total: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard: %w", err)
	}

	return entries, nil
}
