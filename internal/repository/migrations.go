package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate applies the ledger schema. Statements are idempotent so the
// migration can run on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	// Instance-scope admin singleton. The CHECK pins the table to one row.
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS registry_admin (
			singleton BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
			principal TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create registry_admin table: %w", err)
	}

	// Hunt records. position preserves creation order for enumeration.
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS hunts (
			id BIGINT PRIMARY KEY CHECK (id >= 0 AND id <= 4294967295),
			position BIGSERIAL,
			name TEXT NOT NULL,
			answer_digest TEXT NOT NULL,
			reward_amount NUMERIC(39,0) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_hunts_position ON hunts(position);
	`)
	if err != nil {
		return fmt.Errorf("failed to create hunts table: %w", err)
	}

	// Per-player reward totals. The ordered index doubles as the leaderboard.
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS player_progress (
			player TEXT PRIMARY KEY,
			total_rewards NUMERIC(39,0) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_player_progress_rewards ON player_progress(total_rewards DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to create player_progress table: %w", err)
	}

	// Completion set. The primary key is the exactly-once guarantee.
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS hunt_completions (
			player TEXT NOT NULL,
			hunt_id BIGINT NOT NULL REFERENCES hunts(id),
			reward NUMERIC(39,0) NOT NULL,
			completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (player, hunt_id)
		);
		CREATE INDEX IF NOT EXISTS idx_hunt_completions_player_time ON hunt_completions(player, completed_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to create hunt_completions table: %w", err)
	}

	return nil
}
