// Package model defines the data models for the treasure hunt ledger.
package model

import (
	"math/big"
	"time"
)

// Hunt represents a registered treasure hunt.
// Reward amounts are arbitrary-precision: the ledger stores them as
// NUMERIC(39,0), wide enough for a signed 128-bit value.
type Hunt struct {
	ID           uint32    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	AnswerDigest string    `db:"answer_digest" json:"-"`
	RewardAmount *big.Int  `db:"reward_amount" json:"reward_amount"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Completion records a single hunt completed by a player, with the reward
// that was in effect at completion time.
type Completion struct {
	Player      string    `db:"player" json:"player"`
	HuntID      uint32    `db:"hunt_id" json:"hunt_id"`
	Reward      *big.Int  `db:"reward" json:"reward"`
	CompletedAt time.Time `db:"completed_at" json:"completed_at"`
}

// PlayerProgress is a player's cumulative completion state. A player with no
// stored row has the zero progress: no completed hunts, zero total rewards.
type PlayerProgress struct {
	Player         string   `json:"player"`
	CompletedHunts []uint32 `json:"completed_hunts"`
	TotalRewards   *big.Int `json:"total_rewards"`
}

// NewPlayerProgress returns the default empty progress record for a player.
func NewPlayerProgress(player string) *PlayerProgress {
	return &PlayerProgress{
		Player:         player,
		CompletedHunts: []uint32{},
		TotalRewards:   big.NewInt(0),
	}
}

// HasCompleted reports whether the progress already contains the hunt.
func (p *PlayerProgress) HasCompleted(huntID uint32) bool {
	for _, id := range p.CompletedHunts {
		if id == huntID {
			return true
		}
	}
	return false
}

// LeaderboardEntry is one row of the reward leaderboard.
type LeaderboardEntry struct {
	Player         string   `db:"player" json:"player"`
	TotalRewards   *big.Int `db:"total_rewards" json:"total_rewards"`
	HuntsCompleted int      `db:"hunts_completed" json:"hunts_completed"`
}
