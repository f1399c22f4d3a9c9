// Property-based tests for leaderboard ordering and limit clamping. The
// ranking simulation mirrors the ORDER BY total_rewards DESC, player query
// backing ProgressRepository.GetLeaderboard.
package service

import (
	"fmt"
	"math/big"
	"sort"
	"testing"

	"pgregory.net/rapid"
)

// rankPlayers sorts totals by reward descending with the player key as a
// deterministic tie-break, then truncates to limit.
func rankPlayers(totals map[string]*big.Int, limit int) []string {
	players := make([]string, 0, len(totals))
	for p := range totals {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		cmp := totals[players[i]].Cmp(totals[players[j]])
		if cmp != 0 {
			return cmp > 0
		}
		return players[i] < players[j]
	})
	if limit < len(players) {
		players = players[:limit]
	}
	return players
}

// clampLimit mirrors LeaderboardService.GetLeaderboard's limit handling.
func clampLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

// TestLeaderboardOrderingProperty checks that for any set of player totals
// the ranking is non-increasing, ties break deterministically, and the
// result respects the requested limit.
func TestLeaderboardOrderingProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numPlayers := rapid.IntRange(0, 20).Draw(t, "numPlayers")
		totals := make(map[string]*big.Int, numPlayers)
		for i := 0; i < numPlayers; i++ {
			player := fmt.Sprintf("G%04d", i)
			totals[player] = big.NewInt(rapid.Int64Range(0, 1000).Draw(t, fmt.Sprintf("total%d", i)))
		}
		limit := rapid.IntRange(1, 25).Draw(t, "limit")

		ranked := rankPlayers(totals, limit)

		if len(ranked) > limit {
			t.Fatalf("Ranking exceeds limit: got %d entries, limit %d", len(ranked), limit)
		}
		if want := min(limit, numPlayers); len(ranked) != want {
			t.Fatalf("Expected %d entries, got %d", want, len(ranked))
		}

		for i := 1; i < len(ranked); i++ {
			prev, cur := totals[ranked[i-1]], totals[ranked[i]]
			if prev.Cmp(cur) < 0 {
				t.Fatalf("Ranking not descending at %d: %s < %s", i, prev, cur)
			}
			if prev.Cmp(cur) == 0 && ranked[i-1] >= ranked[i] {
				t.Fatalf("Tie not broken by player key at %d: %q before %q", i, ranked[i-1], ranked[i])
			}
		}

		// Nobody outside the ranking outranks anyone inside it
		if len(ranked) > 0 {
			cutoff := totals[ranked[len(ranked)-1]]
			included := make(map[string]bool, len(ranked))
			for _, p := range ranked {
				included[p] = true
			}
			for p, total := range totals {
				if !included[p] && total.Cmp(cutoff) > 0 {
					t.Fatalf("Excluded player %q has total %s above cutoff %s", p, total, cutoff)
				}
			}
		}
	})
}

// TestLeaderboardLimitClampProperty checks that the effective limit is
// always within (0, maxLimit] regardless of the requested value.
func TestLeaderboardLimitClampProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		defaultLimit := rapid.IntRange(1, 50).Draw(t, "defaultLimit")
		maxLimit := rapid.IntRange(defaultLimit, 200).Draw(t, "maxLimit")
		requested := rapid.IntRange(-100, 500).Draw(t, "requested")

		effective := clampLimit(requested, defaultLimit, maxLimit)

		if effective <= 0 || effective > maxLimit {
			t.Fatalf("Effective limit %d out of range (0, %d]", effective, maxLimit)
		}
		if requested <= 0 && effective != defaultLimit {
			t.Fatalf("Non-positive request should use default %d, got %d", defaultLimit, effective)
		}
		if requested > 0 && requested <= maxLimit && effective != requested {
			t.Fatalf("In-range request %d should pass through, got %d", requested, effective)
		}
	})
}
