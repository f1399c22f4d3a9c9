package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"treasure-hunt-service/internal/service"
)

// LeaderboardHandler handles the reward leaderboard endpoint.
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// Get handles GET /api/v1/leaderboard?limit=N.
func (h *LeaderboardHandler) Get(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid limit", Code: "bad_request"})
			return
		}
		limit = parsed
	}

	entries, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
