package handler

import (
	"encoding/json"
	"math/big"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"treasure-hunt-service/internal/digest"
	"treasure-hunt-service/internal/middleware"
	"treasure-hunt-service/internal/service"
)

// HuntHandler handles hunt registry endpoints.
type HuntHandler struct {
	huntService *service.HuntService
}

// NewHuntHandler creates a new HuntHandler.
func NewHuntHandler(huntService *service.HuntService) *HuntHandler {
	return &HuntHandler{huntService: huntService}
}

// Initialize handles POST /api/v1/initialize. The authenticated caller
// becomes the stored admin; only the very first call succeeds.
func (h *HuntHandler) Initialize(c *gin.Context) {
	principal := middleware.Principal(c)

	if err := h.huntService.Initialize(c.Request.Context(), principal); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"admin": principal})
}

// rewardAmount is a decimal integer accepted as a JSON number or string.
// Rewards can exceed float64 precision, so clients commonly quote them.
type rewardAmount string

func (r *rewardAmount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = rewardAmount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = rewardAmount(n)
	return nil
}

// createHuntRequest is the body of POST /api/v1/hunts. Exactly one of Answer
// and AnswerDigest must be set; a plaintext answer is digested server-side
// and never stored.
type createHuntRequest struct {
	ID           uint32       `json:"id"`
	Name         string       `json:"name"`
	Answer       string       `json:"answer"`
	AnswerDigest string       `json:"answer_digest"`
	RewardAmount rewardAmount `json:"reward_amount"`
}

// Create handles POST /api/v1/hunts (admin only).
func (h *HuntHandler) Create(c *gin.Context) {
	var req createHuntRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Code: "bad_request"})
		return
	}

	answerDigest := req.AnswerDigest
	switch {
	case req.Answer != "" && req.AnswerDigest != "":
		c.JSON(http.StatusBadRequest, errorResponse{Error: "provide answer or answer_digest, not both", Code: "bad_request"})
		return
	case req.Answer != "":
		answerDigest = digest.Answer(req.Answer)
	}

	reward, ok := new(big.Int).SetString(string(req.RewardAmount), 10)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "reward_amount must be a decimal integer", Code: "bad_request"})
		return
	}

	hunt, err := h.huntService.CreateHunt(c.Request.Context(), middleware.Principal(c), req.ID, req.Name, answerDigest, reward)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, hunt)
}

// Get handles GET /api/v1/hunts/:id.
func (h *HuntHandler) Get(c *gin.Context) {
	id, err := parseHuntID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid hunt id", Code: "bad_request"})
		return
	}

	hunt, err := h.huntService.GetHunt(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, hunt)
}

// List handles GET /api/v1/hunts.
func (h *HuntHandler) List(c *gin.Context) {
	hunts, err := h.huntService.ListHunts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hunts": hunts})
}

// ListIDs handles GET /api/v1/hunt-ids.
func (h *HuntHandler) ListIDs(c *gin.Context) {
	ids, err := h.huntService.ListHuntIDs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ids": ids})
}

// parseHuntID parses a hunt id path parameter.
func parseHuntID(raw string) (uint32, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(id), nil
}
