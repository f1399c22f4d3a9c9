package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"treasure-hunt-service/internal/middleware"
	"treasure-hunt-service/internal/service"
)

// ProgressHandler handles answer submission and progress endpoints.
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// submitRequest is the body of POST /api/v1/hunts/:id/submissions.
type submitRequest struct {
	Answer string `json:"answer"`
}

// Submit handles POST /api/v1/hunts/:id/submissions. The player is the
// authenticated principal, never taken from the body.
func (h *ProgressHandler) Submit(c *gin.Context) {
	huntID, err := parseHuntID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid hunt id", Code: "bad_request"})
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Code: "bad_request"})
		return
	}

	correct, err := h.progressService.SubmitAnswer(c.Request.Context(), middleware.Principal(c), huntID, req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"correct": correct})
}

// GetProgress handles GET /api/v1/players/:player/progress. Reads are
// public; unknown players get the empty record.
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	player := c.Param("player")

	progress, err := h.progressService.GetProgress(c.Request.Context(), player)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
