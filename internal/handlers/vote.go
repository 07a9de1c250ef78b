package handlers

import (
	"net/http"
	"strconv"

	"forskull/internal/models"
	"forskull/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

type voteRequest struct {
	Value int `json:"value" binding:"required"` // +1 or -1
}

// Cast applies a vote to a question or answer and returns the fresh like
// count read back from the store.
func (h *VoteHandler) Cast(c *gin.Context) {
	user := currentUser(c)

	targetType := c.Param("type")
	if targetType != models.VoteTargetQuestion && targetType != models.VoteTargetAnswer {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный голос"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор"})
		return
	}
	targetID := uint(id)

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный голос"})
		return
	}

	if err := services.CastVote(user, targetType, targetID, req.Value); err != nil {
		fail(c, err)
		return
	}

	// Re-query rather than adjust locally, so the count cannot drift.
	c.JSON(http.StatusOK, gin.H{
		"likes_count": services.CountLikes(targetType, targetID),
		"user_vote":   services.GetUserVote(user.ID, targetType, targetID),
	})
}
