package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard handles GET /api/leaderboard.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	entries, err := h.Gamification.Leaderboard()
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ListRewards handles GET /api/rewards.
func (h *Handler) ListRewards(c *gin.Context) {
	rewards, err := h.Gamification.ListRewards()
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rewards)
}

// RedeemReward handles POST /api/rewards/redeem.
func (h *Handler) RedeemReward(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		RewardID uint `json:"rewardId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rewardId is required"})
		return
	}

	if err := h.Gamification.RedeemReward(user, req.RewardID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
