package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// collegeIDSuffix is the only accepted college-id domain.
const collegeIDSuffix = "@cgc.edu.in"

// GetMe handles GET /api/users/me.
func (h *Handler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// UpdateMe handles PATCH /api/users/me. Only supplied fields are updated.
func (h *Handler) UpdateMe(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		CollegeID         string `json:"collegeId"`
		RollNumber        string `json:"rollNumber"`
		Department        string `json:"department"`
		Block             string `json:"block"`
		PhoneNumber       string `json:"phoneNumber"`
		AltEmail          string `json:"altEmail"`
		AltPhone          string `json:"altPhone"`
		CollegeIDImageURL string `json:"collegeIdImageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.CollegeID != "" && !strings.HasSuffix(req.CollegeID, collegeIDSuffix) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "College ID must end with " + collegeIDSuffix})
		return
	}

	updates := map[string]interface{}{}
	if req.CollegeID != "" {
		updates["college_id"] = req.CollegeID
	}
	if req.RollNumber != "" {
		updates["college_roll_number"] = req.RollNumber
	}
	if req.Department != "" {
		updates["department"] = req.Department
	}
	if req.Block != "" {
		updates["block"] = req.Block
	}
	if req.PhoneNumber != "" {
		updates["phone_number"] = req.PhoneNumber
	}
	if req.AltEmail != "" {
		updates["alternative_email"] = req.AltEmail
	}
	if req.AltPhone != "" {
		updates["alternative_phone"] = req.AltPhone
	}
	if req.CollegeIDImageURL != "" {
		updates["college_id_image_url"] = req.CollegeIDImageURL
	}
	updates["updated_at"] = time.Now()

	if err := h.Storage.UpdateUserProfile(user.ID, updates); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// GetMyStats handles GET /api/users/me/stats.
func (h *Handler) GetMyStats(c *gin.Context) {
	stats, err := h.Gamification.Stats(currentUser(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
