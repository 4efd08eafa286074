package handler

import (
	"net/http"

	"campusfinder/backend/internal/items"
	"campusfinder/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ReportFound handles POST /api/items/found.
func (h *Handler) ReportFound(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		Title         string `json:"title"`
		Category      string `json:"category"`
		Description   string `json:"description"`
		Location      string `json:"location"`
		DateFound     string `json:"dateFound"`
		ImageURL      string `json:"imageUrl"`
		ItemCondition string `json:"itemCondition"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	item, err := h.Items.ReportFound(user, items.ReportFoundInput{
		Title:         req.Title,
		Category:      req.Category,
		Description:   req.Description,
		Location:      req.Location,
		DateFound:     req.DateFound,
		ImageURL:      req.ImageURL,
		ItemCondition: req.ItemCondition,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "itemId": item.ID, "uniqueItemId": item.UniqueItemID})
}

// ReportLost handles POST /api/items/lost.
func (h *Handler) ReportLost(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		Title         string `json:"title"`
		Category      string `json:"category"`
		Description   string `json:"description"`
		Location      string `json:"location"`
		DateLost      string `json:"dateLost"`
		ImageURL      string `json:"imageUrl"`
		ItemCondition string `json:"itemCondition"`
		PrivateProof  string `json:"privateProof"`
		RewardAmount  int    `json:"rewardAmount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	item, err := h.Items.ReportLost(user, items.ReportLostInput{
		Title:         req.Title,
		Category:      req.Category,
		Description:   req.Description,
		Location:      req.Location,
		DateLost:      req.DateLost,
		ImageURL:      req.ImageURL,
		ItemCondition: req.ItemCondition,
		PrivateProof:  req.PrivateProof,
		RewardAmount:  req.RewardAmount,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "uniqueItemId": item.UniqueItemID})
}

// ListFoundItems handles GET /api/items/found.
func (h *Handler) ListFoundItems(c *gin.Context) {
	list, err := h.Items.ListFound()
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListLostItems handles GET /api/items/lost.
func (h *Handler) ListLostItems(c *gin.Context) {
	list, err := h.Items.ListLost()
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListMyLostItems handles GET /api/items/lost/mine.
func (h *Handler) ListMyLostItems(c *gin.Context) {
	user := currentUser(c)
	list, err := h.Items.ListMine(user, models.ItemTypeLost)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetItem handles GET /api/items/:id. Authentication is optional; the
// private-proof field is stripped unless the viewer is the owner or
// authority.
func (h *Handler) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.Items.GetItem(id, currentUser(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
