package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SubmitClaim handles POST /api/items/:id/claim.
func (h *Handler) SubmitClaim(c *gin.Context) {
	user := currentUser(c)

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		ProofDescription string `json:"proofDescription"`
		ProofImageURL    string `json:"proofImageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Proof description is required"})
		return
	}

	claim, err := h.Claims.SubmitClaim(user, itemID, req.ProofDescription, req.ProofImageURL)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "claim": claim})
}

// GetMyClaim handles GET /api/items/:id/my-claim. Responds with the caller's
// claim or null.
func (h *Handler) GetMyClaim(c *gin.Context) {
	user := currentUser(c)

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	claim, err := h.Claims.GetMyClaim(user, itemID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	if claim == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, claim)
}

// ListItemClaims handles GET /api/items/:id/claims (item owner only).
func (h *Handler) ListItemClaims(c *gin.Context) {
	user := currentUser(c)

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	list, err := h.Claims.ListClaimsForItem(user, itemID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListPendingClaims handles GET /api/claims, the authority review queue.
func (h *Handler) ListPendingClaims(c *gin.Context) {
	user := currentUser(c)

	list, err := h.Claims.ListPending(user)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// SetClaimStatus handles PATCH /api/claims/:id (approve or reject).
func (h *Handler) SetClaimStatus(c *gin.Context) {
	user := currentUser(c)

	claimID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status     string `json:"status"`
		AdminNotes string `json:"adminNotes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	if err := h.Claims.SetClaimStatus(user, claimID, req.Status, req.AdminNotes); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ConfirmHandover handles POST /api/claims/:id/confirm (authority only).
// This is the settlement entry point: it completes the claim, returns the
// item, and reports the karma the finder earned.
func (h *Handler) ConfirmHandover(c *gin.Context) {
	user := currentUser(c)

	claimID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	points, err := h.Settlement.ConfirmHandover(user, claimID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pointsAwarded": points})
}

// GetHandoverDetail handles GET /api/handover/:claimId, the counter-desk
// view of a claim.
func (h *Handler) GetHandoverDetail(c *gin.Context) {
	user := currentUser(c)

	claimID, ok := parseIDParam(c, "claimId")
	if !ok {
		return
	}

	detail, err := h.Claims.GetHandoverDetail(user, claimID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
