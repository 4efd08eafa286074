package handler

import (
	"net/http"

	"campusfinder/backend/internal/config"

	"github.com/gin-gonic/gin"
)

// ListNotifications handles GET /api/notifications, newest first.
func (h *Handler) ListNotifications(c *gin.Context) {
	user := currentUser(c)

	list, err := h.Storage.ListNotifications(user.ID, config.NotificationPageSize)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// MarkNotificationRead handles PATCH /api/notifications/:id/read. The update
// is scoped to the recipient, so users cannot mark other users'
// notifications.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	user := currentUser(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	updated, err := h.Storage.MarkNotificationRead(id, user.ID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
