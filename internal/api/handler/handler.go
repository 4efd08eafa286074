package handler

import (
	"net/http"
	"strconv"

	"campusfinder/backend/internal/apperr"
	"campusfinder/backend/internal/claims"
	"campusfinder/backend/internal/gamification"
	"campusfinder/backend/internal/identity"
	"campusfinder/backend/internal/items"
	"campusfinder/backend/internal/models"
	"campusfinder/backend/internal/settlement"
	"campusfinder/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler holds the services behind the HTTP surface.
type Handler struct {
	Resolver     *identity.Resolver
	Items        *items.Service
	Claims       *claims.Service
	Settlement   *settlement.Engine
	Gamification *gamification.Service
	Storage      storage.Storage

	JWTSecret []byte
}

func NewHandler(
	resolver *identity.Resolver,
	itemsSvc *items.Service,
	claimsSvc *claims.Service,
	engine *settlement.Engine,
	game *gamification.Service,
	store storage.Storage,
	jwtSecret []byte,
) *Handler {
	return &Handler{
		Resolver:     resolver,
		Items:        itemsSvc,
		Claims:       claimsSvc,
		Settlement:   engine,
		Gamification: game,
		Storage:      store,
		JWTSecret:    jwtSecret,
	}
}

const currentUserKey = "currentUser"

// currentUser returns the resolved local user placed by the auth middleware.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// abortWithServiceError maps the error taxonomy to HTTP statuses.
func abortWithServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.Unauthorized:
		status = http.StatusUnauthorized
	case apperr.Forbidden:
		status = http.StatusForbidden
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.Validation, apperr.InvalidClaim, apperr.InvalidState:
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// parseIDParam reads a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return uint(id), true
}
