package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"campusfinder/backend/internal/identity"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "campusfinder-service"

// generateJWT signs a bearer token carrying the principal's identity claims.
func (h *Handler) generateJWT(p identity.Principal) (string, error) {
	claims := jwt.MapClaims{
		"email":   p.Email,
		"name":    p.Name,
		"picture": p.Picture,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
		"iss":     tokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

// validateToken parses the bearer token and extracts the principal.
func (h *Handler) validateToken(tokenString string) (identity.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return h.JWTSecret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil || !token.Valid {
		return identity.Principal{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return identity.Principal{}, fmt.Errorf("unexpected claims type")
	}

	p := identity.Principal{}
	p.Email, _ = claims["email"].(string)
	p.Name, _ = claims["name"].(string)
	p.Picture, _ = claims["picture"].(string)
	if p.Email == "" {
		return identity.Principal{}, fmt.Errorf("token has no email claim")
	}
	return p, nil
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(authHeader[7:]), true
}

// IssueToken mints a signed token for the given identity. This stands in
// for the external identity provider's session issuance in development.
func (h *Handler) IssueToken(c *gin.Context) {
	var req struct {
		Email   string `json:"email" binding:"required"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	token, err := h.generateJWT(identity.Principal{Email: req.Email, Name: req.Name, Picture: req.Picture})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// AuthRequired validates the bearer token, syncs the principal to a local
// user, and stores the user in the request context.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		principal, err := h.validateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := h.Resolver.Resolve(principal)
		if err != nil {
			abortWithServiceError(c, err)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// AuthOptional resolves a user when a valid bearer token is present and
// proceeds anonymously otherwise. Used by reads with per-viewer redaction.
func (h *Handler) AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		principal, err := h.validateToken(tokenString)
		if err != nil {
			c.Next()
			return
		}
		if user, err := h.Resolver.Resolve(principal); err == nil {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}
