package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter assembles the gin engine with CORS and the full route table.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Campus Finder Backend is Running!")
	})

	api := r.Group("/api")

	api.POST("/auth/token", h.IssueToken)

	// Public reads
	api.GET("/items/found", h.ListFoundItems)
	api.GET("/items/lost", h.ListLostItems)
	api.GET("/items/:id", h.AuthOptional(), h.GetItem)
	api.GET("/leaderboard", h.GetLeaderboard)
	api.GET("/rewards", h.ListRewards)

	// Authenticated surface
	auth := api.Group("")
	auth.Use(h.AuthRequired())
	{
		auth.POST("/items/found", h.ReportFound)
		auth.POST("/items/lost", h.ReportLost)
		auth.GET("/items/lost/mine", h.ListMyLostItems)
		auth.POST("/items/:id/claim", h.SubmitClaim)
		auth.GET("/items/:id/my-claim", h.GetMyClaim)
		auth.GET("/items/:id/claims", h.ListItemClaims)

		auth.GET("/claims", h.ListPendingClaims)
		auth.PATCH("/claims/:id", h.SetClaimStatus)
		auth.POST("/claims/:id/confirm", h.ConfirmHandover)
		auth.GET("/handover/:claimId", h.GetHandoverDetail)

		auth.GET("/notifications", h.ListNotifications)
		auth.PATCH("/notifications/:id/read", h.MarkNotificationRead)

		auth.GET("/users/me", h.GetMe)
		auth.PATCH("/users/me", h.UpdateMe)
		auth.GET("/users/me/stats", h.GetMyStats)

		auth.POST("/rewards/redeem", h.RedeemReward)
	}

	return r
}
