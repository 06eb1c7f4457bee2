package http

import "github.com/gin-gonic/gin"

// Register mounts the account routes. Sync only needs a verified session
// because it is what creates the internal user; profile needs the user.
func (h *Handler) Register(rg *gin.RouterGroup, requireClaim, requireUser gin.HandlerFunc) {
	rg.POST("/sync", requireClaim, h.SyncUser)
	rg.GET("/profile", requireUser, h.GetProfile)
}
