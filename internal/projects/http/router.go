package http

import "github.com/gin-gonic/gin"

// Register attaches project routes. requireUser guards every JSON route;
// briefLimit throttles brief writes and must run after requireUser. The
// page route authenticates itself so it can render instead of writing JSON.
func (h *Handler) Register(r gin.IRouter, requireUser, briefLimit gin.HandlerFunc) {
	api := r.Group("/api/projects", requireUser)
	api.POST("", h.create)
	api.GET("", h.list)
	api.GET("/:projectId", h.view)
	api.GET("/:projectId/brief", h.getBrief)
	api.POST("/:projectId/brief", briefLimit, h.saveBrief)

	r.POST("/projects/:projectId/brief", requireUser, briefLimit, h.saveBrief)
	r.GET("/projects/:projectId", h.projectPage)
}
