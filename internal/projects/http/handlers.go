package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adcraft-app/adcraft-backend/internal/api/http/respond"
	"github.com/adcraft-app/adcraft-backend/internal/apperr"
	"github.com/adcraft-app/adcraft-backend/internal/auth"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, apperr.New(apperr.BadRequest, "projects.create", "invalid JSON body"))
		return
	}

	p, err := h.projects.Create(c.Request.Context(), auth.UserDBID(c), req.Name)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.projects.List(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) view(c *gin.Context) {
	v, err := h.projects.View(c.Request.Context(), auth.UserDBID(c), c.Param("projectId"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectViewResp(v))
}
