package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adcraft-app/adcraft-backend/internal/api/http/respond"
	"github.com/adcraft-app/adcraft-backend/internal/apperr"
	"github.com/adcraft-app/adcraft-backend/internal/auth"
	"github.com/adcraft-app/adcraft-backend/internal/projects/domain"
)

// saveBrief replaces the project's brief and answers with the stored row.
func (h *Handler) saveBrief(c *gin.Context) {
	var in domain.BriefInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, apperr.New(apperr.BadRequest, "briefs.save", "invalid JSON body"))
		return
	}

	b, err := h.briefs.Save(c.Request.Context(), auth.UserDBID(c), c.Param("projectId"), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) getBrief(c *gin.Context) {
	b, err := h.briefs.Get(c.Request.Context(), auth.UserDBID(c), c.Param("projectId"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "brief": b})
}
