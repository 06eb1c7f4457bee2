package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adcraft-app/adcraft-backend/internal/api/http/respond"
	"github.com/adcraft-app/adcraft-backend/internal/apperr"
	"github.com/adcraft-app/adcraft-backend/internal/auth"
	"github.com/adcraft-app/adcraft-backend/internal/users"
)

// GetProfile returns the current user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.accounts.Profile(c.Request.Context(), auth.UserFirebaseUID(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

// SyncUser provisions the internal user for the verified session. It is
// called by the web client right after sign-in; the body is optional.
func (h *Handler) SyncUser(c *gin.Context) {
	var body struct {
		DisplayName string `json:"displayName"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			respond.Error(c, apperr.New(apperr.BadRequest, "auth.SyncUser", "invalid JSON body"))
			return
		}
	}

	user, err := h.accounts.SyncUser(c.Request.Context(), users.UpsertUser{
		FirebaseUID: auth.UserFirebaseUID(c),
		Email:       auth.UserEmail(c),
		DisplayName: body.DisplayName,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}
