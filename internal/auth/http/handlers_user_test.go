package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adcraft-app/adcraft-backend/internal/apperr"
	"github.com/adcraft-app/adcraft-backend/internal/auth"
	authmw "github.com/adcraft-app/adcraft-backend/internal/auth/middleware"
	"github.com/adcraft-app/adcraft-backend/internal/auth/service"
	"github.com/adcraft-app/adcraft-backend/internal/db/dbtest"
	"github.com/adcraft-app/adcraft-backend/internal/users"
)

type staticVerifier struct{}

func (staticVerifier) VerifySession(_ context.Context, token string) (*auth.Claim, error) {
	if token != "fb-new" {
		return nil, apperr.New(apperr.Unauthorized, "test", "invalid")
	}
	return &auth.Claim{UID: "fb-new", Email: "new@example.com"}, nil
}

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := users.NewRepo(dbtest.NewSQLite(t))
	session := authmw.NewSession(staticVerifier{}, users.NewResolver(repo, time.Second), "session")

	r := gin.New()
	New(service.NewAccountService(repo, nil, time.Second)).
		Register(r.Group("/api/auth"), session.RequireClaim(), session.RequireUser())
	return r
}

func call(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: "session", Value: "fb-new"})
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestSyncThenProfile(t *testing.T) {
	r := setupRouter(t)

	rr := call(r, http.MethodGet, "/api/auth/profile", "")
	assert.Equal(t, http.StatusForbidden, rr.Code, "profile before sync is setup incomplete")

	rr = call(r, http.MethodPost, "/api/auth/sync", `{"displayName":"Ada"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var synced struct {
		User users.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &synced))
	assert.Equal(t, "fb-new", synced.User.FirebaseUID)
	require.NotNil(t, synced.User.Email)
	assert.Equal(t, "new@example.com", *synced.User.Email)

	rr = call(r, http.MethodGet, "/api/auth/profile", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var profile struct {
		User users.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &profile))
	assert.Equal(t, synced.User.ID, profile.User.ID)
}

func TestSync_InvalidBody(t *testing.T) {
	r := setupRouter(t)
	rr := call(r, http.MethodPost, "/api/auth/sync", `{"displayName":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
