package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adcraft-app/adcraft-backend/internal/api/http/respond"
	"github.com/adcraft-app/adcraft-backend/internal/auth"
	"github.com/adcraft-app/adcraft-backend/internal/users"
)

type IdentityResolver interface {
	Resolve(ctx context.Context, firebaseUID string) (*users.User, error)
}

// Session authenticates requests from the session cookie. Verification and
// identity resolution both finish before any handler runs, so an anonymous
// request never reaches a project store.
type Session struct {
	verifier   auth.SessionVerifier
	resolver   IdentityResolver
	cookieName string
}

func NewSession(verifier auth.SessionVerifier, resolver IdentityResolver, cookieName string) *Session {
	if cookieName == "" {
		cookieName = "session"
	}
	return &Session{verifier: verifier, resolver: resolver, cookieName: cookieName}
}

// VerifyClaim checks the session cookie and stores the claim in the context.
func (s *Session) VerifyClaim(c *gin.Context) (*auth.Claim, error) {
	claim, err := s.verifier.VerifySession(c.Request.Context(), s.token(c))
	if err != nil {
		return nil, err
	}
	c.Set(auth.CtxFirebaseUID, claim.UID)
	if claim.Email != "" {
		c.Set(auth.CtxEmail, claim.Email)
	}
	return claim, nil
}

// Authenticate verifies the cookie and resolves the internal user.
func (s *Session) Authenticate(c *gin.Context) (*users.User, error) {
	claim, err := s.VerifyClaim(c)
	if err != nil {
		return nil, err
	}
	u, err := s.resolver.Resolve(c.Request.Context(), claim.UID)
	if err != nil {
		return nil, err
	}
	c.Set(auth.CtxUserDBID, u.ID)
	return u, nil
}

// RequireUser rejects the request with a JSON error unless it carries a valid
// session for a provisioned user.
func (s *Session) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := s.Authenticate(c); err != nil {
			respond.Error(c, err)
			return
		}
		c.Next()
	}
}

// RequireClaim only verifies the session; used by provisioning, which runs
// before the internal user exists.
func (s *Session) RequireClaim() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := s.VerifyClaim(c); err != nil {
			respond.Error(c, err)
			return
		}
		c.Next()
	}
}

// token reads the session cookie, falling back to a Bearer header for
// non-browser clients.
func (s *Session) token(c *gin.Context) string {
	if v, err := c.Cookie(s.cookieName); err == nil && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	bearer := c.GetHeader("Authorization")
	if len(bearer) > 7 && strings.HasPrefix(bearer, "Bearer ") {
		return strings.TrimSpace(bearer[7:])
	}
	return ""
}
