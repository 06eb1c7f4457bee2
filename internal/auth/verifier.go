package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/errorutils"

	"github.com/adcraft-app/adcraft-backend/internal/apperr"
	"github.com/adcraft-app/adcraft-backend/internal/telemetry"
)

// Claim is the verified identity carried by a session cookie.
type Claim struct {
	UID       string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionVerifier turns an opaque session token into a verified claim.
type SessionVerifier interface {
	VerifySession(ctx context.Context, rawToken string) (*Claim, error)
}

// cookieVerifier is the subset of *fbauth.Client used here.
type cookieVerifier interface {
	VerifySessionCookie(ctx context.Context, sessionCookie string) (*fbauth.Token, error)
	VerifySessionCookieAndCheckRevoked(ctx context.Context, sessionCookie string) (*fbauth.Token, error)
}

type FirebaseVerifier struct {
	client       cookieVerifier
	checkRevoked bool
	timeout      time.Duration
}

func NewFirebaseVerifier(client *fbauth.Client, checkRevoked bool, timeout time.Duration) *FirebaseVerifier {
	return newFirebaseVerifier(client, checkRevoked, timeout)
}

func newFirebaseVerifier(client cookieVerifier, checkRevoked bool, timeout time.Duration) *FirebaseVerifier {
	if !checkRevoked {
		slog.Warn("session revocation check disabled; revoked cookies stay valid until expiry")
	}
	return &FirebaseVerifier{client: client, checkRevoked: checkRevoked, timeout: timeout}
}

// VerifySession never tells the caller why a cookie was rejected. Expired,
// revoked, malformed and disabled-user cookies all come back as Unauthorized;
// the reason is logged and counted instead.
func (v *FirebaseVerifier) VerifySession(ctx context.Context, rawToken string) (*Claim, error) {
	const op = "auth.VerifySession"

	if rawToken == "" {
		telemetry.SessionVerificationsTotal.WithLabelValues("missing").Inc()
		return nil, apperr.New(apperr.Unauthorized, op, "missing session cookie")
	}

	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	var (
		tok *fbauth.Token
		err error
	)
	if v.checkRevoked {
		tok, err = v.client.VerifySessionCookieAndCheckRevoked(ctx, rawToken)
	} else {
		tok, err = v.client.VerifySessionCookie(ctx, rawToken)
	}
	if err != nil {
		reason := classify(ctx, err)
		telemetry.SessionVerificationsTotal.WithLabelValues(reason).Inc()

		switch reason {
		case "timeout":
			slog.Warn("session verification timed out", "error", err)
			return nil, apperr.Wrap(apperr.Timeout, op, err)
		case "cert_fetch", "unavailable":
			slog.Error("session verification backend failure", "reason", reason, "error", err)
			return nil, apperr.Wrap(apperr.Internal, op, err)
		default:
			slog.Info("session rejected", "reason", reason)
			return nil, apperr.Wrap(apperr.Unauthorized, op, err)
		}
	}

	telemetry.SessionVerificationsTotal.WithLabelValues("ok").Inc()
	return claimFromToken(tok), nil
}

func classify(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded),
		errorutils.IsDeadlineExceeded(err):
		return "timeout"
	case fbauth.IsSessionCookieExpired(err):
		return "expired"
	case fbauth.IsSessionCookieRevoked(err):
		return "revoked"
	case fbauth.IsUserDisabled(err):
		return "disabled"
	case fbauth.IsCertificateFetchFailed(err):
		return "cert_fetch"
	case fbauth.IsSessionCookieInvalid(err):
		return "invalid"
	case errorutils.IsUnavailable(err), errorutils.IsInternal(err):
		return "unavailable"
	default:
		return "invalid"
	}
}

func claimFromToken(tok *fbauth.Token) *Claim {
	c := &Claim{
		UID:       tok.UID,
		IssuedAt:  time.Unix(tok.IssuedAt, 0).UTC(),
		ExpiresAt: time.Unix(tok.Expires, 0).UTC(),
	}
	if email, ok := tok.Claims["email"].(string); ok {
		c.Email = email
	}
	return c
}
