// Package apperr defines the failure taxonomy shared by every layer.
//
// Services and middleware classify failures with a Kind; the HTTP layer maps
// the Kind to a status code and a stable public code. Wrapped causes are for
// server-side logs only and never leave the process.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	Internal Kind = iota
	Unauthorized
	UserNotProvisioned
	// NotFoundOrForbidden covers both absent and foreign resources so callers
	// cannot probe for existence.
	NotFoundOrForbidden
	BadRequest
	Timeout
	Configuration
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case UserNotProvisioned:
		return "user_not_provisioned"
	case NotFoundOrForbidden:
		return "not_found"
	case BadRequest:
		return "bad_request"
	case Timeout:
		return "timeout"
	case Configuration:
		return "configuration_error"
	default:
		return "internal_error"
	}
}

// Code is the public, stable error code sent to clients.
func (k Kind) Code() string { return k.String() }

func (k Kind) HTTPStatus() int {
	switch k {
	case Unauthorized:
		return http.StatusUnauthorized
	case UserNotProvisioned:
		return http.StatusForbidden
	case NotFoundOrForbidden:
		return http.StatusNotFound
	case BadRequest:
		return http.StatusBadRequest
	case Timeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) Retryable() bool { return k == Timeout }

// Error is a classified failure. Msg is safe to show to clients only for
// BadRequest; for every other kind it is logged and replaced by the code.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// FromStore classifies an infrastructure error: deadlines, cancelled
// statements and serialization conflicts become Timeout, everything else
// Internal. Already classified errors pass through.
func FromStore(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || transientPg(err) {
		return Wrap(Timeout, op, err)
	}
	return Wrap(Internal, op, err)
}

// transientPg reports Postgres errors worth retrying: query_canceled
// (statement_timeout), serialization_failure, deadlock_detected, and the
// connection exception class.
func transientPg(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "57014", "40001", "40P01":
		return true
	}
	return strings.HasPrefix(pgErr.Code, "08")
}

// KindOf reports the Kind of err. Unclassified errors are Internal, except
// context deadlines which are Timeout.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	return Internal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// PublicMessage returns the client-facing message for err.
func PublicMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind == BadRequest && ae.Msg != "" {
		return ae.Msg
	}
	return ""
}
