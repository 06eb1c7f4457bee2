package auth

import (
	"context"
	"encoding/json"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/adcraft-app/adcraft-backend/internal/apperr"
)

// NewFirebaseClient initializes the Firebase Admin SDK from a service account
// JSON blob and returns its Auth client. It is called once at startup; a
// missing or malformed blob is a Configuration error and the process must
// not start.
func NewFirebaseClient(ctx context.Context, serviceAccountJSON string) (*fbauth.Client, error) {
	const op = "auth.NewFirebaseClient"

	blob := strings.TrimSpace(serviceAccountJSON)
	if blob == "" {
		return nil, apperr.New(apperr.Configuration, op, "FIREBASE_ADMIN_SERVICE_ACCOUNT_JSON is required")
	}

	var sa struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal([]byte(blob), &sa); err != nil {
		return nil, apperr.Wrap(apperr.Configuration, op, err)
	}
	if sa.ProjectID == "" {
		return nil, apperr.New(apperr.Configuration, op, "service account JSON has no project_id")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: sa.ProjectID}, option.WithCredentialsJSON([]byte(blob)))
	if err != nil {
		return nil, apperr.Wrap(apperr.Configuration, op, err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Configuration, op, err)
	}
	return client, nil
}
