package users

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// User is the internal identity record. FirebaseUID joins verified session
// claims to the row and never changes once set.
type User struct {
	ID          string    `db:"id" json:"id"`
	FirebaseUID string    `db:"firebase_uid" json:"firebaseUid"`
	Email       *string   `db:"email" json:"email,omitempty"`
	DisplayName *string   `db:"display_name" json:"displayName,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type UpsertUser struct {
	FirebaseUID string
	Email       string
	DisplayName string
}
