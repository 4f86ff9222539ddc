// Package store holds user accounts and pending OTP codes.
//
// Two keyspaces are kept independent: users by generated ID and OTP codes by
// contact string. Username uniqueness is NOT enforced here; the route layer
// checks GetUserByUsername before calling CreateUser.
package store

import (
	"context"
	"errors"

	"github.com/linguo-app/linguo-auth/internal/models"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// CreateUserParams holds inputs for user creation. Optional fields stay nil
// when the caller did not supply them.
type CreateUserParams struct {
	Username     string
	PasswordHash string
	FullName     *string
	Email        *string
	PhoneNumber  *string
}

// Store is the account and OTP repository contract.
type Store interface {
	// GetUser looks up a user by generated ID.
	GetUser(ctx context.Context, id string) (*models.User, error)
	// GetUserByUsername looks up a user by exact, case-sensitive username.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// CreateUser generates a new unique ID, inserts the record, and returns it.
	CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error)

	// SetOTP upserts the pending code for a contact, replacing any prior code.
	SetOTP(ctx context.Context, contact, code string) error
	// GetOTP returns the pending entry for a contact without consuming it.
	GetOTP(ctx context.Context, contact string) (*models.OTPEntry, error)
	// DeleteOTP removes the pending entry for a contact; absent entries are a no-op.
	DeleteOTP(ctx context.Context, contact string) error
}
