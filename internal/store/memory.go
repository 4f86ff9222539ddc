package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linguo-app/linguo-auth/internal/models"
)

// MemoryStore keeps users and OTP codes in process-local maps.
// All state is lost on restart. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*models.User
	otps  map[string]*models.OTPEntry

	nowFn func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*models.User),
		otps:  make(map[string]*models.OTPEntry),
		nowFn: time.Now,
	}
}

// GetUser looks up a user by ID.
func (s *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(user), nil
}

// GetUserByUsername scans for an exact username match.
func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, ErrNotFound
}

// CreateUser inserts a new user under a generated ID and returns the stored record.
func (s *MemoryStore) CreateUser(_ context.Context, params CreateUserParams) (*models.User, error) {
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     params.Username,
		PasswordHash: params.PasswordHash,
		FullName:     params.FullName,
		Email:        params.Email,
		PhoneNumber:  params.PhoneNumber,
		CreatedAt:    s.nowFn().UTC(),
	}
	s.mu.Lock()
	s.users[user.ID] = user
	s.mu.Unlock()
	return cloneUser(user), nil
}

// SetOTP replaces any pending code for the contact.
func (s *MemoryStore) SetOTP(_ context.Context, contact, code string) error {
	s.mu.Lock()
	s.otps[contact] = &models.OTPEntry{
		Contact:   contact,
		Code:      code,
		UpdatedAt: s.nowFn().UTC(),
	}
	s.mu.Unlock()
	return nil
}

// GetOTP returns the pending entry for the contact without consuming it.
func (s *MemoryStore) GetOTP(_ context.Context, contact string) (*models.OTPEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.otps[contact]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *entry
	return &clone, nil
}

// DeleteOTP removes the pending entry for the contact.
func (s *MemoryStore) DeleteOTP(_ context.Context, contact string) error {
	s.mu.Lock()
	delete(s.otps, contact)
	s.mu.Unlock()
	return nil
}

// cloneUser copies a record so callers cannot mutate stored state.
func cloneUser(user *models.User) *models.User {
	clone := *user
	return &clone
}
