package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/linguo-app/linguo-auth/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore backs the Store contract with a SQLite database. With the default
// in-memory DSN it behaves like MemoryStore: nothing survives a restart.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore constructs a GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// GetUser looks up a user by ID.
func (s *GormStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if errFind := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get user: %w", errFind)
	}
	return &user, nil
}

// GetUserByUsername looks up a user by exact username.
func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if errFind := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get user by username: %w", errFind)
	}
	return &user, nil
}

// CreateUser inserts a new user under a generated ID and returns the stored record.
func (s *GormStore) CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error) {
	user := models.User{
		ID:           uuid.NewString(),
		Username:     params.Username,
		PasswordHash: params.PasswordHash,
		FullName:     params.FullName,
		Email:        params.Email,
		PhoneNumber:  params.PhoneNumber,
	}
	if errCreate := s.db.WithContext(ctx).Create(&user).Error; errCreate != nil {
		return nil, fmt.Errorf("store: create user: %w", errCreate)
	}
	return &user, nil
}

// SetOTP upserts the pending code for the contact.
func (s *GormStore) SetOTP(ctx context.Context, contact, code string) error {
	entry := models.OTPEntry{
		Contact: contact,
		Code:    code,
	}
	if errUpsert := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contact"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "updated_at"}),
	}).Create(&entry).Error; errUpsert != nil {
		return fmt.Errorf("store: set otp: %w", errUpsert)
	}
	return nil
}

// GetOTP returns the pending entry for the contact without consuming it.
func (s *GormStore) GetOTP(ctx context.Context, contact string) (*models.OTPEntry, error) {
	var entry models.OTPEntry
	if errFind := s.db.WithContext(ctx).Where("contact = ?", contact).First(&entry).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get otp: %w", errFind)
	}
	return &entry, nil
}

// DeleteOTP removes the pending entry for the contact.
func (s *GormStore) DeleteOTP(ctx context.Context, contact string) error {
	if errDelete := s.db.WithContext(ctx).Where("contact = ?", contact).Delete(&models.OTPEntry{}).Error; errDelete != nil {
		return fmt.Errorf("store: delete otp: %w", errDelete)
	}
	return nil
}
