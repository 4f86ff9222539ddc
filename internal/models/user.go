package models

import "time"

// User represents a registered account.
type User struct {
	ID string `gorm:"type:text;primaryKey" json:"id"` // Generated identifier, immutable.

	Username     string `gorm:"type:text;not null;uniqueIndex" json:"username"` // Unique login name.
	PasswordHash string `gorm:"type:text;not null" json:"-"`                    // bcrypt hash, never serialized.

	FullName    *string `gorm:"type:text" json:"fullName"`    // Display name, null when not supplied.
	Email       *string `gorm:"type:text" json:"email"`       // Email address, null when not supplied.
	PhoneNumber *string `gorm:"type:text" json:"phoneNumber"` // Phone number, null when not supplied.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"` // Creation timestamp.
}
