package models

import "time"

// OTPEntry holds the pending verification code for a contact.
// A contact has at most one outstanding code; sending again overwrites it.
type OTPEntry struct {
	Contact string `gorm:"type:text;primaryKey"` // Email address or phone number.
	Code    string `gorm:"type:text;not null"`   // Numeric verification code.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last (re)issue time, used for expiry checks.
}
