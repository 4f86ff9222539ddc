// Package otp issues and verifies one-time verification codes for contacts.
package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	pqotp "github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"

	"github.com/linguo-app/linguo-auth/internal/security"
	"github.com/linguo-app/linguo-auth/internal/store"
)

// DefaultDigits is the code length used when the policy leaves it unset.
const DefaultDigits = 4

// Policy controls code shape and lifetime. TTL of zero disables expiry and
// SingleUse of false leaves a verified code reusable, which matches the
// behavior the dev flow expects; both knobs are explicit so deployments can
// tighten them.
type Policy struct {
	Digits    int
	TTL       time.Duration
	SingleUse bool
}

// Service issues codes into the store and checks them against it.
type Service struct {
	store  store.Store
	policy Policy
	nowFn  func() time.Time
}

// NewService constructs a Service with the given backing store and policy.
func NewService(st store.Store, policy Policy) *Service {
	if policy.Digits <= 0 {
		policy.Digits = DefaultDigits
	}
	return &Service{
		store:  st,
		policy: policy,
		nowFn:  time.Now,
	}
}

// Issue generates a fresh code for the contact, replacing any pending one.
func (s *Service) Issue(ctx context.Context, contact string) (string, error) {
	code, err := generateCode(s.policy.Digits)
	if err != nil {
		return "", err
	}
	if errSet := s.store.SetOTP(ctx, contact, code); errSet != nil {
		return "", errSet
	}
	return code, nil
}

// Verify reports whether the code matches the pending entry for the contact.
// A missing or expired entry is a plain mismatch, not an error. When the
// policy is single-use, a successful match consumes the entry.
func (s *Service) Verify(ctx context.Context, contact, code string) (bool, error) {
	entry, err := s.store.GetOTP(ctx, contact)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if s.policy.TTL > 0 && s.nowFn().Sub(entry.UpdatedAt) > s.policy.TTL {
		if errDelete := s.store.DeleteOTP(ctx, contact); errDelete != nil {
			return false, errDelete
		}
		return false, nil
	}

	if subtle.ConstantTimeCompare([]byte(entry.Code), []byte(code)) != 1 {
		return false, nil
	}

	if s.policy.SingleUse {
		if errDelete := s.store.DeleteOTP(ctx, contact); errDelete != nil {
			return false, errDelete
		}
	}
	return true, nil
}

// generateCode derives a numeric code of the given length from a one-off
// random HOTP secret.
func generateCode(digits int) (string, error) {
	secret, err := security.GenerateRandomString(20)
	if err != nil {
		return "", err
	}
	code, errGen := hotp.GenerateCodeCustom(secret, 0, hotp.ValidateOpts{
		Digits:    pqotp.Digits(digits),
		Algorithm: pqotp.AlgorithmSHA1,
	})
	if errGen != nil {
		return "", fmt.Errorf("otp: generate code: %w", errGen)
	}
	return code, nil
}
