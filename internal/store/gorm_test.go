package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/linguo-app/linguo-auth/internal/db"
)

func openTestStore(t *testing.T, name string) *GormStore {
	t.Helper()
	conn, err := db.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return NewGormStore(conn)
}

func TestGormStore_UserRoundTrip(t *testing.T) {
	st := openTestStore(t, "gorm_users")
	ctx := context.Background()

	if _, err := st.GetUserByUsername(ctx, "nadia"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	created, err := st.CreateUser(ctx, CreateUserParams{
		Username:     "nadia",
		PasswordHash: "hash",
		Email:        strPtr("nadia@example.com"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}

	byName, err := st.GetUserByUsername(ctx, "nadia")
	if err != nil {
		t.Fatalf("lookup by username: %v", err)
	}
	if byName.ID != created.ID {
		t.Fatalf("expected id %q, got %q", created.ID, byName.ID)
	}
	if byName.Email == nil || *byName.Email != "nadia@example.com" {
		t.Fatalf("expected stored email to round-trip")
	}
	if byName.FullName != nil {
		t.Fatalf("expected omitted full name to stay nil")
	}

	byID, err := st.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("lookup by id: %v", err)
	}
	if byID.Username != "nadia" {
		t.Fatalf("expected username nadia, got %q", byID.Username)
	}
}

func TestGormStore_OTPUpsertAndDelete(t *testing.T) {
	st := openTestStore(t, "gorm_otps")
	ctx := context.Background()

	if errSet := st.SetOTP(ctx, "user@example.com", "1111"); errSet != nil {
		t.Fatalf("set: %v", errSet)
	}
	if errSet := st.SetOTP(ctx, "user@example.com", "2222"); errSet != nil {
		t.Fatalf("set again: %v", errSet)
	}

	entry, err := st.GetOTP(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry.Code != "2222" {
		t.Fatalf("expected latest code 2222, got %q", entry.Code)
	}

	// Reads do not consume.
	if _, err := st.GetOTP(ctx, "user@example.com"); err != nil {
		t.Fatalf("second get: %v", err)
	}

	if errDelete := st.DeleteOTP(ctx, "user@example.com"); errDelete != nil {
		t.Fatalf("delete: %v", errDelete)
	}
	if _, err := st.GetOTP(ctx, "user@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
