package flow_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/linguo-app/linguo-auth/internal/app"
	"github.com/linguo-app/linguo-auth/internal/config"
	"github.com/linguo-app/linguo-auth/internal/flow"
	"github.com/linguo-app/linguo-auth/internal/store"
)

// newTestServer runs the real router against an in-memory store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	engine := app.NewEngine(cfg, store.NewMemoryStore())
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClientFullSignupAndLogin(t *testing.T) {
	srv := newTestServer(t)
	client := flow.NewHTTPClient(srv.URL)
	ctx := context.Background()

	sent, errSend := client.SendOTP(ctx, "ana@example.com")
	if errSend != nil {
		t.Fatalf("SendOTP: %v", errSend)
	}
	if sent.OTP == "" {
		t.Fatal("expected echoed dev code")
	}

	verified, errVerify := client.VerifyOTP(ctx, "ana@example.com", sent.OTP)
	if errVerify != nil {
		t.Fatalf("VerifyOTP: %v", errVerify)
	}
	if !verified.Success {
		t.Fatalf("correct code rejected: %+v", verified)
	}

	email := "ana@example.com"
	fullName := "Ana Silva"
	user, errReg := client.Register(ctx, flow.RegisterRequest{
		Username: "ana",
		Password: "secret123",
		FullName: &fullName,
		Email:    &email,
	})
	if errReg != nil {
		t.Fatalf("Register: %v", errReg)
	}
	if user.ID == "" || user.Username != "ana" {
		t.Fatalf("user = %+v", user)
	}

	logged, errLogin := client.Login(ctx, "ana", "secret123")
	if errLogin != nil {
		t.Fatalf("Login: %v", errLogin)
	}
	if logged.User == nil || logged.User.ID != user.ID {
		t.Fatalf("login user = %+v", logged.User)
	}
}

func TestHTTPClientWrongOTPIsNotAnError(t *testing.T) {
	srv := newTestServer(t)
	client := flow.NewHTTPClient(srv.URL)
	ctx := context.Background()

	if _, err := client.SendOTP(ctx, "ben@example.com"); err != nil {
		t.Fatalf("SendOTP: %v", err)
	}

	verified, errVerify := client.VerifyOTP(ctx, "ben@example.com", "0000")
	if errVerify != nil {
		t.Fatalf("wrong code should answer 200, got %v", errVerify)
	}
	if verified.Success {
		t.Fatal("wrong code verified")
	}
}

func TestHTTPClientSurfacesAPIErrors(t *testing.T) {
	srv := newTestServer(t)
	client := flow.NewHTTPClient(srv.URL)
	ctx := context.Background()

	_, errLogin := client.Login(ctx, "nobody", "secret123")
	apiErr, ok := errLogin.(*flow.APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %v", errLogin)
	}
	if apiErr.Status != 401 {
		t.Fatalf("status = %d", apiErr.Status)
	}
	if apiErr.Message != "Invalid username or password" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestHTTPClientDuplicateUsername(t *testing.T) {
	srv := newTestServer(t)
	client := flow.NewHTTPClient(srv.URL)
	ctx := context.Background()

	req := flow.RegisterRequest{Username: "dupe", Password: "secret123"}
	if _, err := client.Register(ctx, req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, errDupe := client.Register(ctx, req)
	apiErr, ok := errDupe.(*flow.APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %v", errDupe)
	}
	if apiErr.Message != "Username already exists" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}
