package flow

import (
	"context"
	"strings"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// MessageTypeOAuthSuccess is the window message type posted by the mock
// social login consent page.
const MessageTypeOAuthSuccess = "oauth-success"

// Outcome reports what a submit produced: field-level validation messages,
// a toast for the user, and on success the affected user.
type Outcome struct {
	OK          bool
	FieldErrors map[string]string
	Toast       string
	User        *User
	// DevCode is the echoed OTP when the backend returns codes for
	// development builds. Empty in production.
	DevCode string
}

// AuthMessage is a cross-window message received from the consent popup.
type AuthMessage struct {
	Type     string `json:"type"`
	Provider string `json:"provider"`
}

// Controller drives the auth flow. Submit dispatches on the state's mode
// and step, so adding a step means extending one switch rather than
// chasing mutable flags.
type Controller struct {
	client Client
	schema *schema
	busy   atomic.Bool
}

// NewController constructs a controller calling the given backend client.
func NewController(client Client) *Controller {
	return &Controller{
		client: client,
		schema: newSchema(),
	}
}

// Busy reports whether a submit is currently in flight.
func (ctl *Controller) Busy() bool {
	return ctl.busy.Load()
}

// Submit validates the fields relevant to the current state and, if they
// pass, performs the state's backend call. It returns the next state and
// the outcome. While a submit is in flight, further submits are dropped
// and return the state unchanged.
func (ctl *Controller) Submit(ctx context.Context, s State) (State, Outcome) {
	if !ctl.busy.CompareAndSwap(false, true) {
		return s, Outcome{}
	}
	defer ctl.busy.Store(false)

	if errs := ctl.schema.check(s); len(errs) > 0 {
		return s, Outcome{FieldErrors: errs}
	}

	if s.Mode == ModeLogin {
		return ctl.submitLogin(ctx, s)
	}
	switch s.Step {
	case StepOTP:
		return ctl.submitOTP(ctx, s)
	case StepAccount:
		return ctl.submitAccount(ctx, s)
	default:
		return ctl.submitCredentials(ctx, s)
	}
}

// ToggleMode switches between login and signup. Both directions reset the
// signup step and clear every field, so a previous attempt never leaks
// into the other form.
func (ctl *Controller) ToggleMode(s State) State {
	next := NewState()
	if s.Mode == ModeLogin {
		next.Mode = ModeSignup
	}
	return next
}

// HandleAuthMessage processes a window message from the social login
// consent popup. Messages from foreign origins or with an unknown type are
// dropped. A success message only surfaces a notice; the auth state does
// not change, since mock providers establish no session.
func (ctl *Controller) HandleAuthMessage(s State, origin, selfOrigin string, msg AuthMessage) (State, Outcome) {
	if origin == "" || origin != selfOrigin {
		log.WithField("origin", origin).Debug("dropping auth message from foreign origin")
		return s, Outcome{}
	}
	if msg.Type != MessageTypeOAuthSuccess {
		return s, Outcome{}
	}
	return s, Outcome{OK: true, Toast: "Signed in with " + providerLabel(msg.Provider)}
}

func (ctl *Controller) submitLogin(ctx context.Context, s State) (State, Outcome) {
	resp, err := ctl.client.Login(ctx, s.Fields.Username, s.Fields.Password)
	if err != nil {
		return s, failureOutcome(err, "Login failed")
	}
	return s, Outcome{OK: true, Toast: resp.Message, User: resp.User}
}

func (ctl *Controller) submitCredentials(ctx context.Context, s State) (State, Outcome) {
	resp, err := ctl.client.SendOTP(ctx, s.Fields.Contact)
	if err != nil {
		return s, failureOutcome(err, "Failed to send OTP")
	}
	next := s
	next.Step = StepOTP
	return next, Outcome{OK: true, Toast: resp.Message, DevCode: resp.OTP}
}

func (ctl *Controller) submitOTP(ctx context.Context, s State) (State, Outcome) {
	resp, err := ctl.client.VerifyOTP(ctx, s.Fields.Contact, s.Fields.OTP)
	if err != nil {
		return s, failureOutcome(err, "Failed to verify OTP")
	}
	if !resp.Success {
		return s, Outcome{Toast: resp.Message}
	}
	next := s
	next.Step = StepAccount
	return next, Outcome{OK: true, Toast: resp.Message}
}

func (ctl *Controller) submitAccount(ctx context.Context, s State) (State, Outcome) {
	fullName := s.Fields.FullName
	contact := s.Fields.Contact
	req := RegisterRequest{
		Username: s.Fields.Username,
		Password: s.Fields.Password,
		FullName: &fullName,
	}
	if strings.Contains(contact, "@") {
		req.Email = &contact
	} else {
		req.PhoneNumber = &contact
	}

	user, err := ctl.client.Register(ctx, req)
	if err != nil {
		return s, failureOutcome(err, "Registration failed")
	}
	return NewState(), Outcome{OK: true, Toast: "Account created. Please log in.", User: user}
}

// failureOutcome turns a client error into a toast. API errors carry the
// server's message; transport errors fall back to the given default.
func failureOutcome(err error, fallback string) Outcome {
	if apiErr, ok := err.(*APIError); ok && apiErr.Message != "" {
		return Outcome{Toast: apiErr.Message}
	}
	log.WithError(err).Warn("auth request failed")
	return Outcome{Toast: fallback}
}

// providerLabel upper-cases the first letter of a provider name for
// display.
func providerLabel(provider string) string {
	if provider == "" {
		return "provider"
	}
	return strings.ToUpper(provider[:1]) + provider[1:]
}
