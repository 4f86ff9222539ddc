// Package flow implements the signup/login step controller: an explicit
// state machine deciding which fields are validated and which backend call
// fires on submit.
//
// State is an immutable value threaded through every call. Nothing in this
// package captures the current step or mode in a mutable reference, so a
// validation pass can never observe a stale step.
package flow

// Mode selects between the login form and the multi-step signup form.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// Step identifies the signup sub-step. Meaningful only when Mode is signup.
type Step string

const (
	StepCredentials Step = "credentials"
	StepOTP         Step = "otp"
	StepAccount     Step = "account"
)

// Fields carries the accumulated form values across steps. Validation tags
// hold the per-field constraints; which fields are checked depends on the
// active mode and step.
type Fields struct {
	FullName string `json:"fullName" validate:"min=2"`
	Contact  string `json:"contact" validate:"min=5"`
	OTP      string `json:"otp" validate:"len=4"`
	Username string `json:"username" validate:"min=3"`
	Password string `json:"password" validate:"min=6"`
}

// State is the full controller state: mode, signup step, and accumulated
// field values.
type State struct {
	Mode   Mode
	Step   Step
	Fields Fields
}

// NewState returns the initial state: login mode with a cleared form.
func NewState() State {
	return State{
		Mode: ModeLogin,
		Step: StepCredentials,
	}
}
