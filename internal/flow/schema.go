package flow

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Field sets checked per state. Signup steps accumulate: each later step
// re-checks everything the earlier steps collected.
var (
	loginFields       = []string{"Username", "Password"}
	credentialsFields = []string{"FullName", "Contact"}
	otpFields         = []string{"FullName", "Contact", "OTP"}
	accountFields     = []string{"FullName", "Contact", "OTP", "Username", "Password"}
)

// fieldKeys maps struct field names to the keys used in FieldErrors,
// matching the JSON names of Fields.
var fieldKeys = map[string]string{
	"FullName": "fullName",
	"Contact":  "contact",
	"OTP":      "otp",
	"Username": "username",
	"Password": "password",
}

// fieldMessages holds the human-readable message shown when a field fails
// its constraint. One message per field; the constraints are simple enough
// that a single message covers both the empty and too-short cases.
var fieldMessages = map[string]string{
	"FullName": "Full name must be at least 2 characters",
	"Contact":  "Enter a valid email or phone number",
	"OTP":      "OTP must be exactly 4 digits",
	"Username": "Username must be at least 3 characters",
	"Password": "Password must be at least 6 characters",
}

// schema validates the form fields relevant to a given state.
type schema struct {
	validate *validator.Validate
}

func newSchema() *schema {
	return &schema{validate: validator.New()}
}

// activeFields returns the field names validated for the given state.
func activeFields(s State) []string {
	if s.Mode == ModeLogin {
		return loginFields
	}
	switch s.Step {
	case StepOTP:
		return otpFields
	case StepAccount:
		return accountFields
	default:
		return credentialsFields
	}
}

// check validates the state's fields against the active field set and
// returns human-readable messages keyed by field name. A nil map means the
// fields passed.
func (sc *schema) check(s State) map[string]string {
	err := sc.validate.StructPartial(s.Fields, activeFields(s)...)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"form": "Please check the form and try again"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.StructField()
		key, ok := fieldKeys[name]
		if !ok {
			key = name
		}
		msg, ok := fieldMessages[name]
		if !ok {
			msg = "Invalid value"
		}
		out[key] = msg
	}
	return out
}
