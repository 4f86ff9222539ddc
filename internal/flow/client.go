package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// User mirrors the backend's user payload.
type User struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	FullName    *string `json:"fullName"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
}

// SendOTPResponse is the payload of POST /api/otp/send. OTP is only set
// when the server echoes the code for development builds.
type SendOTPResponse struct {
	Message string `json:"message"`
	OTP     string `json:"otp"`
}

// VerifyOTPResponse is the payload of POST /api/otp/verify. The endpoint
// answers 200 for both outcomes; Success carries the verdict.
type VerifyOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginResponse is the payload of POST /api/login on success.
type LoginResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// RegisterRequest is the payload of POST /api/register. Exactly one of
// Email and PhoneNumber is set, depending on the shape of the contact.
type RegisterRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	FullName    *string `json:"fullName,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// Client is the backend surface the controller calls. Tests substitute a
// fake; production uses HTTPClient.
type Client interface {
	SendOTP(ctx context.Context, contact string) (*SendOTPResponse, error)
	VerifyOTP(ctx context.Context, contact, code string) (*VerifyOTPResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, username, password string) (*LoginResponse, error)
}

// APIError is a non-2xx response from the backend, carrying the server's
// message field when one was present.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// HTTPClient talks to the auth API over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient constructs a client for the API at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// SendOTP requests a one-time code for the given contact.
func (c *HTTPClient) SendOTP(ctx context.Context, contact string) (*SendOTPResponse, error) {
	var resp SendOTPResponse
	if err := c.postJSON(ctx, "/api/otp/send", map[string]string{"contact": contact}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyOTP checks a one-time code for the given contact.
func (c *HTTPClient) VerifyOTP(ctx context.Context, contact, code string) (*VerifyOTPResponse, error) {
	var resp VerifyOTPResponse
	if err := c.postJSON(ctx, "/api/otp/verify", map[string]string{"contact": contact, "otp": code}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns the stored user.
func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.postJSON(ctx, "/api/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks credentials and returns the matched user.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	body := map[string]string{"username": username, "password": password}
	if err := c.postJSON(ctx, "/api/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// postJSON posts body as JSON and decodes the response into out. Non-2xx
// responses become an *APIError with the server's message field.
func (c *HTTPClient) postJSON(ctx context.Context, path string, body, out any) error {
	payload, errMarshal := json.Marshal(body)
	if errMarshal != nil {
		return fmt.Errorf("encode request: %w", errMarshal)
	}

	req, errReq := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if errReq != nil {
		return fmt.Errorf("build request: %w", errReq)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, errDo := c.client.Do(req)
	if errDo != nil {
		return fmt.Errorf("post %s: %w", path, errDo)
	}
	defer func() { _ = resp.Body.Close() }()

	data, errRead := io.ReadAll(resp.Body)
	if errRead != nil {
		return fmt.Errorf("read response: %w", errRead)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: "Request failed"}
		var serverMsg struct {
			Message string `json:"message"`
		}
		if errDecode := json.Unmarshal(data, &serverMsg); errDecode == nil && serverMsg.Message != "" {
			apiErr.Message = serverMsg.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if errDecode := json.Unmarshal(data, out); errDecode != nil {
		return fmt.Errorf("decode response: %w", errDecode)
	}
	return nil
}
