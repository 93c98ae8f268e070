package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/sanghyxuk/shieldhub-cli/models"
)

// RegisterRequest is sent to POST /api/auth/register.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// LoginResponse is returned by the login endpoints.
type LoginResponse struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// OTPCheckResponse is returned by POST /api/auth/check-otp.
type OTPCheckResponse struct {
	OTPEnabled bool `json:"otpEnabled"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.postJSON(ctx, "/api/auth/register", req, nil, false)
}

// CheckOTP reports whether the account requires a one-time code at login.
func (c *Client) CheckOTP(ctx context.Context, username string) (bool, error) {
	var out OTPCheckResponse
	err := c.postJSON(ctx, "/api/auth/check-otp", map[string]string{"username": username}, &out, false)
	if err != nil {
		return false, err
	}
	return out.OTPEnabled, nil
}

// Login authenticates and persists the returned session.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	payload := map[string]string{"username": username, "password": password}
	if err := c.postJSON(ctx, "/api/auth/login", payload, &out, false); err != nil {
		return nil, err
	}
	return &out, c.storeSession(out)
}

// LoginWithOTP authenticates with an additional one-time code.
func (c *Client) LoginWithOTP(ctx context.Context, username, password, otpCode string) (*LoginResponse, error) {
	var out LoginResponse
	payload := map[string]string{
		"username": username,
		"password": password,
		"otpCode":  otpCode,
	}
	if err := c.postJSON(ctx, "/api/auth/login-with-otp", payload, &out, false); err != nil {
		return nil, err
	}
	return &out, c.storeSession(out)
}

// Logout invalidates the server-side session. Local credentials are cleared
// even when the server call fails; the user asked to be logged out.
func (c *Client) Logout(ctx context.Context) error {
	err := c.postJSON(ctx, "/api/auth/logout", nil, nil, true)
	if err != nil {
		slog.Warn("logout request failed; clearing local session anyway", "error", err)
	}
	if c.sessions != nil {
		if clearErr := c.sessions.Clear(); clearErr != nil {
			return clearErr
		}
	}
	return err
}

// ChangePassword rotates the account password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	payload := map[string]string{"currentPassword": current, "newPassword": next}
	return c.sendJSON(ctx, http.MethodPut, "/api/auth/change-password", payload, nil, true)
}

// ResetPassword triggers a reset mail for the given address.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	return c.postJSON(ctx, "/api/auth/reset-password", map[string]string{"email": email}, nil, false)
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FindID asks the server to recover a username. The identifier is detected
// as an email address or a phone number, matching the server contract of
// accepting exactly one of the two fields.
func (c *Client) FindID(ctx context.Context, identifier string) error {
	payload := map[string]string{"phoneNumber": identifier}
	if emailPattern.MatchString(identifier) {
		payload = map[string]string{"email": identifier}
	}
	return c.postJSON(ctx, "/api/auth/find-id", payload, nil, false)
}

// DeleteAccount permanently removes the account. The password travels in the
// DELETE body per the server contract. Local credentials are cleared on
// success.
func (c *Client) DeleteAccount(ctx context.Context, password string) error {
	payload := map[string]string{"password": password}
	if err := c.sendJSON(ctx, http.MethodDelete, "/api/auth/delete-account", payload, nil, true); err != nil {
		return err
	}
	if c.sessions != nil {
		return c.sessions.Clear()
	}
	return nil
}

func (c *Client) storeSession(res LoginResponse) error {
	if res.Token == "" {
		return fmt.Errorf("server returned an empty token")
	}
	if c.sessions == nil {
		return nil
	}
	return c.sessions.Set(models.Session{
		Token:    res.Token,
		Username: res.Username,
		Name:     res.Name,
	})
}
