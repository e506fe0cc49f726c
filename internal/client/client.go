// ABOUTME: HTTP client for the PropTrack auth/profile API
// ABOUTME: Wraps API calls with typed requests, responses, and error mapping

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Role identifies the authorization role assigned to a user
type Role string

const (
	RoleLandlord Role = "LANDLORD"
	RoleTenant   Role = "TENANT"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether the role is one the platform knows about
func (r Role) Valid() bool {
	switch r {
	case RoleLandlord, RoleTenant, RoleAdmin:
		return true
	}
	return false
}

// User is the authenticated identity snapshot returned by the backend
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
	Phone     string `json:"phone,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// AuthResponse is the token+user payload from login and register
type AuthResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

// RegisterRequest is the registration payload.
// Role may only be TENANT or LANDLORD; the backend rejects ADMIN here.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      Role   `json:"role,omitempty"`
}

// LoginRequest is the credential payload for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileUpdate carries the editable profile fields for PATCH /api/auth/me/.
// Username, email, and role are never sent from the client.
type ProfileUpdate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Timezone  string `json:"timezone"`
	Bio       string `json:"bio"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Client is the API client for the PropTrack backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Register calls POST /api/auth/register/
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var auth AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register/", "", req, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Login calls POST /api/auth/login/
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var auth AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login/", "", req, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Me calls GET /api/auth/me/ with the given access token
func (c *Client) Me(ctx context.Context, accessToken string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me/", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe calls PATCH /api/auth/me/ with the editable profile fields
func (c *Client) UpdateMe(ctx context.Context, accessToken string, update ProfileUpdate) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPatch, "/api/auth/me/", accessToken, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword calls POST /api/auth/change-password/
func (c *Client) ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) error {
	req := changePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	return c.do(ctx, http.MethodPost, "/api/auth/change-password/", accessToken, req, nil)
}

// do issues a request and decodes the response into out (unless out is nil).
// Non-2xx responses become *APIError; transport failures become *NetworkError.
func (c *Client) do(ctx context.Context, method, path, accessToken string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts transport failures to NetworkError,
// with context errors mapped to friendlier causes
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return &NetworkError{URL: c.baseURL, Err: fmt.Errorf("request canceled")}
	}
	if ctx.Err() == context.DeadlineExceeded {
		return &NetworkError{URL: c.baseURL, Err: fmt.Errorf("request timed out")}
	}
	return &NetworkError{URL: c.baseURL, Err: err}
}
