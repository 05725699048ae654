// ABOUTME: Authentication endpoints: register, login, profile, password reset
// ABOUTME: Normalizes the backend's token payload into a bare bearer token

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// tokenPayload accepts a bare JSON string or an object carrying the token
type tokenPayload string

func (t *tokenPayload) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = tokenPayload(s)
		return nil
	}
	var obj struct {
		Token          string `json:"token"`
		AccessToken    string `json:"accessToken"`
		AccessTokenAlt string `json:"access_token"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	switch {
	case obj.Token != "":
		*t = tokenPayload(obj.Token)
	case obj.AccessToken != "":
		*t = tokenPayload(obj.AccessToken)
	default:
		*t = tokenPayload(obj.AccessTokenAlt)
	}
	return nil
}

var errMissingToken = errors.New("invalid response from backend: no token in response")

// Signup calls POST /auth and returns the issued token
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, error) {
	return c.issueToken(ctx, call{
		method:   http.MethodPost,
		path:     "/auth",
		body:     map[string]string{"name": name, "email": email, "password": password},
		fallback: "Signup failed",
	})
}

// Login calls POST /auth/login and returns the issued token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.issueToken(ctx, call{
		method:   http.MethodPost,
		path:     "/auth/login",
		body:     map[string]string{"email": email, "password": password},
		fallback: "Login failed",
	})
}

func (c *Client) issueToken(ctx context.Context, cl call) (string, error) {
	data, err := c.do(ctx, cl)
	if err != nil {
		return "", err
	}
	var tok tokenPayload
	if err := decode(data, &tok); err != nil {
		return "", err
	}
	if tok == "" {
		return "", errMissingToken
	}
	return string(tok), nil
}

// Profile calls GET /auth/profile. A null body yields (nil, nil).
func (c *Client) Profile(ctx context.Context) (*User, error) {
	data, err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/auth/profile",
		auth:     true,
		fallback: "Failed to get profile",
	})
	if err != nil {
		return nil, err
	}

	var user *User
	if err := decode(unwrap(data, "user"), &user); err != nil {
		return nil, err
	}
	return user, nil
}

// RequestPasswordReset calls POST /auth/request-password-reset
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/auth/request-password-reset",
		body:     map[string]string{"email": email},
		fallback: "Request password reset failed",
	})
	return err
}

// ResetPassword calls POST /auth/reset-password
func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	_, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/auth/reset-password",
		body:     map[string]string{"resetToken": resetToken, "newPassword": newPassword},
		fallback: "Reset password failed",
	})
	return err
}
