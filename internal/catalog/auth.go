package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidCredentials is returned when the credential API rejects a login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is the authenticated profile returned by the credential API.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Image     string `json:"image"`
	Role      string `json:"role"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login exchanges credentials for a bearer token, then loads the profile
// behind it. A 400/401 from the credential API maps to ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, username, password string) (*User, string, error) {
	body, _ := json.Marshal(map[string]any{
		"username":      username,
		"password":      password,
		"expiresInMins": 60,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return nil, "", ErrInvalidCredentials
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &APIError{Status: resp.StatusCode}
	}

	var login loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return nil, "", fmt.Errorf("decode login: %w", err)
	}

	var user User
	if err := c.getJSON(ctx, "/auth/me", login.AccessToken, &user); err != nil {
		return nil, "", fmt.Errorf("load profile: %w", err)
	}
	if user.Role != "admin" {
		user.Role = "user"
	}
	return &user, login.AccessToken, nil
}
