package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Parthg59/expense-tracker/internal/core"
)

var (
	ErrEmptyCredentials = errors.New("username and password are required")
	ErrLoginFailed      = errors.New("login failed")
)

// Authenticator verifies credentials and returns the user record.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (core.User, error)
}

// DemoAuthenticator accepts any non-empty credentials after a fixed
// delay. It stands in for a real identity provider during development
// and demos.
type DemoAuthenticator struct {
	Delay time.Duration
}

func NewDemoAuthenticator(delay time.Duration) *DemoAuthenticator {
	return &DemoAuthenticator{Delay: delay}
}

func (a *DemoAuthenticator) Authenticate(ctx context.Context, username, password string) (core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return core.User{}, ErrEmptyCredentials
	}

	if a.Delay > 0 {
		select {
		case <-time.After(a.Delay):
		case <-ctx.Done():
			return core.User{}, ctx.Err()
		}
	}

	return core.User{
		ID:       uuid.NewString(),
		Username: username,
	}, nil
}

// RemoteAuthenticator makes a single POST to a configured endpoint.
// No retry; a failed call leaves no partial session state behind.
type RemoteAuthenticator struct {
	Endpoint string
	Client   *http.Client
}

func NewRemoteAuthenticator(endpoint string) *RemoteAuthenticator {
	return &RemoteAuthenticator{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type remoteLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type remoteLoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user,omitempty"`
}

func (a *RemoteAuthenticator) Authenticate(ctx context.Context, username, password string) (core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return core.User{}, ErrEmptyCredentials
	}

	body, err := json.Marshal(remoteLoginRequest{Username: username, Password: password})
	if err != nil {
		return core.User{}, fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Endpoint, bytes.NewReader(body))
	if err != nil {
		return core.User{}, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return core.User{}, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	var parsed remoteLoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return core.User{}, fmt.Errorf("decode login response: %w", err)
	}

	if !parsed.Success {
		reason := parsed.Message
		if reason == "" {
			reason = "invalid credentials"
		}
		return core.User{}, fmt.Errorf("%w: %s", ErrLoginFailed, reason)
	}

	user := core.User{ID: parsed.User.ID, Username: parsed.User.Username}
	if user.Username == "" {
		user.Username = username
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return user, nil
}
