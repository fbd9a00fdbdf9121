package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopstream/storefront-gateway/internal/core/domain"
	"github.com/shopstream/storefront-gateway/internal/metrics"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput carries the fields for account creation. Role is optional;
// the backend defaults new accounts to customer.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
}

// Login posts credentials to the backend and, on success, stores the
// returned token before returning the session payload. A rejected login
// surfaces as *AuthenticationError with the backend's status and message.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	status, data, err := c.send(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password})
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues("login", "transport").Inc()
		return nil, err
	}
	if status < 200 || status >= 300 {
		outcome := "client_error"
		if status >= 500 {
			outcome = "server_error"
		}
		metrics.BackendRequestsTotal.WithLabelValues("login", outcome).Inc()
		return nil, &AuthenticationError{Status: status, Message: errorMessage(data)}
	}
	metrics.BackendRequestsTotal.WithLabelValues("login", "ok").Inc()

	return c.adoptSession(ctx, data)
}

// Register creates an account; same contract as Login except a backend 4xx
// (e.g. duplicate email) surfaces as *ValidationError.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*domain.Session, error) {
	status, data, err := c.send(ctx, http.MethodPost, "/auth/register", nil, in)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues("register", "transport").Inc()
		return nil, err
	}
	switch {
	case status >= 500:
		metrics.BackendRequestsTotal.WithLabelValues("register", "server_error").Inc()
		return nil, &ServerError{Status: status}
	case status >= 400:
		metrics.BackendRequestsTotal.WithLabelValues("register", "client_error").Inc()
		return nil, &ValidationError{Message: errorMessage(data)}
	}
	metrics.BackendRequestsTotal.WithLabelValues("register", "ok").Inc()

	return c.adoptSession(ctx, data)
}

// CurrentUser fetches the identity behind the current credential.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, "current_user", http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// adoptSession decodes an auth response and installs its token as the active
// credential. Persistence failure is logged but does not fail the login: the
// session is live in memory, it just won't survive a restart.
func (c *Client) adoptSession(ctx context.Context, data []byte) (*domain.Session, error) {
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("decode auth response: %w", err)}
	}
	if err := c.SetCredential(ctx, session.AccessToken); err != nil {
		c.log.Warn().Err(err).Msg("session token not persisted")
	}
	return &session, nil
}
