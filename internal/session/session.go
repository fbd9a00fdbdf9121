// Package session tracks the storefront's authentication state: anonymous,
// authenticated, or unresolved while startup restoration is still pending.
// It is the only writer of the gateway's credential during explicit
// transitions; the gateway's credential presence stays the source of truth,
// so a 401 observed mid-flight is reflected here without any notification.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shopstream/storefront-gateway/internal/core/domain"
	"github.com/shopstream/storefront-gateway/internal/gateway"
)

// State is the session's lifecycle position.
type State int

const (
	// StateUnresolved holds from construction until Restore completes.
	StateUnresolved State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unresolved"
	}
}

// ErrNotAuthenticated is returned by operations that need a signed-in user.
var ErrNotAuthenticated = errors.New("not authenticated")

// Context owns the login/register/logout transitions for one logical session.
// Construct one per process, next to the gateway client it drives.
type Context struct {
	client *gateway.Client
	log    zerolog.Logger

	mu       sync.RWMutex
	resolved bool
	user     *domain.User
}

// New returns a Context in the unresolved state; call Restore before relying
// on State.
func New(client *gateway.Client, log zerolog.Logger) *Context {
	return &Context{client: client, log: log}
}

// Restore attempts to resume a persisted session. With no stored credential
// the session settles anonymous immediately; with one, a who-am-I call
// decides: success resolves authenticated, failure clears the stale
// credential and resolves anonymous. Restore itself never returns the
// backend's error — a failed restoration is a normal anonymous start.
func (c *Context) Restore(ctx context.Context) State {
	defer c.markResolved()

	if c.client.Credential() == "" {
		return StateAnonymous
	}

	user, err := c.client.CurrentUser(ctx)
	if err != nil {
		c.log.Info().Err(err).Msg("session restoration failed, starting anonymous")
		// The 401 interceptor already cleared an expired credential; clear
		// explicitly for other failure modes so no stale token lingers.
		if clearErr := c.client.ClearCredential(ctx); clearErr != nil {
			c.log.Warn().Err(clearErr).Msg("failed to clear stale credential")
		}
		return StateAnonymous
	}

	c.setUser(user)
	c.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("session restored")
	return StateAuthenticated
}

// Login authenticates and, on success, resolves the user identity. On
// failure the state is unchanged and the typed gateway error is returned
// as-is; there is no silent retry.
func (c *Context) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if _, err := c.client.Login(ctx, email, password); err != nil {
		return nil, err
	}
	return c.resolveIdentity(ctx)
}

// Register creates an account and signs in, with the same shape as Login.
func (c *Context) Register(ctx context.Context, in gateway.RegisterInput) (*domain.User, error) {
	if _, err := c.client.Register(ctx, in); err != nil {
		return nil, err
	}
	return c.resolveIdentity(ctx)
}

// Logout transitions to anonymous from any state, clearing the gateway
// mirror and the persisted credential before returning. Safe to call with no
// active session.
func (c *Context) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.user = nil
	c.resolved = true
	c.mu.Unlock()

	return c.client.ClearCredential(ctx)
}

// State derives the current lifecycle position. The gateway's credential is
// consulted on every read, so a 401-triggered clear is visible here with no
// separate bookkeeping.
func (c *Context) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.resolved {
		return StateUnresolved
	}
	if c.user != nil && c.client.Credential() != "" {
		return StateAuthenticated
	}
	return StateAnonymous
}

// User returns the signed-in identity, or nil when not authenticated.
func (c *Context) User() *domain.User {
	if c.State() != StateAuthenticated {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// IsAuthenticated reports whether a signed-in user is present.
func (c *Context) IsAuthenticated() bool {
	return c.State() == StateAuthenticated
}

// CanManageStore gates privileged affordances on the resolved user's role,
// never on token presence: a present-but-expired token must not unlock
// anything before the 401 backstop fires.
func (c *Context) CanManageStore() bool {
	return c.User().CanManageStore()
}

// resolveIdentity fetches the identity behind a freshly installed
// credential. If the fetch fails the half-open session is torn down rather
// than left with a token and no user.
func (c *Context) resolveIdentity(ctx context.Context) (*domain.User, error) {
	user, err := c.client.CurrentUser(ctx)
	if err != nil {
		if clearErr := c.client.ClearCredential(ctx); clearErr != nil {
			c.log.Warn().Err(clearErr).Msg("failed to clear credential after identity fetch failure")
		}
		c.markResolved()
		return nil, err
	}
	c.setUser(user)
	return user, nil
}

func (c *Context) setUser(user *domain.User) {
	c.mu.Lock()
	c.user = user
	c.resolved = true
	c.mu.Unlock()
}

func (c *Context) markResolved() {
	c.mu.Lock()
	c.resolved = true
	c.mu.Unlock()
}
