package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shopstream/storefront-gateway/internal/credential"
	"github.com/shopstream/storefront-gateway/internal/gateway"
)

// fakeBackend issues "valid-tok" on login and accepts only that token on
// /auth/me.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"invalid credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": "valid-tok", "token_type": "bearer",
			"user_id": "u1", "email": req.Email, "role": "admin",
		})
	})
	mux.HandleFunc("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": "valid-tok", "token_type": "bearer",
			"user_id": "u1", "email": req.Email, "role": "customer",
		})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer valid-tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		role := "admin"
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "u1", "email": "a@b.com", "name": "A", "role": role, "is_active": true,
		})
	})
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer valid-tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"c1","customer_id":"u1","items":[]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newSession(t *testing.T, srv *httptest.Server, store credential.Store) (*Context, *gateway.Client) {
	t.Helper()
	client := gateway.NewClient(context.Background(), gateway.Config{
		BaseURL: srv.URL,
		Store:   store,
		Logger:  zerolog.Nop(),
	})
	return New(client, zerolog.Nop()), client
}

func TestContext_StartsUnresolved(t *testing.T) {
	sess, _ := newSession(t, fakeBackend(t), credential.NewMemStore())

	if got := sess.State(); got != StateUnresolved {
		t.Fatalf("expected unresolved before restore, got %v", got)
	}
}

func TestContext_RestoreWithoutCredential(t *testing.T) {
	sess, _ := newSession(t, fakeBackend(t), credential.NewMemStore())

	if got := sess.Restore(context.Background()); got != StateAnonymous {
		t.Fatalf("expected anonymous, got %v", got)
	}
	if sess.State() != StateAnonymous {
		t.Fatalf("state not settled anonymous")
	}
}

func TestContext_RestoreWithValidCredential(t *testing.T) {
	store := credential.NewMemStore()
	_ = store.Write(context.Background(), "valid-tok")

	sess, _ := newSession(t, fakeBackend(t), store)

	if got := sess.Restore(context.Background()); got != StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", got)
	}
	if user := sess.User(); user == nil || user.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestContext_RestoreWithStaleCredential(t *testing.T) {
	store := credential.NewMemStore()
	_ = store.Write(context.Background(), "expired-tok")

	sess, client := newSession(t, fakeBackend(t), store)

	if got := sess.Restore(context.Background()); got != StateAnonymous {
		t.Fatalf("expected anonymous, got %v", got)
	}
	if client.Credential() != "" {
		t.Fatalf("stale credential not cleared from mirror")
	}
	persisted, _ := store.Read(context.Background())
	if persisted != "" {
		t.Fatalf("stale credential not cleared from store, got %q", persisted)
	}
}

func TestContext_LoginTransitions(t *testing.T) {
	sess, _ := newSession(t, fakeBackend(t), credential.NewMemStore())
	sess.Restore(context.Background())

	user, err := sess.Login(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Email != "a@b.com" {
		t.Fatalf("identity mismatch: %q", user.Email)
	}
	if sess.State() != StateAuthenticated {
		t.Fatalf("expected authenticated after login")
	}
	if !sess.CanManageStore() {
		t.Fatalf("admin role should unlock store management")
	}
}

func TestContext_LoginFailureStaysAnonymous(t *testing.T) {
	sess, _ := newSession(t, fakeBackend(t), credential.NewMemStore())
	sess.Restore(context.Background())

	_, err := sess.Login(context.Background(), "a@b.com", "wrong")
	var authErr *gateway.AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
	if sess.State() != StateAnonymous {
		t.Fatalf("failed login must leave session anonymous")
	}
}

func TestContext_RegisterTransitions(t *testing.T) {
	sess, _ := newSession(t, fakeBackend(t), credential.NewMemStore())
	sess.Restore(context.Background())

	user, err := sess.Register(context.Background(), gateway.RegisterInput{
		Email: "a@b.com", Password: "x", Name: "A",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "a@b.com" {
		t.Fatalf("identity mismatch: %q", user.Email)
	}
	if sess.State() != StateAuthenticated {
		t.Fatalf("expected authenticated after register")
	}
}

func TestContext_LogoutIsIdempotent(t *testing.T) {
	store := credential.NewMemStore()
	sess, client := newSession(t, fakeBackend(t), store)
	sess.Restore(context.Background())

	if _, err := sess.Login(context.Background(), "a@b.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := sess.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sess.State() != StateAnonymous {
		t.Fatalf("expected anonymous after logout")
	}
	if client.Credential() != "" {
		t.Fatalf("logout left credential on gateway")
	}

	// Logging out with no active session is not an error.
	if err := sess.Logout(context.Background()); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	persisted, _ := store.Read(context.Background())
	if persisted != "" {
		t.Fatalf("store not cleared, got %q", persisted)
	}
}

func TestContext_MidSessionExpiryObservedOnNextRead(t *testing.T) {
	store := credential.NewMemStore()
	_ = store.Write(context.Background(), "valid-tok")

	srv := fakeBackend(t)
	sess, client := newSession(t, srv, store)
	sess.Restore(context.Background())

	if sess.State() != StateAuthenticated {
		t.Fatalf("precondition: expected authenticated")
	}

	// Model a server-side revocation: the attached token is no longer one
	// the backend accepts. Any request now comes back 401.
	if err := client.SetCredential(context.Background(), "revoked-tok"); err != nil {
		t.Fatalf("set credential: %v", err)
	}
	_, err := client.Cart(context.Background())
	if !errors.Is(err, gateway.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	// The next read reflects the cleared credential with no explicit logout.
	if sess.State() != StateAnonymous {
		t.Fatalf("expired session still reads authenticated")
	}
	if sess.User() != nil {
		t.Fatalf("expired session still exposes a user")
	}
}
