package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

func authServer(t *testing.T, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]string{"id": "user_1", "name": "Alice", "email": "alice@example.com", "role": "admin"},
		})
	})

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "pass123" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":  map[string]string{"id": "user_1", "name": "Alice", "email": body["email"], "role": "employee"},
			"token": "good-token",
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSession_Bootstrap_NoToken(t *testing.T) {
	var calls atomic.Int64
	srv := authServer(t, &calls)

	session := NewSession(NewClient(srv.URL, nil), NewMemoryStore(""), zerolog.Nop())
	if state := session.Bootstrap(context.Background()); state != Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %s", state)
	}
	if calls.Load() != 0 {
		t.Fatalf("bootstrap without a token must not hit the network, saw %d calls", calls.Load())
	}
}

func TestSession_Bootstrap_ValidToken(t *testing.T) {
	srv := authServer(t, nil)

	session := NewSession(NewClient(srv.URL, nil), NewMemoryStore("good-token"), zerolog.Nop())
	if state := session.Bootstrap(context.Background()); state != Authenticated {
		t.Fatalf("expected Authenticated, got %s", state)
	}
	user := session.User()
	if user == nil || user.ID != "user_1" || user.Role != RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
	if session.Token() != "good-token" {
		t.Fatalf("token not retained in session")
	}
}

func TestSession_Bootstrap_DefinitiveRejectionClearsToken(t *testing.T) {
	srv := authServer(t, nil)
	store := NewMemoryStore("stale-token")

	session := NewSession(NewClient(srv.URL, nil), store, zerolog.Nop())
	if state := session.Bootstrap(context.Background()); state != Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %s", state)
	}

	if persisted, _ := store.Load(); persisted != "" {
		t.Fatalf("rejected token must be cleared, still have %q", persisted)
	}
}

func TestSession_Bootstrap_TransportErrorKeepsToken(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing is listening: every request is a transport error
	store := NewMemoryStore("maybe-good-token")

	session := NewSession(NewClient(srv.URL, nil), store, zerolog.Nop())
	if state := session.Bootstrap(context.Background()); state != Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %s", state)
	}

	// The token might still be valid; only the server can say otherwise.
	if persisted, _ := store.Load(); persisted != "maybe-good-token" {
		t.Fatalf("token must survive transport errors, have %q", persisted)
	}
}

func TestSession_LoginLogout(t *testing.T) {
	srv := authServer(t, nil)
	store := NewMemoryStore("")

	session := NewSession(NewClient(srv.URL, nil), store, zerolog.Nop())

	if _, err := session.Login(context.Background(), "alice@example.com", "wrong"); !IsUnauthorized(err) {
		t.Fatalf("expected definitive 401, got %v", err)
	}
	if session.State() == Authenticated {
		t.Fatalf("failed login must not authenticate the session")
	}

	user, err := session.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Role != RoleEmployee {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if session.State() != Authenticated {
		t.Fatalf("expected Authenticated after login")
	}
	if persisted, _ := store.Load(); persisted != "good-token" {
		t.Fatalf("token not persisted: %q", persisted)
	}

	session.Logout()
	if session.State() != Unauthenticated {
		t.Fatalf("expected Unauthenticated after logout")
	}
	if persisted, _ := store.Load(); persisted != "" {
		t.Fatalf("token not cleared on logout: %q", persisted)
	}
	if session.Token() != "" {
		t.Fatalf("in-memory token not cleared on logout")
	}
}
