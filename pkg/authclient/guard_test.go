package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func sessionWithRole(t *testing.T, role Role) *Session {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]string{"id": "user_1", "role": string(role)},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	session := NewSession(NewClient(srv.URL, nil), NewMemoryStore("good-token"), zerolog.Nop())
	if state := session.Bootstrap(context.Background()); state != Authenticated {
		t.Fatalf("bootstrap did not authenticate: %s", state)
	}
	return session
}

func TestGuard_PendingWhileBootstrapping(t *testing.T) {
	session := NewSession(NewClient("http://localhost:0", nil), NewMemoryStore(""), zerolog.Nop())
	guard := NewGuard(session)

	decision := guard.Check(RoleAdmin)
	if !decision.Pending {
		t.Fatalf("expected pending decision before bootstrap, got %+v", decision)
	}
	if decision.Allow || decision.RedirectTo != "" {
		t.Fatalf("pending decision must not route: %+v", decision)
	}
}

func TestGuard_UnauthenticatedRedirectsToLogin(t *testing.T) {
	session := NewSession(NewClient("http://localhost:0", nil), NewMemoryStore(""), zerolog.Nop())
	session.Bootstrap(context.Background())
	guard := NewGuard(session)

	decision := guard.Check()
	if decision.Allow || decision.Pending {
		t.Fatalf("unexpected decision: %+v", decision)
	}
	if decision.RedirectTo != LoginPath {
		t.Fatalf("expected redirect to %s, got %s", LoginPath, decision.RedirectTo)
	}
}

func TestGuard_AuthenticatedAllowsUnrestricted(t *testing.T) {
	guard := NewGuard(sessionWithRole(t, RoleEmployee))

	if decision := guard.Check(); !decision.Allow {
		t.Fatalf("expected allow, got %+v", decision)
	}
}

func TestGuard_AllowsMatchingRole(t *testing.T) {
	guard := NewGuard(sessionWithRole(t, RoleAdmin))

	if decision := guard.Check(RoleAdmin); !decision.Allow {
		t.Fatalf("expected allow for admin route, got %+v", decision)
	}
}

func TestGuard_WrongRoleRedirectsToOwnLanding(t *testing.T) {
	// A logged-in employee on an admin route is sent home, not to login.
	guard := NewGuard(sessionWithRole(t, RoleEmployee))

	decision := guard.Check(RoleAdmin)
	if decision.Allow {
		t.Fatalf("employee allowed on admin route")
	}
	if decision.RedirectTo != "/employee/dashboard" {
		t.Fatalf("expected employee landing page, got %s", decision.RedirectTo)
	}

	guard = NewGuard(sessionWithRole(t, RoleAdmin))
	decision = guard.Check(RoleEmployee)
	if decision.RedirectTo != "/admin/dashboard" {
		t.Fatalf("expected admin landing page, got %s", decision.RedirectTo)
	}
}
