package authclient

// LoginPath is where unauthenticated users are sent.
const LoginPath = "/login"

// Decision is the outcome of a guard check. Pending means the session is
// still bootstrapping and no routing decision can be made yet.
type Decision struct {
	Allow      bool
	Pending    bool
	RedirectTo string
}

// Guard gates navigation on session state: an authentication gate and an
// optional role gate. The two produce different redirects on purpose — a
// missing session goes to login, while an authenticated user on the wrong
// page goes back to their own landing page.
type Guard struct {
	session *Session
}

func NewGuard(session *Session) *Guard {
	return &Guard{session: session}
}

// Check evaluates the gates for a route restricted to the given roles. An
// empty role list means any authenticated user may pass.
func (g *Guard) Check(allowed ...Role) Decision {
	state := g.session.State()
	if state == Bootstrapping {
		return Decision{Pending: true}
	}

	user := g.session.User()
	if state != Authenticated || user == nil {
		return Decision{RedirectTo: LoginPath}
	}

	if len(allowed) == 0 {
		return Decision{Allow: true}
	}
	for _, role := range allowed {
		if user.Role == role {
			return Decision{Allow: true}
		}
	}
	return Decision{RedirectTo: LandingPath(user.Role)}
}

// LandingPath is the home page for a role. Unknown roles fall back to the
// employee dashboard rather than an admin surface.
func LandingPath(role Role) string {
	if role == RoleAdmin {
		return "/admin/dashboard"
	}
	return "/employee/dashboard"
}
