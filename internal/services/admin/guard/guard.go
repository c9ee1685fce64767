// Package guard gates protected pages on the session state.
package guard

import (
	"sync"

	"github.com/goalinstitute/admin-console/internal/services/admin/session"
)

// Outcome is what the gate shows.
type Outcome int

const (
	// OutcomeLoading shows a placeholder and never redirects.
	OutcomeLoading Outcome = iota
	// OutcomeBlank renders nothing; the visitor is sent to login.
	OutcomeBlank
	// OutcomeRender shows the protected page inside the dashboard chrome.
	OutcomeRender
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoading:
		return "loading"
	case OutcomeBlank:
		return "blank"
	case OutcomeRender:
		return "render"
	default:
		return "unknown"
	}
}

// View is the input of one evaluation.
type View struct {
	Mounted bool
	Loading bool
	User    *session.Profile
}

// ViewOf builds a mounted View from a session snapshot.
func ViewOf(snap session.Snapshot) View {
	return View{Mounted: true, Loading: snap.Loading, User: snap.User}
}

// Decision is the result of one evaluation.
type Decision struct {
	Outcome Outcome
	// Redirect is true on the first Blank evaluation after entering the
	// anonymous state and false on every repeat.
	Redirect bool
	User     *session.Profile
}

// Guard remembers whether the login redirect was already issued.
type Guard struct {
	mu         sync.Mutex
	redirected bool
}

// Evaluate maps a View to a Decision.
func (g *Guard) Evaluate(v View) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case !v.Mounted || v.Loading:
		return Decision{Outcome: OutcomeLoading}
	case v.User == nil:
		redirect := !g.redirected
		g.redirected = true
		return Decision{Outcome: OutcomeBlank, Redirect: redirect}
	default:
		g.redirected = false
		user := *v.User
		return Decision{Outcome: OutcomeRender, User: &user}
	}
}
