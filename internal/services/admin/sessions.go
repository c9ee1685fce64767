package admin

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goalinstitute/admin-console/internal/platform/requestctx"
	"github.com/goalinstitute/admin-console/internal/services/admin/session"
)

// Session media.
const (
	SessionStoreCookie = "cookie"
	SessionStoreSQLite = "sqlite"
	SessionStoreMemory = "memory"
)

// browserCookieName holds the opaque id that selects a server-side session
// namespace. It carries no session data itself.
const browserCookieName = "admin_browser"

// sessionFactory builds one session Manager per request over the configured
// medium.
type sessionFactory struct {
	// namespaces is nil for the cookie medium.
	namespaces session.Namespaces
	verifier   session.TokenVerifier
	auth       session.Authenticator
	cookies    session.CookieOptions
}

func newSessionFactory(medium string, namespaces session.Namespaces, verifier session.TokenVerifier, auth session.Authenticator, cookies session.CookieOptions) (*sessionFactory, error) {
	if verifier == nil {
		return nil, fmt.Errorf("session verifier is required")
	}
	if auth == nil {
		return nil, fmt.Errorf("session authenticator is required")
	}
	switch strings.TrimSpace(medium) {
	case "", SessionStoreCookie:
		namespaces = nil
	case SessionStoreSQLite, SessionStoreMemory:
		if namespaces == nil {
			return nil, fmt.Errorf("session store %q needs a backing namespace", medium)
		}
	default:
		return nil, fmt.Errorf("unknown session store %q", medium)
	}
	return &sessionFactory{namespaces: namespaces, verifier: verifier, auth: auth, cookies: cookies}, nil
}

// Manager builds the session Manager for one request.
func (f *sessionFactory) Manager(w http.ResponseWriter, r *http.Request) *session.Manager {
	manager := session.NewManager(session.NewStore(f.kv(w, r)), f.verifier, f.auth)
	manager.Subscribe(transitionLogger(r))
	return manager
}

func (f *sessionFactory) kv(w http.ResponseWriter, r *http.Request) session.KV {
	if f.namespaces == nil {
		return session.NewCookieKV(w, r, f.cookies)
	}
	return f.namespaces.Namespace(f.browserID(w, r))
}

// browserID returns the request's browser id, issuing a new one when the
// cookie is missing or malformed.
func (f *sessionFactory) browserID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(browserCookieName); err == nil {
		if parsed, err := uuid.Parse(cookie.Value); err == nil {
			return parsed.String()
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     browserCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   f.cookies.MaxAge,
		HttpOnly: true,
		Secure:   f.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// transitionLogger logs sign-ins and sign-outs. Restores during Init are not
// logged.
func transitionLogger(r *http.Request) func(session.Snapshot) {
	previous := session.StateInitializing
	return func(snap session.Snapshot) {
		defer func() { previous = snap.State }()
		requestID := requestctx.RequestIDFromContext(r.Context())
		switch {
		case previous == session.StateAnonymous && snap.State == session.StateAuthenticated && snap.User != nil:
			log.Printf("admin session: user %s signed in (request %s)", snap.User.ID, requestID)
		case previous == session.StateAuthenticated && snap.State == session.StateAnonymous:
			log.Printf("admin session: signed out (request %s)", requestID)
		}
	}
}

// sessionMaxAge converts a TTL to a cookie max-age.
func sessionMaxAge(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	return int(ttl.Seconds())
}
