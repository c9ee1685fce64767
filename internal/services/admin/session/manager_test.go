package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestManager(t *testing.T, kv KV, auth Authenticator) *Manager {
	t.Helper()
	return NewManager(NewStore(kv), newTestVerifier(t), auth)
}

func TestManagerStartsLoading(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, NewMemoryKV(), nil)
	snap := m.Snapshot()
	if !snap.Loading || snap.State != StateInitializing || snap.User != nil {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestManagerInitRestoresValidSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := NewMemoryKV()
	token := signToken(t, testSecret, fixedNow().Add(time.Hour))
	if err := NewStore(kv).Save(ctx, token, adminProfile()); err != nil {
		t.Fatalf("save: %v", err)
	}

	m := newTestManager(t, kv, nil)
	snap := m.Init(ctx)
	if snap.State != StateAuthenticated || snap.Loading {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.User == nil || *snap.User != adminProfile() {
		t.Fatalf("user = %+v", snap.User)
	}
	if m.Token() != token {
		t.Fatal("expected restored token")
	}
}

func TestManagerInitDiscardsInvalidTokens(t *testing.T) {
	t.Parallel()

	tests := map[string]func(t *testing.T) string{
		"expired": func(t *testing.T) string {
			return signToken(t, testSecret, fixedNow().Add(-time.Second))
		},
		"other secret": func(t *testing.T) string {
			return signToken(t, []byte("other"), fixedNow().Add(time.Hour))
		},
		"garbage": func(*testing.T) string { return "abc.def.ghi" },
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			kv := NewMemoryKV()
			if err := NewStore(kv).Save(ctx, token(t), adminProfile()); err != nil {
				t.Fatalf("save: %v", err)
			}

			m := newTestManager(t, kv, nil)
			snap := m.Init(ctx)
			if snap.State != StateAnonymous || snap.Loading || snap.User != nil {
				t.Fatalf("snapshot = %+v", snap)
			}
			if kv.Len() != 0 {
				t.Fatalf("kv len = %d, want 0", kv.Len())
			}
		})
	}
}

func TestManagerInitSettlesOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newTestManager(t, NewMemoryKV(), nil)
	var transitions []Snapshot
	m.Subscribe(func(s Snapshot) { transitions = append(transitions, s) })

	m.Init(ctx)
	m.Init(ctx)
	m.Init(ctx)

	if len(transitions) != 1 {
		t.Fatalf("transitions = %d, want 1", len(transitions))
	}
	if transitions[0].State != StateAnonymous || transitions[0].Loading {
		t.Fatalf("transition = %+v", transitions[0])
	}
}

func TestManagerLoginFailureKeepsAnonymous(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := NewMemoryKV()
	auth := &fakeAuth{resp: LoginResponse{Success: false, Message: "Invalid credentials"}}
	m := newTestManager(t, kv, auth)

	got := m.Login(ctx, "bad@x.com", "wrong")
	if got != (LoginResult{Success: false, Error: "Invalid credentials"}) {
		t.Fatalf("result = %+v", got)
	}
	if _, ok := m.User(); ok {
		t.Fatal("expected no user")
	}
	if kv.Len() != 0 {
		t.Fatalf("kv len = %d, want 0", kv.Len())
	}
}

func TestManagerLoginFailureMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		auth *fakeAuth
		want string
	}{
		{name: "no message", auth: &fakeAuth{resp: LoginResponse{}}, want: "Login failed"},
		{name: "transport", auth: &fakeAuth{err: errors.New("dial tcp: refused")}, want: "Network error"},
		{name: "success without token", auth: &fakeAuth{resp: LoginResponse{Success: true, User: &Profile{ID: "1"}}}, want: "Network error"},
		{name: "success without user", auth: &fakeAuth{resp: LoginResponse{Success: true, Token: "T"}}, want: "Network error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := newTestManager(t, NewMemoryKV(), tc.auth)
			got := m.Login(context.Background(), "a@b.c", "pw")
			if got.Success || got.Error != tc.want {
				t.Fatalf("result = %+v, want error %q", got, tc.want)
			}
			if m.Snapshot().State != StateAnonymous {
				t.Fatalf("state = %s, want anonymous", m.Snapshot().State)
			}
		})
	}
}

func TestManagerLoginLogoutRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := NewMemoryKV()
	profile := adminProfile()
	auth := &fakeAuth{resp: LoginResponse{Success: true, Token: "T", User: &profile}}
	m := newTestManager(t, kv, auth)

	if got := m.Login(ctx, " admin@goalinstitute.com ", "admin123"); got != (LoginResult{Success: true}) {
		t.Fatalf("login = %+v", got)
	}
	if auth.email != "admin@goalinstitute.com" {
		t.Fatalf("email = %q", auth.email)
	}
	persisted, ok, err := NewStore(kv).Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load = %v, %v", ok, err)
	}
	if persisted.Token != "T" || persisted.Profile != profile {
		t.Fatalf("persisted = %+v", persisted)
	}
	if user, ok := m.User(); !ok || user != profile {
		t.Fatalf("user = %+v, %v", user, ok)
	}

	if err := m.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok, _ := NewStore(kv).Load(ctx); ok {
		t.Fatal("expected store cleared")
	}
	if _, ok := m.User(); ok {
		t.Fatal("expected no user after logout")
	}
	if m.Token() != "" {
		t.Fatal("expected token cleared")
	}
}

func TestManagerUnsubscribeAndClose(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	profile := adminProfile()
	m := newTestManager(t, NewMemoryKV(), &fakeAuth{resp: LoginResponse{Success: true, Token: "T", User: &profile}})

	var first, second int
	unsubscribe := m.Subscribe(func(Snapshot) { first++ })
	m.Subscribe(func(Snapshot) { second++ })

	m.Init(ctx)
	unsubscribe()
	m.Login(ctx, "admin@goalinstitute.com", "admin123")
	m.Close()
	_ = m.Logout(ctx)
	m.Subscribe(func(Snapshot) { second += 100 })
	_ = m.Logout(ctx)

	if first != 1 {
		t.Fatalf("first = %d, want 1", first)
	}
	if second != 2 {
		t.Fatalf("second = %d, want 2", second)
	}
}
