package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-session-secret")

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func signToken(t *testing.T, secret []byte, exp time.Time) string {
	t.Helper()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID: "1",
		Email:  "admin@goalinstitute.com",
		Name:   "Admin User",
		Role:   RoleAdmin,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func adminProfile() Profile {
	return Profile{ID: "1", Email: "admin@goalinstitute.com", Name: "Admin User", Role: RoleAdmin}
}

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	v, err := NewVerifier(testSecret, fixedNow)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	return v
}

type fakeAuth struct {
	resp  LoginResponse
	err   error
	calls int
	email string
}

func (f *fakeAuth) Login(_ context.Context, email, _ string) (LoginResponse, error) {
	f.calls++
	f.email = email
	return f.resp, f.err
}
