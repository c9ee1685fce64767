package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	// TokenKey holds the bearer token.
	TokenKey = "admin_token"
	// ProfileKey holds the JSON-encoded Profile.
	ProfileKey = "admin_user"
)

// Persisted is the token and profile pair as read back from the medium.
type Persisted struct {
	Token   string
	Profile Profile
}

// Store persists the token and profile as a pair. It never makes network
// calls.
type Store struct {
	kv KV
}

// NewStore wraps a KV medium.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Save writes the token and profile in one Put.
func (s *Store) Save(ctx context.Context, token string, profile Profile) error {
	if s == nil || s.kv == nil {
		return errors.New("session store is not configured")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is required")
	}
	if !profile.valid() {
		return errors.New("profile id is required")
	}
	encoded, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.kv.Put(ctx, map[string]string{
		TokenKey:   token,
		ProfileKey: string(encoded),
	}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the pair only when both halves are present and the profile
// decodes. Anything else clears the medium and reports false.
func (s *Store) Load(ctx context.Context) (Persisted, bool, error) {
	if s == nil || s.kv == nil {
		return Persisted{}, false, errors.New("session store is not configured")
	}
	token, hasToken, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		return Persisted{}, false, fmt.Errorf("load token: %w", err)
	}
	rawProfile, hasProfile, err := s.kv.Get(ctx, ProfileKey)
	if err != nil {
		return Persisted{}, false, fmt.Errorf("load profile: %w", err)
	}
	if !hasToken && !hasProfile {
		return Persisted{}, false, nil
	}

	token = strings.TrimSpace(token)
	var profile Profile
	complete := hasToken && hasProfile && token != ""
	if complete {
		if err := json.Unmarshal([]byte(rawProfile), &profile); err != nil || !profile.valid() {
			complete = false
		}
	}
	if !complete {
		if err := s.Clear(ctx); err != nil {
			return Persisted{}, false, err
		}
		return Persisted{}, false, nil
	}
	return Persisted{Token: token, Profile: profile}, true, nil
}

// Clear erases both halves.
func (s *Store) Clear(ctx context.Context) error {
	if s == nil || s.kv == nil {
		return errors.New("session store is not configured")
	}
	if err := s.kv.Delete(ctx, TokenKey, ProfileKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
