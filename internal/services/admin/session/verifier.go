package session

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/goalinstitute/admin-console/internal/platform/errors"
)

// Claims are the verified assertions carried by a session token.
type Claims struct {
	UserID    string
	Email     string
	Name      string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// tokenClaims is the wire shape of the backend-issued token.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// Verifier checks HS256 session tokens with the shared secret.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier builds a Verifier. now defaults to time.Now.
func NewVerifier(secret []byte, now func() time.Time) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("session secret is required")
	}
	if now == nil {
		now = time.Now
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Verifier{secret: key, now: now}, nil
}

// Verify returns the token's claims, or an error when the signature does not
// match, the token is malformed, exp is missing, or the current time is at or
// past exp.
func (v *Verifier) Verify(token string) (Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return Claims{}, errors.New("session verifier is not configured")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, apperrors.New(apperrors.CodeSessionTokenInvalid, "session token is required")
	}

	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}

	if parsed.ExpiresAt == nil {
		return Claims{}, apperrors.New(apperrors.CodeSessionTokenInvalid, "session token exp is required")
	}
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(v.now().UTC()) {
		return Claims{}, apperrors.New(apperrors.CodeSessionTokenExpired, "session token is expired")
	}

	userID := strings.TrimSpace(parsed.UserID)
	if userID == "" {
		userID = strings.TrimSpace(parsed.Subject)
	}
	claims := Claims{
		UserID:    userID,
		Email:     parsed.Email,
		Name:      parsed.Name,
		Role:      parsed.Role,
		ExpiresAt: exp,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperrors.Wrap(apperrors.CodeSessionTokenInvalid, "session token signature is invalid", err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return apperrors.Wrap(apperrors.CodeSessionTokenInvalid, "session token alg is invalid", err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return apperrors.Wrap(apperrors.CodeSessionTokenInvalid, "session token is malformed", err)
	default:
		return apperrors.Wrap(apperrors.CodeSessionTokenInvalid, "session token is invalid", err)
	}
}
