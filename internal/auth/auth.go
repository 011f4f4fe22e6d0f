// Package auth issues and verifies the bearer tokens used by the API.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingToken       = errors.New("the Authorization header must contain a bearer token")
	ErrInvalidToken       = errors.New("the bearer token is invalid or expired")
	ErrTokenRevoked       = errors.New("the bearer token has been revoked")
	ErrSecretEmpty        = errors.New("the token signing secret must not be empty")
	ErrInvalidCredentials = errors.New("the email address or password is incorrect")
	ErrPasswordTooShort   = errors.New("the password must be at least 8 characters long")
	ErrPasswordTooLong    = errors.New("the password must not be longer than 72 bytes")
)

// ContextKey is the key the Session of an authenticated request is stored
// under in the request context.
const ContextKey = "finance-session"

// Session is an authenticated token.
type Session struct {
	UserID    uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}

// Token is a signed token handed out to clients.
type Token struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time `json:"expiresAt" example:"2024-08-20T19:28:44Z"`
}

// Service signs and verifies HS256 tokens. Revoked tokens are kept in
// memory until they expire.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

type Option func(*Service)

// WithClock sets the function used to get the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(secret, issuer string, ttl time.Duration, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, ErrSecretEmpty
	}

	if ttl <= 0 {
		return nil, fmt.Errorf("the token lifetime must be positive, is %s", ttl)
	}

	s := &Service{
		secret:  []byte(secret),
		issuer:  issuer,
		ttl:     ttl,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Issue returns a signed token for the user.
func (s *Service) Issue(userID uuid.UUID) (Token, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   userID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, err
	}

	// NumericDate has second precision
	return Token{Token: signed, ExpiresAt: expiresAt.Truncate(time.Second).UTC()}, nil
}

// Parse verifies the signature, issuer and expiry of a token.
func (s *Service) Parse(token string) (Session, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Session{}, fmt.Errorf("%w: invalid subject", ErrInvalidToken)
	}

	if s.isRevoked(claims.ID) {
		return Session{}, ErrTokenRevoked
	}

	return Session{
		UserID:    userID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ParseHeader extracts the bearer token from an Authorization header value
// and parses it.
func (s *Service) ParseHeader(header string) (Session, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return Session{}, ErrMissingToken
	}

	return s.Parse(strings.TrimSpace(token))
}

// Revoke invalidates the token of the session until it expires.
func (s *Service) Revoke(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, expiresAt := range s.revoked {
		if now.After(expiresAt) {
			delete(s.revoked, id)
		}
	}

	s.revoked[session.TokenID] = session.ExpiresAt
}

func (s *Service) isRevoked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.revoked[id]
	return ok
}
