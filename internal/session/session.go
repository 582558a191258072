// Package session authenticates the single admin account and issues the
// signed token kept in the admin cookie.
package session

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const (
	CookieName = "admin_token"
	TTL        = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid session token")
	// ErrExpiredToken is an ErrInvalidToken whose signature checked out.
	ErrExpiredToken = fmt.Errorf("%w: expired", ErrInvalidToken)
)

// Session identifies the signed-in user. UID scopes every record query.
type Session struct {
	UID   string
	Email string
}

// Credentials is the one admin account the panel accepts.
type Credentials struct {
	Email    string
	Password string
	UID      string
}

type claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// Manager checks credentials and signs/verifies session tokens.
type Manager struct {
	creds  Credentials
	secret []byte
	now    func() time.Time
}

func NewManager(creds Credentials, secret string) *Manager {
	return &Manager{creds: creds, secret: []byte(secret), now: time.Now}
}

// SignIn checks email and password. Email comparison ignores case and
// surrounding space.
func (m *Manager) SignIn(email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(strings.ToLower(m.creds.Email))) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(m.creds.Password)) == 1
	if !emailOK || !passOK {
		return Session{}, ErrInvalidCredentials
	}
	return Session{UID: m.creds.UID, Email: m.creds.Email}, nil
}

// Issue signs a token for s valid for TTL.
func (m *Manager) Issue(s Session) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: s.Email,
		StandardClaims: jwt.StandardClaims{
			Subject:   s.UID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(TTL).Unix(),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses a token issued by Issue. A genuine token past its expiry
// fails with ErrExpiredToken and still returns the session it named, so the
// caller can release what that session held.
func (m *Manager) Verify(raw string) (Session, error) {
	if raw == "" {
		return Session{}, ErrInvalidToken
	}
	c := &claims{}
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}, SkipClaimsValidation: true}
	token, err := parser.ParseWithClaims(raw, c, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid || c.Subject == "" {
		return Session{}, ErrInvalidToken
	}
	sess := Session{UID: c.Subject, Email: c.Email}
	if !c.VerifyExpiresAt(m.now().Unix(), true) {
		return sess, ErrExpiredToken
	}
	return sess, nil
}
