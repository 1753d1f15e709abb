package auth

import (
	"fmt"
	"net/http"
	"time"

	"portfolio_backend/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

const sessionSubject = "admin"

// SignedGate - тот же контракт, но значение cookie - HS256 JWT,
// который проверяется на каждом запросе
type SignedGate struct {
	creds   Credentials
	secret  []byte
	timeout time.Duration
	secure  bool
	now     func() time.Time
}

func NewSignedGate(creds Credentials, secret string, secure bool) (*SignedGate, error) {
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required for signed sessions")
	}

	return &SignedGate{
		creds:   creds,
		secret:  []byte(secret),
		timeout: SessionMaxAge * time.Second,
		secure:  secure,
		now:     time.Now,
	}, nil
}

func (g *SignedGate) Login(email, password string) (*http.Cookie, error) {
	if !g.creds.Matches(email, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := g.generateToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return sessionCookie(token, SessionMaxAge, g.secure), nil
}

func (g *SignedGate) Logout() *http.Cookie {
	return sessionCookie("", -1, g.secure)
}

func (g *SignedGate) IsAuthenticated(cookie CookieFunc) bool {
	value, err := cookie(CookieName)
	if err != nil || value == "" {
		return false
	}
	return g.validateToken(value) == nil
}

func (g *SignedGate) generateToken() (string, error) {
	now := g.now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionSubject,
		ExpiresAt: jwt.NewNumericDate(now.Add(g.timeout)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (g *SignedGate) validateToken(tokenString string) error {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(sessionSubject),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("invalid session token")
	}
	return nil
}
