package auth

import (
	"crypto/subtle"
	"net/http"

	"portfolio_backend/internal/config"
	"portfolio_backend/pkg/apperrors"
)

const (
	// CookieName - cookie админской сессии
	CookieName = "admin_authenticated"
	// SessionMaxAge - время жизни cookie в секундах (сутки)
	SessionMaxAge = 60 * 60 * 24
)

// CookieFunc читает cookie запроса; совпадает с (*gin.Context).Cookie
type CookieFunc func(name string) (string, error)

// SessionGate решает, является ли вызывающий админом.
// Мутирующие операции вызывают IsAuthenticated до любой другой обработки.
type SessionGate interface {
	Login(email, password string) (*http.Cookie, error)
	Logout() *http.Cookie
	IsAuthenticated(cookie CookieFunc) bool
}

// Credentials - единственная пара логин/пароль админа
type Credentials struct {
	Email    string
	Password string
}

// Matches сравнивает побайтово за постоянное время
func (c Credentials) Matches(email, password string) bool {
	emailMatch := subtle.ConstantTimeCompare([]byte(email), []byte(c.Email)) == 1
	passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return emailMatch && passwordMatch && c.Email != "" && c.Password != ""
}

// StaticGate: значение cookie - литерал "true" без подписи и серверной сессии
type StaticGate struct {
	creds  Credentials
	secure bool
}

func NewStaticGate(creds Credentials, secure bool) *StaticGate {
	return &StaticGate{creds: creds, secure: secure}
}

func (g *StaticGate) Login(email, password string) (*http.Cookie, error) {
	if !g.creds.Matches(email, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return sessionCookie("true", SessionMaxAge, g.secure), nil
}

func (g *StaticGate) Logout() *http.Cookie {
	return sessionCookie("", -1, g.secure)
}

func (g *StaticGate) IsAuthenticated(cookie CookieFunc) bool {
	value, err := cookie(CookieName)
	return err == nil && value == "true"
}

// NewGate выбирает реализацию по auth.session_mode
func NewGate(cfg *config.Config) (SessionGate, error) {
	creds := Credentials{Email: cfg.Auth.AdminEmail, Password: cfg.Auth.AdminPassword}
	secure := !cfg.IsDevelopment()

	if cfg.Auth.SessionMode == config.SessionModeSigned {
		return NewSignedGate(creds, cfg.Auth.Secret, secure)
	}
	return NewStaticGate(creds, secure), nil
}

// sessionCookie: maxAge < 0 дает "Max-Age=0" (немедленное удаление)
func sessionCookie(value string, maxAge int, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}
