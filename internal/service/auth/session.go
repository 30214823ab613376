package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/kraftfix/kraftfix-api/internal/config"
)

// Credential is an issued session credential and the cookie that carries it.
type Credential struct {
	Token     string
	ExpiresAt time.Time
	Cookie    *http.Cookie
}

// CookiePolicy holds the attributes of the session cookie.
type CookiePolicy struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

// NewCookiePolicy derives cookie attributes from the deployment environment.
// Development gets SameSite=Strict without Secure. Any deployed environment
// gets SameSite=None so the separately hosted frontend can send the cookie,
// and browsers only accept SameSite=None together with Secure.
func NewCookiePolicy(cookieName string, server config.ServerConfig) CookiePolicy {
	policy := CookiePolicy{
		Name:     cookieName,
		Secure:   server.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	}
	if server.Environment != "" && server.Environment != config.EnvDevelopment {
		policy.SameSite = http.SameSiteNoneMode
		policy.Secure = true
	}
	return policy
}

// SessionService issues and revokes session credentials. It keeps no
// per-user state; credentials are self-contained signed tokens.
type SessionService struct {
	tokens JWTService
	policy CookiePolicy
}

// NewSessionService creates a SessionService.
func NewSessionService(tokens JWTService, policy CookiePolicy) *SessionService {
	if tokens == nil {
		panic("tokens cannot be nil")
	}
	if policy.Name == "" {
		policy.Name = "token"
	}
	return &SessionService{tokens: tokens, policy: policy}
}

// CookieName is the name of the session cookie.
func (s *SessionService) CookieName() string {
	return s.policy.Name
}

// Issue signs a credential for identity and builds the HTTP-only cookie
// carrying it.
func (s *SessionService) Issue(ctx context.Context, identity string) (*Credential, error) {
	token, err := s.tokens.GenerateToken(ctx, identity)
	if err != nil {
		return nil, err
	}

	cookie := s.baseCookie()
	cookie.Value = token.Value
	cookie.Expires = token.Claims.ExpiresAt

	return &Credential{
		Token:     token.Value,
		ExpiresAt: token.Claims.ExpiresAt,
		Cookie:    cookie,
	}, nil
}

// Revoke returns a cookie that clears the session cookie immediately.
// It is safe to call without an existing session.
func (s *SessionService) Revoke() *http.Cookie {
	cookie := s.baseCookie()
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0).UTC()
	return cookie
}

func (s *SessionService) baseCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.policy.Name,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.policy.Secure,
		SameSite: s.policy.SameSite,
	}
}
