package auth

import (
	"context"
	"net/http"
	"strings"

	"task-planner/internal/errors"
)

// Provider resolves the user behind an HTTP request.
// ok is false when the request carries no valid credential; err is reserved
// for failures while checking one.
type Provider interface {
	CurrentUser(r *http.Request) (userID string, ok bool, err error)
}

// Authenticator resolves a bearer token to a user id
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// TokenProvider reads a bearer token from the Authorization header or a session cookie
type TokenProvider struct {
	authenticator Authenticator
	cookieName    string
}

// NewTokenProvider creates a Provider over authenticator
func NewTokenProvider(authenticator Authenticator, cookieName string) *TokenProvider {
	return &TokenProvider{authenticator: authenticator, cookieName: cookieName}
}

// CurrentUser implements Provider
func (p *TokenProvider) CurrentUser(r *http.Request) (string, bool, error) {
	token := p.Token(r)
	if token == "" {
		return "", false, nil
	}

	userID, err := p.authenticator.Authenticate(r.Context(), token)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeAuth) {
			return "", false, nil
		}
		return "", false, err
	}
	return userID, true, nil
}

// Token extracts the raw credential; the header wins over the cookie
func (p *TokenProvider) Token(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, value, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(value)
		}
		return ""
	}

	if p.cookieName != "" {
		if cookie, err := r.Cookie(p.cookieName); err == nil {
			return strings.TrimSpace(cookie.Value)
		}
	}
	return ""
}
