package service

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"folio/internal/models"
)

// SessionCookieName is the cookie carrying the dashboard session token.
const SessionCookieName = "dashboard_session"

// SessionTTL is how long a dashboard session stays valid.
const SessionTTL = 24 * time.Hour

// Authorizer gates the admin surface. The same shared secret authorizes
// both API bearer requests and dashboard logins; dashboard logins are
// exchanged for a signed session token so the secret is sent only once.
type Authorizer struct {
	secret        string
	sessionSecret string
	now           func() time.Time
}

func NewAuthorizer(secret, sessionSecret string) *Authorizer {
	return &Authorizer{
		secret:        secret,
		sessionSecret: sessionSecret,
		now:           time.Now,
	}
}

// CheckSecret compares the presented secret with the configured one in
// constant time.
func (a *Authorizer) CheckSecret(presented string) bool {
	if a.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(a.secret)) == 1
}

// IssueSession mints a dashboard session token and returns it with its
// expiry.
func (a *Authorizer) IssueSession() (string, time.Time, error) {
	now := a.now()
	expiresAt := now.Add(SessionTTL)

	claims := jwt.MapClaims{
		"sub": "dashboard",
		"iss": "folio-api",
		"exp": expiresAt.Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.sessionSecret))
	if err != nil {
		return "", time.Time{}, models.NewUpstreamError(err)
	}
	return signed, expiresAt, nil
}

// ValidateSession reports whether the token is a currently valid dashboard
// session.
func (a *Authorizer) ValidateSession(tokenString string) bool {
	if tokenString == "" {
		return false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(a.sessionSecret), nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	sub, _ := claims["sub"].(string)
	return sub == "dashboard"
}
