package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fundraiser/internal/domain"
)

// CookieName is the HTTP-only cookie carrying the session token.
const CookieName = "auth_token"

// Claims is the verified content of a session token.
type Claims struct {
	UserID string
	Role   domain.Role
}

// TokenService mints and verifies HS256 session tokens. The secret is loaded
// once at startup and read-only afterwards.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user id and role.
func (s *TokenService) Issue(userID string, role domain.Role) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string. Expired, malformed and
// wrong-signature tokens all come back as an error; callers treat every
// failure the same as an absent token.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("missing subject claim")
	}
	role, _ := claims["role"].(string)
	return &Claims{UserID: sub, Role: domain.Role(role)}, nil
}

// Cookie wraps a signed token in the session cookie.
func (s *TokenService) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie.
func (s *TokenService) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// TokenFromRequest extracts the raw session token from the request cookie.
func TokenFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// ClaimsFromRequest verifies the request's session cookie in one step.
func (s *TokenService) ClaimsFromRequest(r *http.Request) (*Claims, error) {
	token, ok := TokenFromRequest(r)
	if !ok {
		return nil, fmt.Errorf("no session cookie: %w", domain.ErrUnauthorized)
	}
	return s.Verify(token)
}
