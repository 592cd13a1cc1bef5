package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"fieldrep/internal/session"
	"fieldrep/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMissing = errors.New("authorization is missing")
	ErrTokenFormat  = errors.New("invalid authorization format, expected 'Bearer <token>'")
)

// Claims is the access token payload issued by the identity provider.
type Claims struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Headquarters string `json:"hq,omitempty"`
	jwt.RegisteredClaims
}

// TokenFromRequest reads the access_token cookie, falling back to the
// Authorization header.
func TokenFromRequest(c *gin.Context) (string, error) {
	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		return token, nil
	}
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", ErrTokenMissing
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrTokenFormat
	}
	return parts[1], nil
}

// ParseToken verifies an HMAC-signed token and returns the session it
// identifies.
func ParseToken(tokenString string, secret []byte) (session.Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return session.Session{}, err
	}
	if !token.Valid {
		return session.Session{}, jwt.ErrTokenInvalidClaims
	}

	s := session.Session{
		OwnerID:      claims.Subject,
		DisplayName:  claims.Name,
		Email:        claims.Email,
		Headquarters: claims.Headquarters,
	}
	if !s.Valid() {
		return session.Session{}, session.ErrIdentityMissing
	}
	return s, nil
}

// IssueToken signs a token for s. Used by tests and local tooling; real
// tokens come from the identity provider.
func IssueToken(s session.Session, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:         s.DisplayName,
		Email:        s.Email,
		Headquarters: s.Headquarters,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.OwnerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Authenticate validates the access token and puts the representative's
// session on the request context.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := TokenFromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
			return
		}

		s, err := ParseToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token: "+err.Error()))
			return
		}

		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), s))
		c.Set("ownerID", s.OwnerID)
		c.Next()
	}
}
