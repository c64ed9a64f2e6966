// Package auth verifies sessions issued by the external identity provider.
// The provider signs HS256 JWTs with a shared secret; this service only
// verifies them and never issues tokens itself.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller, passed explicitly to handlers
// instead of living in ambient request state.
type Identity struct {
	UserID string
}

const identityKey = "auth.identity"

var ErrNoIdentity = errors.New("no identity in context")

// Middleware rejects requests without a valid bearer token and stores the
// caller's Identity in the gin context.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := verify(secret, c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		SetIdentity(c, ident)
		c.Next()
	}
}

// SetIdentity stores the identity in the gin context. Exposed for handler
// tests; production requests go through Middleware.
func SetIdentity(c *gin.Context, ident Identity) {
	c.Set(identityKey, ident)
}

// FromContext returns the Identity set by Middleware.
func FromContext(c *gin.Context) (Identity, error) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, ErrNoIdentity
	}
	ident, ok := v.(Identity)
	if !ok {
		return Identity{}, ErrNoIdentity
	}
	return ident, nil
}

func verify(secret, header string) (Identity, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return Identity{}, errors.New("missing bearer token")
	}

	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return Identity{}, errors.New("token has no subject")
	}
	return Identity{UserID: claims.Subject}, nil
}
