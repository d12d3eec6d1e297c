package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariebrainware/pilates-studio/util"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

const (
	SubjectKey = "subject"
	RoleKey    = "role"
)

var errMissingBearer = errors.New("missing bearer token")

// BearerAuth verifies HS256 tokens issued by the authentication service and
// stores the subject and role claims in the context. An empty secret disables
// verification.
func BearerAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		claims, err := parseBearer(c.GetHeader("Authorization"), key)
		if err != nil {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Full authentication is required to access this resource",
				Err: err,
			})
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set(SubjectKey, sub)
		} else if email, ok := claims["email"].(string); ok {
			c.Set(SubjectKey, email)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set(RoleKey, role)
		}
		c.Next()
	}
}

func parseBearer(header string, key []byte) (jwt.MapClaims, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" || raw == header {
		return nil, errMissingBearer
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GetSubject returns the authenticated subject, if any.
func GetSubject(c *gin.Context) (string, bool) {
	v, ok := c.Get(SubjectKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// RequireRole lets the request through only when the token carries one of roles.
// With verification disabled there is no role and every request passes.
func RequireRole(secret string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		role := c.GetString(RoleKey)
		if !util.Contains(role, roles) {
			util.CallForbidden(c, util.APIErrorParams{Msg: "Access is denied"})
			return
		}
		c.Next()
	}
}
