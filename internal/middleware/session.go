package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ams-api/internal/models"
	appErrors "github.com/noah-isme/ams-api/pkg/errors"
	"github.com/noah-isme/ams-api/pkg/response"
)

// ContextSessionKey is the gin context key storing the caller's models.Session.
const ContextSessionKey = "session"

// SessionParser verifies a bearer token.
type SessionParser interface {
	ParseToken(token string) (models.Session, error)
}

// Session attaches the caller's session when a valid bearer token is present. It never blocks;
// RequireRole decides whether an anonymous or invalid caller may continue.
func Session(parser SessionParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if ok {
			if session, err := parser.ParseToken(token); err == nil {
				c.Set(ContextSessionKey, session)
			}
		}
		c.Next()
	}
}

// RequireRole limits a route to the given roles when enforce is true. With enforcement off every
// route is open.
func RequireRole(enforce bool, roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		if !enforce {
			c.Next()
			return
		}
		session, ok := SessionFrom(c)
		if !ok {
			response.Abort(c, appErrors.Clone(appErrors.ErrAuthFailure, "login required"))
			return
		}
		if _, ok := allowed[session.Role()]; !ok {
			response.Abort(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// SessionFrom returns the session stored by Session.
func SessionFrom(c *gin.Context) (models.Session, bool) {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(models.Session)
	return session, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
