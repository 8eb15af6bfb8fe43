package token

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contacts_backend/internal/feature/auth/domain/entity"
)

// ContextUser is the gin context key under which AuthRequired stores the
// resolved user.
const ContextUser = "currentUser"

// UserResolver turns a bearer token into an authenticated user.
// Following Go convention: the interface is defined by the consumer
// (middleware), not the provider (auth usecase).
type UserResolver interface {
	Resolve(ctx context.Context, bearer string) (*entity.User, error)
}

// AuthRequired returns a Gin middleware that validates the Authorization
// header and restricts access to authenticated users. All failures produce
// the same generic 401; the cause is only visible in logs.
func AuthRequired(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			slog.Warn("bearer token rejected", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser retrieves the user stored by AuthRequired.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}
