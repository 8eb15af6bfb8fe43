// Package router wires the HTTP routes for the API.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authhandler "contacts_backend/internal/feature/auth/transport/handler"
	contacthandler "contacts_backend/internal/feature/contacts/transport/handler"
	userhandler "contacts_backend/internal/feature/users/transport/handler"
	platformhandler "contacts_backend/internal/platform/http/handler"
	"contacts_backend/internal/platform/token"
	"contacts_backend/internal/shared/ratelimiter"
)

// Handlers groups the feature handlers the router mounts.
type Handlers struct {
	Auth     *authhandler.AuthHandler
	Users    *userhandler.UserHandler
	Contacts *contacthandler.ContactHandler
}

// NewRouter builds the gin engine with all API routes.
//
// Routes under /api require a bearer access token except the auth
// endpoints. Write-heavy and abuse-prone endpoints carry an additional
// per-client rate limit.
func NewRouter(h Handlers, resolver token.UserResolver, limiter *ratelimiter.Limiter, db *gorm.DB) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/healthz", platformhandler.Health(db))
	r.HEAD("/healthz", platformhandler.Health(db))

	api := r.Group("/api")

	// public auth endpoints
	auth := api.Group("/auth")
	auth.POST("/signup", limiter.Middleware("signup", 5, time.Minute), h.Auth.Signup)
	auth.POST("/login", limiter.Middleware("login", 10, time.Minute), h.Auth.Login)
	auth.GET("/refresh_token", h.Auth.Refresh)
	auth.GET("/confirmed_email/:token", h.Auth.ConfirmEmail)
	auth.POST("/request_email", limiter.Middleware("request_email", 3, time.Minute), h.Auth.RequestEmail)

	// everything else requires a valid access token
	protected := api.Group("")
	protected.Use(token.AuthRequired(resolver))
	{
		users := protected.Group("/users")
		users.GET("/me", limiter.Middleware("me", 10, time.Minute), h.Users.Me)
		users.PATCH("/avatar", limiter.Middleware("avatar", 5, time.Minute), h.Users.UpdateAvatar)

		contacts := protected.Group("/contacts")
		contacts.POST("", limiter.Middleware("contacts_write", 30, time.Minute), h.Contacts.Create)
		contacts.GET("", h.Contacts.List)
		contacts.GET("/search", h.Contacts.Search)
		contacts.GET("/birthdays", h.Contacts.Birthdays)
		contacts.GET("/:id", h.Contacts.Get)
		contacts.PUT("/:id", h.Contacts.Update)
		contacts.DELETE("/:id", h.Contacts.Delete)
	}

	return r
}
