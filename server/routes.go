package server

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bloodcare/bloodcare/auth"
	"github.com/bloodcare/bloodcare/middleware/jwtware"
)

func (s *Server) registerRoutes() {
	api := s.app.Group("/api")

	// runs on every request: anonymous requests pass through, bearer
	// tokens get decoded and resolved into a security context. The auth
	// endpoints are skipped so validate can answer false for bad tokens
	// instead of short-circuiting with 401.
	api.Use(jwtware.New(jwtware.Config{
		Filter: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/auth/")
		},
		ContextKey:     s.cfg.GetContextKey(),
		TokenLookup:    s.cfg.GetTokenLookup(),
		AuthScheme:     s.cfg.GetAuthScheme(),
		TokenValidator: s.auther.TokenService(),
		AccountResolver: func(ctx context.Context, subject string) (*auth.SecurityContext, error) {
			account, err := s.auther.Verifier().Resolve(ctx, subject)
			if err != nil {
				return nil, err
			}
			return auth.NewSecurityContext(account), nil
		},
	}))

	authGroup := api.Group("/auth")
	authGroup.Post("/login", s.handleLogin)
	authGroup.Post("/logout", s.handleLogout)
	authGroup.Get("/validate", s.handleValidate)
	authGroup.Post("/register", s.handleRegister)

	api.Get("/profile", jwtware.RequireAuthenticated(), s.handleProfile)

	admin := api.Group("/admin", jwtware.RequireAuthority(auth.AuthorityPrefix+auth.RoleAdmin))
	admin.Get("/accounts", s.handleListAccounts)
	admin.Get("/accounts/:id", s.handleGetAccount)
	admin.Get("/profiles/:id", s.handleGetAccountProfile)

	events := api.Group("/event")
	events.Get("/getall", s.handleListEvents)
	events.Get("/:id", s.handleGetEvent)
	staffOnly := jwtware.RequireAuthority(auth.AuthorityPrefix + auth.RoleStaff)
	events.Post("/create", staffOnly, s.handleCreateEvent)
	events.Put("/update/:id", staffOnly, s.handleUpdateEvent)
	events.Delete("/delete/:id", staffOnly, s.handleDeleteEvent)
}
