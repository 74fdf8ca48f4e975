package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-service/internal/domain"
	apperrors "github.com/spec-kit/social-service/pkg/util"
)

const principalKey = "auth_principal"

// TokenResolver maps a presented bearer token to its user and session. It is
// the single authentication strategy, chosen at startup.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, *domain.Session, error)
}

// Principal represents the authenticated caller.
type Principal struct {
	User    *domain.User
	Session *domain.Session
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	resolver TokenResolver
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(resolver TokenResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Handle enforces authentication for protected routes. Missing, malformed,
// unknown, and expired tokens all fail the same way.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("invalid token")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Token") || parts[1] == "" {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, session, err := m.resolver.Resolve(c.UserContext(), parts[1])
	if err != nil {
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user, Session: session})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
