package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/social-service/internal/domain"
	apperrors "github.com/spec-kit/social-service/pkg/util"
)

type staticResolver struct {
	token   string
	user    *domain.User
	session *domain.Session
}

func (r *staticResolver) Resolve(_ context.Context, token string) (*domain.User, *domain.Session, error) {
	if token != r.token {
		return nil, nil, apperrors.NewUnauthorized("invalid token")
	}
	return r.user, r.session, nil
}

func newProtectedApp(resolver TokenResolver) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de.Code})
		},
	})
	mw := NewAuthMiddleware(resolver)
	app.Get("/me", mw.Handle, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(principal.User.Username)
	})
	return app
}

func TestMiddlewareFailsClosed(t *testing.T) {
	t.Parallel()
	resolver := &staticResolver{
		token:   "good-token",
		user:    &domain.User{ID: "u1", Username: "alice"},
		session: &domain.Session{ID: "s1", UserID: "u1"},
	}
	app := newProtectedApp(resolver)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Bearer good-token"},
		{"no token", "Token "},
		{"bare token", "good-token"},
		{"unknown token", "Token other-token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestMiddlewareLoadsPrincipal(t *testing.T) {
	t.Parallel()
	resolver := &staticResolver{
		token:   "good-token",
		user:    &domain.User{ID: "u1", Username: "alice"},
		session: &domain.Session{ID: "s1", UserID: "u1"},
	}
	app := newProtectedApp(resolver)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token good-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
