package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"athletrack/internal/access"
	"athletrack/internal/apperr"
	"athletrack/internal/middleware"
	"athletrack/internal/models"
	"athletrack/internal/repositories"
	"athletrack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(auth *services.AuthService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(apperr.HTTPStatus(apperr.KindOf(err))).SendString(err.Error())
		},
	})
	app.Get("/me", middleware.AuthRequired(auth), func(c *fiber.Ctx) error {
		p := middleware.Principal(c)
		return c.SendString(p.ID + ":" + string(p.Role))
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	auth := services.NewAuthService(repositories.NewMemoryUserRepository(), "secret", time.Hour, nil, zap.NewNop())
	app := newApp(auth)

	token, err := auth.IssueToken(access.Principal{ID: "u-1", Username: "isaac", Role: models.RoleAthlete})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid token", "Bearer " + token, http.StatusOK, "u-1:athlete"},
		{"no header", "", http.StatusUnauthorized, services.ErrTokenMissing.Message},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, services.ErrTokenMissing.Message},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, services.ErrTokenMissing.Message},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, services.ErrTokenMalformed.Message},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.body)
		})
	}
}
