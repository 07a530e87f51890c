package middleware_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"qbank/internal/dto"
	"qbank/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

// ManualMockAuthService for testing middleware.AuthService interface
type ManualMockAuthService struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *ManualMockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

func (m *ManualMockAuthService) CreateJWT(ctx context.Context, userID, role string, ttl time.Duration) (string, error) {
	panic("not implemented in mock")
}

func claims(userID, role, tokenType string) *dto.AuthClaims {
	return &dto.AuthClaims{
		UserID:           userID,
		Role:             role,
		TokenType:        tokenType,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		validate       func(ctx context.Context, token string) (*dto.AuthClaims, error)
		expectedStatus int
		expectedUserID interface{}
		expectedRole   interface{}
	}{
		{
			name:           "No Auth Header",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "Malformed Auth Header - No Bearer",
			authHeader:     "Basic some_token",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "Valid Access Token",
			authHeader: "Bearer valid_access_token",
			validate: func(ctx context.Context, token string) (*dto.AuthClaims, error) {
				return claims("user123", "admin", "access"), nil
			},
			expectedStatus: fiber.StatusOK,
			expectedUserID: "user123",
			expectedRole:   "admin",
		},
		{
			name:       "Missing role defaults to user",
			authHeader: "Bearer legacy_token",
			validate: func(ctx context.Context, token string) (*dto.AuthClaims, error) {
				return claims("user123", "", "access"), nil
			},
			expectedStatus: fiber.StatusOK,
			expectedUserID: "user123",
			expectedRole:   "user",
		},
		{
			name:       "Invalid Token",
			authHeader: "Bearer invalid_token",
			validate: func(ctx context.Context, token string) (*dto.AuthClaims, error) {
				return nil, errors.New("invalid token")
			},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "Refresh Token instead of Access",
			authHeader: "Bearer valid_refresh_token",
			validate: func(ctx context.Context, token string) (*dto.AuthClaims, error) {
				return claims("user456", "user", "refresh"), nil
			},
			expectedStatus: fiber.StatusForbidden,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			authSvc := &ManualMockAuthService{ValidateJWTFunc: tc.validate}

			var userID, role interface{}
			app.Get("/protected", middleware.Protected(authSvc), func(c *fiber.Ctx) error {
				userID = c.Locals(middleware.UserIDKey)
				role = c.Locals(middleware.RoleKey)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			resp, err := app.Test(req, -1)

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			assert.Equal(t, tc.expectedUserID, userID)
			assert.Equal(t, tc.expectedRole, role)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	authSvc := &ManualMockAuthService{ValidateJWTFunc: func(ctx context.Context, token string) (*dto.AuthClaims, error) {
		if token == "admin" {
			return claims("a1", "admin", "access"), nil
		}
		return claims("u1", "user", "access"), nil
	}}

	app := fiber.New()
	app.Post("/admin", middleware.Protected(authSvc), middleware.AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendString(middleware.UserID(c))
	})

	req := httptest.NewRequest("POST", "/admin", nil)
	req.Header.Set("Authorization", "Bearer admin")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("POST", "/admin", nil)
	req.Header.Set("Authorization", "Bearer user")
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
