package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"image-judge/internal/dto"
	"image-judge/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ManualMockAuthService implements service.AuthService for middleware tests.
type ManualMockAuthService struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *ManualMockAuthService) Enabled() bool { return true }

func (m *ManualMockAuthService) IssueAnonymous(ctx context.Context) (*dto.AnonymousTokenResponse, error) {
	panic("not implemented in mock")
}

func (m *ManualMockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

func validTokenService(t *testing.T) *ManualMockAuthService {
	return &ManualMockAuthService{
		ValidateJWTFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
			if tokenString == "valid_token" {
				return &dto.AuthClaims{UserID: "user123", Anonymous: true}, nil
			}
			return nil, errors.New("token is malformed")
		},
	}
}

func echoUserID(c *fiber.Ctx) error {
	return c.SendString(middleware.UserID(c))
}

func TestOptionalAuth(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		expectedUserID string
	}{
		{name: "No Auth Header", authHeader: "", expectedUserID: ""},
		{name: "Valid Token", authHeader: "Bearer valid_token", expectedUserID: "user123"},
		{name: "Invalid Token", authHeader: "Bearer invalid_token", expectedUserID: ""},
		{name: "Wrong Scheme", authHeader: "Basic dXNlcjpwYXNz", expectedUserID: ""},
		{name: "Empty Token", authHeader: "Bearer ", expectedUserID: ""},
		{name: "Lowercase Scheme", authHeader: "bearer valid_token", expectedUserID: "user123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/test", middleware.OptionalAuth(validTokenService(t)), echoUserID)

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set(middleware.AuthorizationHeader, tt.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.expectedUserID, string(body))
		})
	}
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{name: "Valid Token", authHeader: "Bearer valid_token", expectedStatus: fiber.StatusOK, expectedBody: "user123"},
		{name: "Missing Header", authHeader: "", expectedStatus: fiber.StatusUnauthorized, expectedBody: "MISSING_AUTH_HEADER"},
		{name: "Wrong Scheme", authHeader: "Token abc", expectedStatus: fiber.StatusUnauthorized, expectedBody: "INVALID_AUTH_SCHEME"},
		{name: "Empty Token", authHeader: "Bearer ", expectedStatus: fiber.StatusUnauthorized, expectedBody: "EMPTY_TOKEN"},
		{name: "Bare Scheme", authHeader: "Bearer", expectedStatus: fiber.StatusUnauthorized, expectedBody: "EMPTY_TOKEN"},
		{name: "Scheme Without Separator", authHeader: "Bearervalid_token", expectedStatus: fiber.StatusUnauthorized, expectedBody: "INVALID_AUTH_SCHEME"},
		{name: "Lowercase Scheme", authHeader: "bearer valid_token", expectedStatus: fiber.StatusOK, expectedBody: "user123"},
		{name: "Invalid Token", authHeader: "Bearer nope", expectedStatus: fiber.StatusUnauthorized, expectedBody: "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/test", middleware.Protected(validTokenService(t)), echoUserID)

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set(middleware.AuthorizationHeader, tt.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.expectedBody)
		})
	}
}
