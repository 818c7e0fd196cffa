package middleware

import (
	"strings"

	"image-judge/internal/logger"
	"image-judge/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer"
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
)

// Protected requires a valid anonymous identity token and sets the userID in the context.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := authService.ValidateJWT(c.Context(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

// OptionalAuth sets the userID in the context when a valid token is presented and
// otherwise lets the request through anonymously. A session created without a user id
// is never persisted.
func OptionalAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Next()
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			logger.Get().Debug("OptionalAuth: Authorization scheme is not Bearer, proceeding as anonymous.")
			return c.Next()
		}
		if tokenString == "" {
			logger.Get().Debug("OptionalAuth: Token is empty after trimming Bearer prefix, proceeding as anonymous.")
			return c.Next()
		}

		claims, err := authService.ValidateJWT(c.Context(), tokenString)
		if err != nil {
			logger.Get().Debug("OptionalAuth: JWT validation failed, proceeding as anonymous.", zap.Error(err))
			return c.Next()
		}

		c.Locals(UserIDKey, claims.UserID)
		logger.Get().Debug("OptionalAuth: User identified.", zap.String("userID", claims.UserID))
		return c.Next()
	}
}

// UserID returns the user id set by Protected or OptionalAuth, or "".
func UserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(UserIDKey).(string)
	return userID
}

// bearerToken splits an Authorization value into its scheme and credentials. The scheme
// matches case-insensitively, and a bare "Bearer" yields an empty token since header
// values arrive with surrounding whitespace trimmed.
func bearerToken(header string) (string, bool) {
	scheme, token, _ := strings.Cut(strings.TrimSpace(header), " ")
	if !strings.EqualFold(scheme, BearerSchema) {
		return "", false
	}
	return strings.TrimSpace(token), true
}
