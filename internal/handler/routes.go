package handler

import (
	"image-judge/internal/middleware"
	"image-judge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// RegisterRoutes mounts the API, health check and swagger UI on app.
func RegisterRoutes(app *fiber.App, sessionService service.SessionService, authService service.AuthService) {
	sessionHandler := NewSessionHandler(sessionService)
	authHandler := NewAuthHandler(authService)
	validator := middleware.NewValidationMiddleware()

	app.Get("/healthz", sessionHandler.Health)
	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/anonymous", authHandler.IssueAnonymous)
	authGroup.Get("/me", middleware.Protected(authService), authHandler.Me)

	sessions := apiGroup.Group("/sessions")
	sessions.Post("/", middleware.OptionalAuth(authService), sessionHandler.CreateSession)

	validID := validator.ValidateSessionID()
	sessions.Get("/:id", validID, sessionHandler.GetSession)
	sessions.Post("/:id/consent", validID, sessionHandler.Consent)
	sessions.Post("/:id/begin", validID, sessionHandler.Begin)
	sessions.Post("/:id/answer", validID, sessionHandler.Answer)
	sessions.Post("/:id/advance", validID, sessionHandler.Advance)
	sessions.Get("/:id/summary", validID, sessionHandler.Summary)
	sessions.Post("/:id/restart", validID, sessionHandler.Restart)
}
