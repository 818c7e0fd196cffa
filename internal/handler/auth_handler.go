package handler

import (
	"image-judge/internal/dto"
	"image-judge/internal/logger"
	"image-judge/internal/middleware"
	"image-judge/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// IssueAnonymous issues a new anonymous participant identity.
// @Summary Issue anonymous identity
// @Description Returns a signed token identifying an anonymous participant. Sessions created with this token can be stored for research.
// @Tags auth
// @Produce json
// @Success 201 {object} dto.AnonymousTokenResponse
// @Failure 503 {object} middleware.ErrorResponse "Identity is not configured"
// @Router /auth/anonymous [post]
func (h *AuthHandler) IssueAnonymous(c *fiber.Ctx) error {
	resp, err := h.authService.IssueAnonymous(c.Context())
	if err != nil {
		logger.Get().Warn("Failed to issue anonymous identity", zap.Error(err))
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Me returns the identity of the presented token.
// @Summary Current identity
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.IdentityResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(dto.IdentityResponse{
		UserID:    middleware.UserID(c),
		Anonymous: true,
	})
}
