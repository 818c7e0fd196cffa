package handler

import (
	"image-judge/internal/domain"
	"image-judge/internal/dto"
	"image-judge/internal/logger"
	"image-judge/internal/middleware"
	"image-judge/internal/service"
	"image-judge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionHandler handles quiz session HTTP requests
type SessionHandler struct {
	service   service.SessionService
	validator *validation.Validator
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(service service.SessionService) *SessionHandler {
	return &SessionHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateSession godoc
// @Summary Create a quiz session
// @Description Creates a session in the start phase. With a valid token the session is linked to the participant and its summary can be stored.
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} dto.SessionResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	resp, err := h.service.Create(c.Context(), middleware.UserID(c))
	if err != nil {
		logger.Get().Error("Failed to create session", zap.Error(err))
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSession godoc
// @Summary Get a quiz session
// @Description Returns the current phase, question, feedback and clock of a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	resp, err := h.service.Get(c.Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Consent godoc
// @Summary Record consent
// @Description Records whether the participant agrees to their results being stored and moves to the instructions
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ConsentRequest true "Consent choice"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/consent [post]
func (h *SessionHandler) Consent(c *fiber.Ctx) error {
	var req dto.ConsentRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateConsentRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Consent(c.Context(), middleware.SessionID(c), *req.Consented)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Begin godoc
// @Summary Begin the evaluation
// @Description Samples the images, assigns the mode order and shows the first question
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/begin [post]
func (h *SessionHandler) Begin(c *fiber.Ctx) error {
	resp, err := h.service.Begin(c.Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Answer godoc
// @Summary Answer the current question
// @Description Labels the current image as AI-generated or real. In the with-feedback half the result is shown until the session is advanced.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.AnswerRequest true "Label"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/answer [post]
func (h *SessionHandler) Answer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateAnswerRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Answer(c.Context(), middleware.SessionID(c), *req.AIGenerated)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Advance godoc
// @Summary Leave the feedback screen
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/advance [post]
func (h *SessionHandler) Advance(c *fiber.Ctx) error {
	resp, err := h.service.Advance(c.Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Summary godoc
// @Summary Get the session summary
// @Description Returns overall and per-mode statistics and the per-image details of a finished session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SummaryResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/summary [get]
func (h *SessionHandler) Summary(c *fiber.Ctx) error {
	resp, err := h.service.Summary(c.Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Restart godoc
// @Summary Restart a finished session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/restart [post]
func (h *SessionHandler) Restart(c *fiber.Ctx) error {
	resp, err := h.service.Restart(c.Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /healthz [get]
func (h *SessionHandler) Health(c *fiber.Ctx) error {
	if err := h.service.Ping(c.Context()); err != nil {
		logger.Get().Warn("Health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(middleware.ErrorResponse{
			Code:    "UNAVAILABLE",
			Message: "Session store is unavailable",
			Status:  fiber.StatusServiceUnavailable,
		})
	}
	return c.JSON(dto.HealthResponse{Status: "ok"})
}
