package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-copilot/internal/api/dto"
	"github.com/spec-kit/support-copilot/internal/service"
	"github.com/spec-kit/support-copilot/pkg/util/errorutil"
)

// AuthHandler exposes the client token endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// IssueToken handles POST /auth/token.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if req.ClientID == "" || req.ClientSecret == "" {
		return errorutil.NewValidationError("client_id and client_secret required", nil)
	}

	meta, token, err := h.auth.IssueToken(c.UserContext(), req.ClientID, req.ClientSecret)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{Token: token, ExpiresAt: meta.ExpiresAt}})
}
