package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sku-lookup-api/internal/application/dto"
)

// SessionHandler emisión explícita de tokens de sesión.
type SessionHandler struct {
	issuer SessionIssuer
}

// NewSessionHandler construye el handler.
func NewSessionHandler(issuer SessionIssuer) *SessionHandler {
	return &SessionHandler{issuer: issuer}
}

// Create godoc
// @Summary      Crear sesión
// @Description  Devuelve un token para enviar como Bearer o en X-Session-Token.
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  dto.SessionResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	token, _, err := h.issuer.Issue()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo crear la sesión"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SessionResponse{Token: token, ExpiresIn: h.issuer.ExpMinutes * 60})
}
