package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/sku-lookup-api/internal/application/dto"
	"github.com/jhoicas/sku-lookup-api/pkg/jwt"
)

// LocalSessionID key de c.Locals con el id de sesión del request.
const LocalSessionID = "session_id"

// SessionHeader header alternativo a Authorization para el token de sesión; también
// se usa en la respuesta cuando el middleware emite un token nuevo.
const SessionHeader = "X-Session-Token"

// SessionIssuer emite y valida tokens de sesión firmados.
type SessionIssuer struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// Issue genera un id de sesión nuevo y su token.
func (s SessionIssuer) Issue() (token, sessionID string, err error) {
	sessionID = uuid.NewString()
	token, err = jwt.Generate(s.Secret, sessionID, s.Issuer, s.ExpMinutes)
	if err != nil {
		return "", "", err
	}
	return token, sessionID, nil
}

// SessionMiddleware resuelve el id de sesión desde "Authorization: Bearer <token>" o
// desde X-Session-Token. Sin token emite uno nuevo y lo devuelve en X-Session-Token.
func SessionMiddleware(iss SessionIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ""
		if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
			}
			tokenString = strings.TrimSpace(parts[1])
			if tokenString == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
			}
		} else {
			tokenString = strings.TrimSpace(c.Get(SessionHeader))
		}

		if tokenString == "" {
			token, sessionID, err := iss.Issue()
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo iniciar la sesión"})
			}
			c.Set(SessionHeader, token)
			c.Locals(LocalSessionID, sessionID)
			return c.Next()
		}

		sessionID, err := jwt.Parse(iss.Secret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalSessionID, sessionID)
		return c.Next()
	}
}

// GetSessionID devuelve el id de sesión del contexto (después de SessionMiddleware).
func GetSessionID(c *fiber.Ctx) string {
	v := c.Locals(LocalSessionID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
