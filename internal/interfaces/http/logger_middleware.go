package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tht-textil/telas-api/pkg/logger"
)

// LoggerMiddleware asigna un request_id por petición, inyecta un logger con
// contexto en c.UserContext() (recuperable con logger.FromContext) y registra
// el acceso al terminar.
func LoggerMiddleware(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("X-Request-ID", requestID)

		log := base.With().
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Logger()
		c.SetUserContext(logger.WithContext(c.UserContext(), log))

		err := c.Next()

		log.Info().
			Int("status", c.Response().StatusCode()).
			Str("ip", c.IP()).
			Msg("request")
		return err
	}
}
