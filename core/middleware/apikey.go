package middleware

import (
	"crypto/subtle"

	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/controller"
	"travel-ticket-api/core/errors"
	"travel-ticket-api/core/logger"

	"github.com/labstack/echo/v4"
)

// APIKey rejects requests whose x-api-key header does not match key.
func APIKey(key string) echo.MiddlewareFunc {
	expected := []byte(key)
	base := controller.NewBaseController()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := []byte(c.Request().Header.Get(constants.HeaderAPIKey))
			if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
				logger.Warn("Middleware:APIKey:Rejected", "path", c.Path(), "remote_ip", c.RealIP())
				return base.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Invalid or missing API key", nil))
			}
			return next(c)
		}
	}
}
