package auth

import (
	"travel-ticket-api/core/cache"
	"travel-ticket-api/core/config"
	"travel-ticket-api/modules/auth/controller"
	"travel-ticket-api/modules/auth/router"
	"travel-ticket-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, cfg config.AuthConfig, cache cache.Cache) {
	svc := service.NewAuthService(cfg, cache)
	ctrl := controller.NewAuthController(svc, cfg.SecureCookie)
	router.NewAuthRouter(ctrl).Register(g)
}
