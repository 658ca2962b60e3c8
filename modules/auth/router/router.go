package router

import (
	"travel-ticket-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		controller: controller,
	}
}

func (r *AuthRouter) Register(g *echo.Group) {
	g.POST("/login", r.controller.Login)
	g.POST("/logout", r.controller.Logout)
	g.GET("/user", r.controller.GetUser)
}
