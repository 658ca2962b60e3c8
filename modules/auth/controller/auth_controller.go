package controller

import (
	"net/http"
	"time"

	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/controller"
	"travel-ticket-api/core/errors"
	"travel-ticket-api/modules/auth/dto"
	"travel-ticket-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	service      *service.AuthService
	secureCookie bool
}

func NewAuthController(service *service.AuthService, secureCookie bool) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		service:        service,
		secureCookie:   secureCookie,
	}
}

// Login handles POST /login
func (c *AuthController) Login(ctx echo.Context) error {
	req := new(dto.LoginRequest)
	if err := ctx.Bind(req); err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request data", err))
	}

	session, err := c.service.Login(ctx.Request().Context(), req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	ctx.SetCookie(c.sessionCookie(session.Token, session.ExpiresAt))
	return c.OK(ctx, dto.LoginResponse{Success: true, Name: session.Name})
}

// Logout handles POST /logout
func (c *AuthController) Logout(ctx echo.Context) error {
	if err := c.service.Logout(ctx.Request().Context(), sessionToken(ctx)); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	expired := c.sessionCookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	ctx.SetCookie(expired)
	return c.OK(ctx, dto.SuccessResponse{Success: true})
}

// GetUser handles GET /user. Anonymous callers get 401 with the placeholder name.
func (c *AuthController) GetUser(ctx echo.Context) error {
	claims, err := c.service.CurrentUser(ctx.Request().Context(), sessionToken(ctx))
	if err != nil {
		if errors.CodeOf(err) == errors.ErrUnauthorized {
			return ctx.JSON(http.StatusUnauthorized, dto.UserResponse{Name: "User"})
		}
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, dto.UserResponse{Name: claims.Name})
}

func (c *AuthController) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

func sessionToken(ctx echo.Context) string {
	cookie, err := ctx.Cookie(constants.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
