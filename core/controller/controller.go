package controller

import (
	"net/http"
	"time"

	"travel-ticket-api/core/errors"
	"travel-ticket-api/core/logger"

	"github.com/labstack/echo/v4"
)

// Response types
type (
	MessageResponse struct {
		Message string `json:"message"`
	}

	ErrorResponse struct {
		Status    string           `json:"status"`
		Code      errors.ErrorCode `json:"code"`
		Message   string           `json:"message"`
		Error     string           `json:"error"`
		Details   any              `json:"details,omitempty"`
		Timestamp time.Time        `json:"timestamp"`
	}
)

type BaseController interface {
	OK(c echo.Context, body any) error
	Created(c echo.Context, body any) error
	ErrorResponse(c echo.Context, err error) error
}

type responseHandler struct{}

func NewBaseController() BaseController {
	return &responseHandler{}
}

func NewErrorBody(appErrCode errors.ErrorCode, message string, details ...any) *ErrorResponse {
	body := &ErrorResponse{
		Status:    "error",
		Code:      appErrCode,
		Message:   message,
		Error:     message,
		Timestamp: time.Now(),
	}
	if len(details) > 0 && details[0] != nil {
		body.Details = details[0]
	}
	return body
}

// StatusFor maps an error code onto the HTTP status returned to clients.
func StatusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrInvalidInput, errors.ErrInvalidRequestData:
		return http.StatusBadRequest
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *responseHandler) OK(c echo.Context, body any) error {
	return c.JSON(http.StatusOK, body)
}

func (h *responseHandler) Created(c echo.Context, body any) error {
	return c.JSON(http.StatusCreated, body)
}

// ErrorResponse writes err as a JSON error body. AppErrors keep their code and
// message; anything else becomes a 500 with its text.
func (h *responseHandler) ErrorResponse(c echo.Context, err error) error {
	httpStatus := http.StatusInternalServerError
	appCode := errors.ErrInternalServer
	msg := "internal server error"
	var details any

	if err != nil {
		var ae *errors.AppError
		if errors.As(err, &ae) && ae != nil {
			appCode = ae.Code
			httpStatus = StatusFor(appCode)
			if ae.Message != "" {
				msg = ae.Message
			}
			if ae.Err != nil && httpStatus == http.StatusInternalServerError {
				details = ae.Err.Error()
			}
		} else if err.Error() != "" {
			msg = err.Error()
		}
	}

	if httpStatus >= http.StatusInternalServerError {
		logger.Error("BaseController:ErrorResponse",
			"status", httpStatus,
			"code", appCode,
			"message", msg,
			"error", err,
		)
	} else {
		logger.Warn("BaseController:ErrorResponse",
			"status", httpStatus,
			"code", appCode,
			"message", msg,
		)
	}
	return c.JSON(httpStatus, NewErrorBody(appCode, msg, details))
}

// HTTPErrorHandler renders errors raised outside handlers, such as unknown
// routes, body limits and recovered panics, in the same body as ErrorResponse.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		_ = NewBaseController().ErrorResponse(c, err)
		return
	}

	code := errors.ErrInvalidRequestData
	switch {
	case he.Code == http.StatusUnauthorized:
		code = errors.ErrUnauthorized
	case he.Code == http.StatusNotFound:
		code = errors.ErrNotFound
	case he.Code >= http.StatusInternalServerError:
		code = errors.ErrInternalServer
	}

	msg := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok && m != "" {
		msg = m
	}
	if err := c.JSON(he.Code, NewErrorBody(code, msg)); err != nil {
		logger.Error("BaseController:HTTPErrorHandler:Write", "error", err)
	}
}
