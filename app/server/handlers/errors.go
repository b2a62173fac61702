package handlers

import (
	"campus-notice-board/app/server/types"
	"campus-notice-board/app/server/validator"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"strings"
)

// AppError 是可以直接展示给调用方的错误
type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	ErrConflict           = &AppError{Status: http.StatusBadRequest, Code: "CONFLICT", Message: "User already exists"}
	ErrInvalidCredentials = &AppError{Status: http.StatusBadRequest, Code: "INVALID_CREDENTIALS", Message: "Invalid credentials"}
	ErrUnauthenticated    = &AppError{Status: http.StatusUnauthorized, Code: "UNAUTHENTICATED", Message: "No token provided"}
	ErrInvalidToken       = &AppError{Status: http.StatusForbidden, Code: "INVALID_TOKEN", Message: "Invalid token"}
	ErrForbidden          = &AppError{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: "Not authorized"}
	ErrNotFound           = &AppError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "Notice not found"}
)

// ErrorHandler 是唯一把错误转换成响应的地方，作为 echo 的 HTTPErrorHandler 使用。
// 除了 AppError 、校验错误和 echo 自身的 HTTPError ，其余错误一律按 500 处理且不暴露原因。
func (a *App) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		status int
		body   types.ErrorMessage

		validationErr *validator.ValidationError
		appErr        *AppError
		httpErr       *echo.HTTPError
	)
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		body = types.ErrorMessage{Code: "VALIDATION_ERROR", Message: "Invalid request", Errors: validationErr.Fields}
	case errors.As(err, &appErr):
		status = appErr.Status
		body = types.ErrorMessage{Code: appErr.Code, Message: appErr.Message}
	case errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError:
		status = httpErr.Code
		body = types.ErrorMessage{Code: statusCode(status), Message: http.StatusText(status)}
		if status == http.StatusNotFound {
			// 路由不存在，和公告不存在区分开
			body.Code = "ROUTE_NOT_FOUND"
		}
	default:
		a.l.Error("unhandled error",
			zap.String("method", c.Request().Method),
			zap.String("URI", c.Request().RequestURI),
			zap.Error(err),
		)
		status = http.StatusInternalServerError
		body = types.ErrorMessage{Code: "INTERNAL_ERROR", Message: http.StatusText(status)}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, &body)
	}
	if err != nil {
		a.l.Error("failed to write error response", zap.Error(err))
	}
}

// statusCode 把 "Method Not Allowed" 转换成 "METHOD_NOT_ALLOWED"
func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
