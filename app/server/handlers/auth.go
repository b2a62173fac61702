package handlers

import (
	"campus-notice-board/app/server/jwt"
	"campus-notice-board/app/server/validator"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
)

// currentUser 取出认证中间件放进 context 的调用者
func (a *App) currentUser(c echo.Context) (*jwt.User, error) {
	u, ok := jwt.UserFromContext(c.Request().Context())
	if !ok {
		return nil, ErrUnauthenticated
	}
	return u, nil
}

// bindAndValidate 绑定请求体并校验，失败时返回 *validator.ValidationError ，不产生任何副作用。
// 个别字段类型不对时其余字段已经解码，仍然一起校验
func (a *App) bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		if typeErr := validator.TypeError(err); typeErr != nil {
			return a.v.ValidateDecoded(req, typeErr)
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return validator.BodyError(fmt.Sprint(httpErr.Message))
		}
		return validator.BodyError("")
	}
	return a.v.Validate(req)
}
