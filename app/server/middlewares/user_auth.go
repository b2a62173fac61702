package middlewares

import (
	"campus-notice-board/app/server/handlers"
	"campus-notice-board/app/server/jwt"
	"errors"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"strings"
)

const userContextKey = "user"

// UserAuth 验证 Bearer token ，并把调用者放进请求的 context 。
// 没有 token 返回 401 ，有 token 但无效返回 403 。
func UserAuth(j *jwt.JWT) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey:  userContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return j.ParseUser(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, jwt.ErrInvalidToken) || hasBearer(c) {
				return handlers.ErrInvalidToken
			}
			return handlers.ErrUnauthenticated
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(func(c echo.Context) error {
			user, ok := c.Get(userContextKey).(*jwt.User)
			if !ok {
				return handlers.ErrInvalidToken
			}

			// 设置 context
			req := c.Request()
			c.SetRequest(req.WithContext(jwt.WithUser(req.Context(), user)))

			// 继续处理
			return next(c)
		})
	}
}

// hasBearer 报告请求是否带了非空的 Bearer token ，此时失败只可能是 token 本身无效
func hasBearer(c echo.Context) bool {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "bearer "
	return len(authHeader) > len(prefix) && strings.ToLower(authHeader[:len(prefix)]) == prefix
}
