package handlers

import (
	"campus-notice-board/app/server/jwt"
	"campus-notice-board/app/server/types"
	"fmt"
	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"net/http"
)

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定并校验请求体
	var req types.LoginRequest
	if err := a.bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := a.users.FindByEmail(rctx, req.Email)
	if err != nil {
		return fmt.Errorf("find user by email: %w", err)
	}

	// 用户不存在时也校验一次，两种失败返回完全相同的错误
	passwordHash := a.dummyHash
	if user != nil {
		passwordHash = user.Password
	}

	// 提取密码 hash 并进行校验
	if match, _, err := argon2id.CheckHash(req.Password, passwordHash); err != nil {
		return fmt.Errorf("check password: %w", err)
	} else if !match || user == nil {
		return ErrInvalidCredentials
	}

	// 签出 JWT
	token, err := a.jwt.SignToken(&jwt.User{ID: user.ID})
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	// 返回
	return c.JSON(http.StatusOK, &types.LoginToken{
		Token: token,
	})
}
