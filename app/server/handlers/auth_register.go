package handlers

import (
	"campus-notice-board/app/server/jwt"
	"campus-notice-board/app/server/store"
	"campus-notice-board/app/server/types"
	"errors"
	"fmt"
	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

func (a *App) AuthRegister(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定并校验请求体
	var req types.RegisterRequest
	if err := a.bindAndValidate(c, &req); err != nil {
		return err
	}

	// 邮箱已被注册
	if existing, err := a.users.FindByEmail(rctx, req.Email); err != nil {
		return fmt.Errorf("find user by email: %w", err)
	} else if existing != nil {
		return ErrConflict
	}

	// 处理密码
	passwordHash, err := argon2id.CreateHash(req.Password, a.argon)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// 创建用户，并发注册同一个邮箱时由唯一索引兜底
	user, err := a.users.CreateUser(rctx, req.Email, passwordHash, req.Name)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}

	// 签出 JWT
	token, err := a.jwt.SignToken(&jwt.User{ID: user.ID})
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	a.l.Info("user registered", zap.String("userID", user.ID))

	return c.JSON(http.StatusOK, &types.LoginToken{
		Token: token,
	})
}
