package handlers

import (
	"campus-notice-board/app/server/jwt"
	"campus-notice-board/app/server/models"
	"campus-notice-board/app/server/store"
	"campus-notice-board/app/server/validator"
	"context"
	"fmt"
	"github.com/alexedwards/argon2id"
	"go.uber.org/zap"
)

// UserStore 是 handler 需要的用户表操作
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash, name string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// NoticeStore 是 handler 需要的公告表操作
type NoticeStore interface {
	Create(ctx context.Context, notice *models.Notice) (*models.Notice, error)
	ListAll(ctx context.Context) ([]models.Notice, error)
	GetByID(ctx context.Context, id string) (*models.Notice, error)
	Update(ctx context.Context, id string, patch store.NoticePatch) (*models.Notice, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Pinger 用于健康检查
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	_ UserStore   = (*store.Users)(nil)
	_ NoticeStore = (*store.Notices)(nil)
	_ Pinger      = (*store.Users)(nil)
)

type App struct {
	l       *zap.Logger          // 日志
	users   UserStore            // 用户表
	notices NoticeStore          // 公告表
	db      Pinger               // 健康检查
	jwt     *jwt.JWT             // JWT ，用于无状态验证
	v       *validator.Validator // 请求体校验

	argon     *argon2id.Params // 密码 hash 参数
	dummyHash string           // 用户不存在时也做一次校验，让两种登录失败耗时接近
}

func NewApp(l *zap.Logger, users UserStore, notices NoticeStore, db Pinger, j *jwt.JWT, argon *argon2id.Params) (*App, error) {
	if argon == nil {
		argon = argon2id.DefaultParams
	}

	dummyHash, err := argon2id.CreateHash("campus-notice-board", argon)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &App{
		l:         l,
		users:     users,
		notices:   notices,
		db:        db,
		jwt:       j,
		v:         validator.New(),
		argon:     argon,
		dummyHash: dummyHash,
	}, nil
}
