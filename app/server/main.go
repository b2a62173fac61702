package main

import (
	"campus-notice-board/app/server/apidocs"
	"campus-notice-board/app/server/handlers"
	"campus-notice-board/app/server/inits"
	"campus-notice-board/app/server/jwt"
	"campus-notice-board/app/server/middlewares"
	"campus-notice-board/app/server/store"
	"context"
	"errors"
	"fmt"
	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer func() { _ = l.Sync() }()

	// 切换日志系统
	l.Debug("logger initialized")

	if inits.UsesDevSecret(cfg) {
		l.Warn("SIGNATURE_SECRET_KEY not set, falling back to the public development key; tokens can be forged")
	}

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	users := store.NewUsers(db)
	notices := store.NewNotices(db)

	// 初始化管理员
	if created, err := inits.SeedAdmin(context.Background(), users, cfg, argon2id.DefaultParams); err != nil {
		l.Fatal("error seeding admin user", zap.Error(err))
	} else if created {
		l.Info("admin user created", zap.String("email", cfg.Bootstrap.AdminEmail))
	}

	// 初始化 JWT
	j, err := jwt.New(cfg.Security.SignatureSecretKey)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 准备 handler app
	handlerApp, err := handlers.NewApp(l, users, notices, users, j, argon2id.DefaultParams)
	if err != nil {
		l.Fatal("error initializing handlers", zap.Error(err))
	}

	// 准备 echo 服务
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("requestID", v.RequestID),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins(cfg.System.AllowedOrigins),
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	// 绑定 echo 服务
	handlers.RegisterHandlers(e, handlerApp, middlewares.UserAuth(j))

	// 添加 API 文档
	if !cfg.System.IsProd {
		if swg, err := apidocs.Spec(context.Background()); err != nil {
			l.Error("error initializing api spec", zap.Error(err))
		} else if doc, err := apidocs.Doc("/api", swg); err != nil {
			l.Error("error initializing api docs", zap.Error(err))
		} else {
			e.Pre(doc)
		}
	}

	// 启动 echo 服务
	go func() {
		if err := e.Start(cfg.System.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	// 等待退出信号
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		l.Error("shutdown error", zap.Error(err))
	}
}

func allowOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
