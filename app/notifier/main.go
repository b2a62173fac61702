package main

import (
	"campus-notice-board/app/notifier/handlers"
	"campus-notice-board/app/notifier/inits"
	"fmt"
	"go.uber.org/zap"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer l.Sync()

	l.Debug("logger initialized")

	// 开启轮询循环
	handlerApp := handlers.NewApp(cfg, l, nil)
	handlerApp.Start()
	l.Info("polling notices", zap.String("server", cfg.ServerEndpoint), zap.Duration("interval", cfg.PollInterval))

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	handlerApp.Stop()
	l.Info("notifier stopped")
}
