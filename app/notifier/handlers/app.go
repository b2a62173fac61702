package handlers

import (
	"campus-notice-board/app/notifier/config"
	"context"
	"go.uber.org/zap"
	"net/http"
	"sync"
	"time"
)

type App struct {
	cfg    *config.Config
	l      *zap.Logger
	client *http.Client

	token     string
	seen      map[string]struct{}
	baselined bool

	ctx      context.Context
	cancel   context.CancelFunc
	ticker   *time.Ticker
	stopChan chan struct{}
	done     chan struct{}
	lock     sync.Mutex
}

func NewApp(cfg *config.Config, l *zap.Logger, client *http.Client) *App {
	if client == nil {
		client = &http.Client{Timeout: cfg.RequestTimeout}
	}
	return &App{
		cfg:    cfg,
		l:      l,
		client: client,
		seen:   make(map[string]struct{}),
	}
}

func (a *App) Start() {
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.ticker = time.NewTicker(a.cfg.PollInterval)
	a.stopChan = make(chan struct{})
	a.done = make(chan struct{})
	go a.loop()
}

func (a *App) loop() {
	defer close(a.done)

	// 启动时先拉取一次作为基准
	a.poll(a.ctx)

	for {
		select {
		case <-a.ticker.C:
			a.l.Debug("poll loop")
			a.poll(a.ctx)
		case <-a.stopChan:
			a.l.Debug("stop poll loop")
			return
		}
	}
}

// Stop 结束循环并等待正在进行的一轮完成
func (a *App) Stop() {
	if a.ticker == nil {
		// 还没有启动
		return
	}
	a.ticker.Stop()
	a.cancel()
	close(a.stopChan)
	<-a.done
}
