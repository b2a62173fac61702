package handlers

import (
	"bytes"
	"campus-notice-board/app/server/constants"
	"campus-notice-board/app/server/types"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"net/http"
	"net/url"
)

// errTokenRejected 表示服务器不再接受当前的 token
var errTokenRejected = errors.New("token rejected")

func (a *App) poll(ctx context.Context) {
	// 设置并发锁，上一轮还没结束就跳过这一轮
	if !a.lock.TryLock() {
		return
	}
	defer a.lock.Unlock()

	// 没有 token 就先登录
	if a.token == "" {
		token, err := a.login(ctx)
		if err != nil {
			a.l.Error("failed to log in", zap.String("email", a.cfg.Email), zap.Error(err))
			return
		}
		a.token = token
	}

	// 拉取公告列表
	notices, err := a.fetchNotices(ctx)
	if errors.Is(err, errTokenRejected) {
		// 下一轮重新登录
		a.l.Warn("token rejected, will log in again", zap.Error(err))
		a.token = ""
		return
	} else if err != nil {
		a.l.Error("failed to fetch notices", zap.Error(err))
		return
	}

	// 第一轮只记录基准，不输出
	if !a.baselined {
		for _, n := range notices {
			a.seen[n.ID] = struct{}{}
		}
		a.baselined = true
		a.l.Info("notice baseline recorded", zap.Int("count", len(notices)))
		return
	}

	// 列表是新的在前，倒序输出以保持发布顺序
	for i := len(notices) - 1; i >= 0; i-- {
		n := &notices[i]
		if _, ok := a.seen[n.ID]; ok {
			continue
		}
		a.seen[n.ID] = struct{}{}
		a.emit(n)
	}
}

func (a *App) emit(n *types.NoticeInfo) {
	fields := []zap.Field{
		zap.String("id", n.ID),
		zap.String("title", n.Title),
		zap.String("category", n.Category),
		zap.String("priority", n.Priority),
		zap.String("author", n.AuthorName),
		zap.Time("date", n.Date),
	}
	if n.Category == constants.NoticeCategoryAlert || n.Priority == constants.NoticePriorityHigh {
		a.l.Warn("new notice", fields...)
	} else {
		a.l.Info("new notice", fields...)
	}
}

func (a *App) login(ctx context.Context) (string, error) {
	// 准备请求
	reqURL, err := url.JoinPath(a.cfg.ServerEndpoint, "/api/auth/login")
	if err != nil {
		return "", fmt.Errorf("join login request url: %w", err)
	}
	body, err := json.Marshal(&types.LoginRequest{Email: a.cfg.Email, Password: a.cfg.Password})
	if err != nil {
		return "", fmt.Errorf("encode login request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("prepare login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// 发送请求
	res, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send login request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", responseError(res)
	}

	// 解析响应
	var token types.LoginToken
	if err := json.NewDecoder(res.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if token.Token == "" {
		return "", fmt.Errorf("empty token in login response")
	}

	return token.Token, nil
}

func (a *App) fetchNotices(ctx context.Context) ([]types.NoticeInfo, error) {
	// 准备请求
	reqURL, err := url.JoinPath(a.cfg.ServerEndpoint, "/api/notices")
	if err != nil {
		return nil, fmt.Errorf("join notices request url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("prepare notices request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)

	// 发送请求
	res, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send notices request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: %w", errTokenRejected, responseError(res))
	default:
		return nil, responseError(res)
	}

	// 解析响应
	var notices []types.NoticeInfo
	if err := json.NewDecoder(res.Body).Decode(&notices); err != nil {
		return nil, fmt.Errorf("decode notices response: %w", err)
	}

	return notices, nil
}

// responseError 尽量从错误响应体中取出错误码
func responseError(res *http.Response) error {
	var body types.ErrorMessage
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil || body.Code == "" {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return fmt.Errorf("unexpected status %d: %s (%s)", res.StatusCode, body.Code, body.Message)
}
