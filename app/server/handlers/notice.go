package handlers

import (
	"campus-notice-board/app/server/models"
	"campus-notice-board/app/server/store"
	"campus-notice-board/app/server/types"
	"campus-notice-board/app/server/validator"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

func noticeInfo(notice *models.Notice) *types.NoticeInfo {
	info := &types.NoticeInfo{
		ID:        notice.ID,
		Title:     notice.Title,
		Content:   notice.Content,
		Category:  notice.Category,
		Priority:  notice.Priority,
		ImageURL:  notice.ImageURL,
		Date:      notice.Date,
		AuthorID:  notice.AuthorID,
		CreatedAt: notice.CreatedAt,
		UpdatedAt: notice.UpdatedAt,
	}
	if notice.Author != nil {
		info.AuthorName = notice.Author.Name
		info.AuthorEmail = notice.Author.Email
	}
	return info
}

// imageURL 把空字符串当作没有图片，其余的值已经通过了 url 校验
func imageURL(req *types.NoticeInput) *string {
	if req.ImageURL == nil || *req.ImageURL == "" {
		return nil
	}
	return req.ImageURL
}

func (a *App) NoticeCreate(c echo.Context) error {
	// 抓取 user 信息（认证）
	user, err := a.currentUser(c)
	if err != nil {
		return err
	}

	rctx := c.Request().Context()

	// 绑定并校验请求体
	var req types.NoticeInput
	if err := a.bindAndValidate(c, &req); err != nil {
		return err
	}

	// 作者只取自 token ，不信任请求体
	notice, err := a.notices.Create(rctx, &models.Notice{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Priority: req.Priority,
		ImageURL: imageURL(&req),
		AuthorID: user.ID,
	})
	if err != nil {
		return fmt.Errorf("create notice: %w", err)
	}

	a.l.Debug("notice created", zap.String("id", notice.ID), zap.String("authorID", user.ID))

	return c.JSON(http.StatusOK, noticeInfo(notice))
}

func (a *App) NoticeList(c echo.Context) error {
	if _, err := a.currentUser(c); err != nil {
		return err
	}

	notices, err := a.notices.ListAll(c.Request().Context())
	if err != nil {
		return fmt.Errorf("list notices: %w", err)
	}

	resNotices := make([]*types.NoticeInfo, 0, len(notices))
	for i := range notices {
		resNotices = append(resNotices, noticeInfo(&notices[i]))
	}

	return c.JSON(http.StatusOK, resNotices)
}

func (a *App) NoticeGet(c echo.Context) error {
	if _, err := a.currentUser(c); err != nil {
		return err
	}

	notice, err := a.notices.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fmt.Errorf("get notice: %w", err)
	} else if notice == nil {
		return ErrNotFound
	}

	return c.JSON(http.StatusOK, noticeInfo(notice))
}

// ownedNotice 读取公告并确认调用者就是作者
func (a *App) ownedNotice(c echo.Context, userID string) (*models.Notice, error) {
	notice, err := a.notices.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, fmt.Errorf("get notice: %w", err)
	} else if notice == nil {
		return nil, ErrNotFound
	}

	if notice.AuthorID != userID {
		return nil, ErrForbidden
	}

	return notice, nil
}

func (a *App) NoticeUpdate(c echo.Context) error {
	// 抓取 user 信息（认证）
	user, err := a.currentUser(c)
	if err != nil {
		return err
	}

	rctx := c.Request().Context()

	// 先校验请求体，但不是作者的话无论请求体是否有效都返回 403
	var req types.NoticeInput
	var validationErr *validator.ValidationError
	if err := a.bindAndValidate(c, &req); err != nil && !errors.As(err, &validationErr) {
		return err
	}

	if _, err := a.ownedNotice(c, user.ID); err != nil {
		return err
	}

	if validationErr != nil {
		return validationErr
	}

	// 整体替换
	notice, err := a.notices.Update(rctx, c.Param("id"), store.NoticePatch{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Priority: req.Priority,
		ImageURL: imageURL(&req),
	})
	if err != nil {
		return fmt.Errorf("update notice: %w", err)
	} else if notice == nil {
		// 在读取和更新之间被删除了
		return ErrNotFound
	}

	return c.JSON(http.StatusOK, noticeInfo(notice))
}

func (a *App) NoticeDelete(c echo.Context) error {
	// 抓取 user 信息（认证）
	user, err := a.currentUser(c)
	if err != nil {
		return err
	}

	if _, err := a.ownedNotice(c, user.ID); err != nil {
		return err
	}

	// 删除公告
	if deleted, err := a.notices.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fmt.Errorf("delete notice: %w", err)
	} else if !deleted {
		return ErrNotFound
	}

	a.l.Debug("notice deleted", zap.String("id", c.Param("id")), zap.String("authorID", user.ID))

	return c.NoContent(http.StatusNoContent)
}
