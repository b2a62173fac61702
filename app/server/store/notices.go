package store

import (
	"campus-notice-board/app/server/models"
	"context"
	"errors"
	"fmt"
	"gorm.io/gorm"
)

// NoticePatch 是更新时整体替换的字段
type NoticePatch struct {
	Title    string
	Content  string
	Category string
	Priority string
	ImageURL *string
}

// Notices 是公告表，读取时连同作者一起查询
type Notices struct {
	db *gorm.DB
}

func NewNotices(db *gorm.DB) *Notices {
	return &Notices{db: db}
}

func (s *Notices) withAuthor(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Notice{}).Joins("Author")
}

// Create 插入公告（ id 和日期为空时自动填写），返回带作者信息的记录
func (s *Notices) Create(ctx context.Context, notice *models.Notice) (*models.Notice, error) {
	if notice.Date.IsZero() {
		notice.Date = s.db.NowFunc()
	}
	if err := s.db.WithContext(ctx).Omit("Author").Create(notice).Error; err != nil {
		return nil, fmt.Errorf("create notice: %w", err)
	}

	stored, err := s.GetByID(ctx, notice.ID)
	if err != nil {
		return nil, err
	} else if stored == nil {
		return nil, fmt.Errorf("create notice: row %s missing after insert", notice.ID)
	}
	return stored, nil
}

// ListAll 按创建时间倒序返回全部公告，时间相同时按 id （ UUIDv7 ）排序
func (s *Notices) ListAll(ctx context.Context) ([]models.Notice, error) {
	notices := []models.Notice{}
	if err := s.withAuthor(ctx).
		Order("notices.created_at DESC").
		Order("notices.id DESC").
		Find(&notices).Error; err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return notices, nil
}

// GetByID 找不到时返回 nil, nil
func (s *Notices) GetByID(ctx context.Context, id string) (*models.Notice, error) {
	var notice models.Notice
	if err := s.withAuthor(ctx).Where("notices.id = ?", id).First(&notice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notice: %w", err)
	}
	return &notice, nil
}

// Update 用一条语句替换可编辑的字段，找不到时返回 nil, nil
func (s *Notices) Update(ctx context.Context, id string, patch NoticePatch) (*models.Notice, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Notice{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":      patch.Title,
			"content":    patch.Content,
			"category":   patch.Category,
			"priority":   patch.Priority,
			"image_url":  patch.ImageURL,
			"updated_at": s.db.NowFunc(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update notice: %w", res.Error)
	} else if res.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetByID(ctx, id)
}

// Delete 返回是否真的删除了记录
func (s *Notices) Delete(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.Notice{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("delete notice: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
