package models

import (
	"fmt"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type Notice struct {
	// UUIDv7 ，同一进程内单调递增，列表排序时用来区分创建时间相同的记录
	ID string `gorm:"column:id;primaryKey;size:36"`

	Title    string    `gorm:"column:title;not null"`
	Content  string    `gorm:"column:content;not null"`
	Category string    `gorm:"column:category;not null"`
	Priority string    `gorm:"column:priority;not null"`
	ImageURL *string   `gorm:"column:image_url"`     // 可选的图片或附件地址
	Date     time.Time `gorm:"column:date;not null"` // 默认为创建时间

	// 作者
	AuthorID string `gorm:"column:author_id;not null;index"`
	Author   *User  `gorm:"foreignKey:AuthorID"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (n *Notice) BeforeCreate(*gorm.DB) error {
	if n.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate notice id: %w", err)
		}
		n.ID = id.String()
	}
	return nil
}
