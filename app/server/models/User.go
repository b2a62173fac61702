package models

import (
	"fmt"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type User struct {
	ID string `gorm:"column:id;primaryKey;size:36"` // UUIDv7

	// 基础信息
	Email string `gorm:"column:email;uniqueIndex;not null"` // 邮箱，全局唯一，区分大小写
	Name  string `gorm:"column:name;not null"`              // 显示名称
	Role  string `gorm:"column:role;not null;default:user"` // admin 或 user ，仅作展示，不参与权限判断

	// 登录认证相关
	Password string `gorm:"column:password;not null"` // 密码，使用 argon2id 储存

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate user id: %w", err)
		}
		u.ID = id.String()
	}
	return nil
}
