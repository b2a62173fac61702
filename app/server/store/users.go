package store

import (
	"campus-notice-board/app/server/constants"
	"campus-notice-board/app/server/models"
	"context"
	"errors"
	"fmt"
	"gorm.io/gorm"
)

// Users 是用户凭据表
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// CreateUser 以普通用户身份创建，邮箱已被注册时返回 ErrConflict
func (s *Users) CreateUser(ctx context.Context, email, passwordHash, name string) (*models.User, error) {
	return s.create(ctx, &models.User{
		Email:    email,
		Password: passwordHash,
		Name:     name,
		Role:     constants.UserRoleUser,
	})
}

// CreateAdmin 创建管理员，只在初始化时使用
func (s *Users) CreateAdmin(ctx context.Context, email, passwordHash, name string) (*models.User, error) {
	return s.create(ctx, &models.User{
		Email:    email,
		Password: passwordHash,
		Name:     name,
		Role:     constants.UserRoleAdmin,
	})
}

func (s *Users) create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// FindByEmail 找不到时返回 nil, nil
func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.first(ctx, "email = ?", email)
}

// FindByID 找不到时返回 nil, nil
func (s *Users) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *Users) first(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *Users) Count(ctx context.Context) (int64, error) {
	var counter int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&counter).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return counter, nil
}

func (s *Users) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
