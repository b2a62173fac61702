package inits

import (
	"campus-notice-board/app/server/config"
	"campus-notice-board/app/server/models"
	"campus-notice-board/app/server/store"
	"context"
	"fmt"
	"github.com/alexedwards/argon2id"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"strings"
	"time"
)

func DB(conn string) (db *gorm.DB, err error) {
	// 打开连接
	if db, err = gorm.Open(dialector(conn), &gorm.Config{
		TranslateError: true, // 唯一约束冲突会被转换为 gorm.ErrDuplicatedKey
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: logger.Default.LogMode(logger.Silent),
	}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 返回
	return db, nil
}

// dialector 根据连接字符串选择驱动： Postgres 的 URL 或 DSN 走 pgx ，其余都当作 SQLite 路径
func dialector(conn string) gorm.Dialector {
	if isPostgres(conn) {
		return postgres.Open(conn)
	}
	return sqlite.Open(sqliteDSN(conn))
}

func isPostgres(conn string) bool {
	lower := strings.ToLower(strings.TrimSpace(conn))
	return strings.HasPrefix(lower, "postgres://") ||
		strings.HasPrefix(lower, "postgresql://") ||
		strings.Contains(lower, "host=")
}

// sqliteDSN 打开外键约束，否则 notices.author_id 的外键不生效
func sqliteDSN(conn string) string {
	if strings.Contains(conn, "_foreign_keys=") || strings.Contains(conn, "_fk=") {
		return conn
	}
	if strings.Contains(conn, "?") {
		return conn + "&_foreign_keys=on"
	}
	if strings.HasPrefix(conn, "file:") {
		return conn + "?_foreign_keys=on"
	}
	return "file:" + conn + "?_foreign_keys=on"
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Notice{},
	)
}

// SeedAdmin 在用户表为空并且配置了初始管理员时创建管理员账号
func SeedAdmin(ctx context.Context, users *store.Users, cfg *config.Config, params *argon2id.Params) (created bool, err error) {
	if cfg.Bootstrap.AdminEmail == "" || cfg.Bootstrap.AdminPassword == "" {
		return false, nil
	}

	// 查询现有记录数量
	if counter, err := users.Count(ctx); err != nil {
		return false, fmt.Errorf("failed to get user count: %w", err)
	} else if counter > 0 {
		return false, nil
	}

	// 创建密码
	var password string
	if password, err = argon2id.CreateHash(cfg.Bootstrap.AdminPassword, params); err != nil {
		return false, fmt.Errorf("failed to generate password: %w", err)
	}

	// 插入记录
	if _, err = users.CreateAdmin(ctx, cfg.Bootstrap.AdminEmail, password, cfg.Bootstrap.AdminName); err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}

	return true, nil
}
