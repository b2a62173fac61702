// Package testutil 放测试共用的工具
package testutil

import (
	"campus-notice-board/app/server/inits"
	"strings"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// FastArgon 让测试中的密码 hash 足够快
var FastArgon = &argon2id.Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// OpenDB 打开只属于当前测试的内存 SQLite 数据库，已完成迁移
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	db, err := inits.DB("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err, "open test db")
	t.Cleanup(func() { CloseDB(db) })
	return db
}

// CloseDB 关闭连接池，之后的查询都会失败
func CloseDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
