// Package store 是公告板的持久层，每次写入都是单条 SQL 语句，读取时不会看到写了一半的记录
package store

import "errors"

// ErrConflict 表示写入违反了唯一约束
var ErrConflict = errors.New("store: conflict")
