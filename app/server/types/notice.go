package types

import "time"

// NoticeInput 是创建与更新（整体替换）共用的请求体
type NoticeInput struct {
	Title    string  `json:"title" validate:"required,min=1,max=200"`
	Content  string  `json:"content" validate:"required,min=1,max=10000"`
	Category string  `json:"category" validate:"required,oneof=General Event Alert"`
	Priority string  `json:"priority" validate:"required,oneof=Low Medium High"`
	ImageURL *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

type NoticeInfo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Date        time.Time `json:"date"`
	AuthorID    string    `json:"authorId"`
	AuthorName  string    `json:"authorName"`
	AuthorEmail string    `json:"authorEmail"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
