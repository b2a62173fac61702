package constants

// 公告分类
const (
	NoticeCategoryGeneral = "General"
	NoticeCategoryEvent   = "Event"
	NoticeCategoryAlert   = "Alert"
)

// 公告优先级
const (
	NoticePriorityLow    = "Low"
	NoticePriorityMedium = "Medium"
	NoticePriorityHigh   = "High"
)

const (
	NoticeTitleMaxLength   = 200
	NoticeContentMaxLength = 10000
)
