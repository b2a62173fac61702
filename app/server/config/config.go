package config

type Config struct {
	System struct {
		IsProd             bool     // 是否为生产环境
		Listen             string   // 监听地址
		DBConnectionString string   // 数据库连接字符串： Postgres 的 DSN / URL ，或者 SQLite 的文件路径
		AllowedOrigins     []string // 允许跨域的来源，空表示全部
	}
	Security struct {
		SignatureSecretKey string // 签名密钥，用于产生签名（例如 JWT ），更新会导致旧有会话失效
	}
	Bootstrap struct {
		AdminEmail    string // 初始管理员邮箱，用户表为空时创建
		AdminPassword string // 初始管理员密码
		AdminName     string // 初始管理员显示名称
	}
}
