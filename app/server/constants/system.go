package constants

const (
	DefaultListen         = ":3000"
	DevDBConnectionString = "notices.db" // 非生产环境下的默认 SQLite 文件
)

// DevSignatureSecretKey 是非生产环境下 SIGNATURE_SECRET_KEY 缺失时使用的签名密钥。
// 它是公开的，用它签出的 token 任何人都能伪造，生产环境下不会使用。
const DevSignatureSecretKey = "dev-secret-change-me"

const DefaultAdminName = "Notice Board Admin"
