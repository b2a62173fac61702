package inits

import (
	"campus-notice-board/app/server/config"
	"campus-notice-board/app/server/constants"
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strings"
)

func Config() (*config.Config, error) {
	// 如果存在 .env 文件就先载入，不存在也没关系
	_ = godotenv.Load()

	var cfg config.Config
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = constants.DefaultListen
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); exist && dbconn != "" {
		cfg.System.DBConnectionString = dbconn
	} else if cfg.System.IsProd {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = constants.DevDBConnectionString
	}

	if origins, exist := os.LookupEnv("CORS_ALLOWED_ORIGINS"); exist {
		cfg.System.AllowedOrigins = splitCSV(origins)
	}

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); exist && sigsk != "" {
		cfg.Security.SignatureSecretKey = sigsk
	} else if cfg.System.IsProd {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		// 仅用于开发环境，启动时会给出警告
		cfg.Security.SignatureSecretKey = constants.DevSignatureSecretKey
	}

	cfg.Bootstrap.AdminEmail = os.Getenv("ADMIN_EMAIL")
	cfg.Bootstrap.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	if name, exist := os.LookupEnv("ADMIN_NAME"); !exist {
		cfg.Bootstrap.AdminName = constants.DefaultAdminName
	} else {
		cfg.Bootstrap.AdminName = name
	}

	return &cfg, nil
}

// UsesDevSecret 报告当前是否在使用开发用的默认签名密钥
func UsesDevSecret(cfg *config.Config) bool {
	return cfg.Security.SignatureSecretKey == constants.DevSignatureSecretKey
}

func splitCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
