package inits

import (
	"campus-notice-board/app/notifier/config"
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strings"
	"time"
)

func Config() (*config.Config, error) {
	// 如果存在 .env 文件就先载入
	_ = godotenv.Load()

	var cfg config.Config
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if serverEp, exist := os.LookupEnv("SERVER_ENDPOINT"); !exist || serverEp == "" {
		return nil, fmt.Errorf("SERVER_ENDPOINT environment variable not set")
	} else {
		cfg.ServerEndpoint = serverEp
	}

	if email, exist := os.LookupEnv("NOTIFIER_EMAIL"); !exist || email == "" {
		return nil, fmt.Errorf("NOTIFIER_EMAIL environment variable not set")
	} else {
		cfg.Email = email
	}

	if password, exist := os.LookupEnv("NOTIFIER_PASSWORD"); !exist || password == "" {
		return nil, fmt.Errorf("NOTIFIER_PASSWORD environment variable not set")
	} else {
		cfg.Password = password
	}

	var err error
	if cfg.PollInterval, err = duration("POLL_INTERVAL", 1*time.Minute); err != nil { // 默认每分钟一次
		return nil, err
	}
	if cfg.RequestTimeout, err = duration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func duration(key string, def time.Duration) (time.Duration, error) {
	str, exist := os.LookupEnv(key)
	if !exist || str == "" {
		return def, nil
	}
	d, err := time.ParseDuration(str)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s should be a valid positive duration", key)
	}
	return d, nil
}
