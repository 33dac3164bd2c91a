// Package config 负责加载并校验客户端配置。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// StorageConfig 定义快照存储后端配置
type StorageConfig struct {
	Backend string // 存储后端: "memory"、"filesystem" 或 "sqlite"
	Path    string // filesystem 的数据目录或 sqlite 的数据库文件路径
}

// APIConfig 定义数据访问层的行为配置
type APIConfig struct {
	Latency  time.Duration // 模拟网络往返的基础延迟，0 表示关闭
	PageSize int           // 文件夹列表的每页条数，默认 20
}

// SessionConfig 定义会话令牌配置
type SessionConfig struct {
	Secret string        // 令牌签名密钥，必须至少 32 字符
	Issuer string        // 令牌签发者标识，默认 "webmail"
	Expiry time.Duration // 会话有效期，默认 7 天
}

// LogConfig 定义日志系统配置
type LogConfig struct {
	Level       string // 日志级别: debug, info, warn, error
	Development bool   // 开发模式: 控制台编码与详细堆栈
	File        string // 日志文件路径，留空仅输出到标准输出
}

// Config 是客户端配置的根结构体
type Config struct {
	Storage StorageConfig
	API     APIConfig
	Session SessionConfig
	Log     LogConfig
}

// Load 从环境变量和可选的 .env 文件加载配置
//
// 优先级从高到低：系统环境变量、.env 文件、默认值。
// 环境变量前缀为 WEBMAIL_，如 WEBMAIL_STORAGE_BACKEND、WEBMAIL_SESSION_SECRET。
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetEnvPrefix("webmail")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.backend", "filesystem")
	v.SetDefault("storage.path", defaultDataDir())
	v.SetDefault("api.latency", "500ms")
	v.SetDefault("api.page_size", 20)
	v.SetDefault("session.secret", "local-webmail-development-secret-key!!")
	v.SetDefault("session.issuer", "webmail")
	v.SetDefault("session.expiry", "168h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("log.file", "")

	backend := strings.ToLower(v.GetString("storage.backend"))
	switch backend {
	case "memory", "filesystem", "sqlite":
	default:
		return nil, fmt.Errorf("invalid storage.backend %q: must be memory, filesystem or sqlite", backend)
	}

	latency, err := time.ParseDuration(v.GetString("api.latency"))
	if err != nil || latency < 0 {
		return nil, fmt.Errorf("invalid api.latency %q", v.GetString("api.latency"))
	}

	pageSize := v.GetInt("api.page_size")
	if pageSize <= 0 {
		pageSize = 20
	}

	expiry, err := time.ParseDuration(v.GetString("session.expiry"))
	if err != nil || expiry <= 0 {
		expiry = 7 * 24 * time.Hour
	}

	secret := v.GetString("session.secret")
	if len(secret) < 32 {
		return nil, fmt.Errorf("session.secret must be at least 32 characters long")
	}

	cfg := &Config{
		Storage: StorageConfig{
			Backend: backend,
			Path:    v.GetString("storage.path"),
		},
		API: APIConfig{
			Latency:  latency,
			PageSize: pageSize,
		},
		Session: SessionConfig{
			Secret: secret,
			Issuer: v.GetString("session.issuer"),
			Expiry: expiry,
		},
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
			File:        v.GetString("log.file"),
		},
	}

	return cfg, nil
}

// defaultDataDir 返回默认的数据目录，优先用户配置目录，失败时退回当前目录。
func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "webmail-data"
	}
	return filepath.Join(base, "webmail")
}

// loadEnvFile 尝试加载当前目录或父目录的 .env 文件，文件不存在时静默跳过。
// 已存在的环境变量不会被覆盖。
func loadEnvFile() {
	if err := godotenv.Load(".env"); err == nil {
		return
	}

	parentEnv := filepath.Join("..", ".env")
	if _, err := os.Stat(parentEnv); err == nil {
		_ = godotenv.Load(parentEnv)
	}
}
