package config

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Parser   ParserConfig   `mapstructure:"parser"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ParserConfig 解析器配置
type ParserConfig struct {
	// Concurrent 批量解析的并发上限（worker 槽位数）
	Concurrent int `mapstructure:"concurrent"`
	// MaxFileSize 单个抓取文件大小上限（字节）
	MaxFileSize int64 `mapstructure:"max_file_size"`
	// AllowedExtensions 允许上传与采集的文件后缀
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
	// CacheTTL 解析结果缓存时长
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// IngestConfig 收件目录自动解析配置
type IngestConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
	// DebounceMS 文件事件去抖间隔（毫秒），等待抓取文件写入完成
	DebounceMS int `mapstructure:"debounce_ms"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	SQLite SQLiteConfig `mapstructure:"sqlite"`
}

// SQLiteConfig SQLite配置
type SQLiteConfig struct {
	Path            string        `mapstructure:"path"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig Redis配置（Host 为空表示不启用缓存）
type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// StorageConfig 解析产物存储配置（原始抓取与解析后 JSON）
type StorageConfig struct {
	// Backend 默认存储后端：local | minio
	Backend string           `mapstructure:"backend"`
	Local   LocalStoreConfig `mapstructure:"local"`
	Minio   MinioConfig      `mapstructure:"minio"`
}

// LocalStoreConfig 本地存储配置
type LocalStoreConfig struct {
	BaseDir        string `mapstructure:"base_dir"`
	Prefix         string `mapstructure:"prefix"`
	MkdirIfMissing bool   `mapstructure:"mkdir_if_missing"`
}

// MinioConfig 对象存储配置
type MinioConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Secure    bool   `mapstructure:"secure"`
	Prefix    string `mapstructure:"prefix"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// 全局配置以原子指针保存：重载写入新快照，旧快照保持只读，
// 持有者各自决定何时换用新指针
var globalConfig atomic.Pointer[Config]

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	viper.SetConfigType("yaml")

	// 设置默认值
	setDefaults()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		// 默认配置文件路径
		viper.SetConfigName("config")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath("../configs")
		viper.AddConfigPath("../../configs")
	}

	// 设置环境变量前缀
	viper.SetEnvPrefix("CAPTURE_PARSER")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 兼容旧键名：storage.storage_backend -> storage.backend
	if strings.TrimSpace(config.Storage.Backend) == "" {
		if viper.IsSet("storage.storage_backend") {
			bb := strings.TrimSpace(viper.GetString("storage.storage_backend"))
			if bb != "" {
				config.Storage.Backend = bb
			}
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	globalConfig.Store(&config)
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	viper.SetDefault("parser.concurrent", 8)
	// 默认单文件上限 16MB，CLI 抓取文本通常远小于该值
	viper.SetDefault("parser.max_file_size", 16*1024*1024)
	viper.SetDefault("parser.allowed_extensions", []string{".txt", ".log"})
	viper.SetDefault("parser.cache_ttl", time.Hour)

	viper.SetDefault("ingest.enabled", false)
	viper.SetDefault("ingest.dir", "./data/inbox")
	viper.SetDefault("ingest.debounce_ms", 500)

	viper.SetDefault("database.sqlite.path", "./data/captureparser.db")
	viper.SetDefault("database.sqlite.max_idle_conns", 1)
	viper.SetDefault("database.sqlite.max_open_conns", 1)
	viper.SetDefault("database.sqlite.conn_max_lifetime", time.Hour)

	viper.SetDefault("cache.redis.port", 6379)
	viper.SetDefault("cache.redis.pool_size", 10)
	viper.SetDefault("cache.redis.min_idle_conns", 2)
	viper.SetDefault("cache.redis.dial_timeout", 5*time.Second)
	viper.SetDefault("cache.redis.read_timeout", 3*time.Second)
	viper.SetDefault("cache.redis.write_timeout", 3*time.Second)

	viper.SetDefault("storage.backend", "local")
	viper.SetDefault("storage.local.base_dir", "./data/parsed")
	viper.SetDefault("storage.local.mkdir_if_missing", true)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("log.output", "console")
	viper.SetDefault("log.file_path", "./logs/capture-parser.log")
	viper.SetDefault("log.max_size", 100)
	viper.SetDefault("log.max_backups", 5)
	viper.SetDefault("log.max_age", 30)
	viper.SetDefault("log.compress", true)
}

// Get 获取最近一次 Load 的配置快照
func Get() *Config {
	return globalConfig.Load()
}

// Validate 校验配置合法性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Parser.Concurrent <= 0 {
		return fmt.Errorf("parser.concurrent must be positive, got %d", c.Parser.Concurrent)
	}
	backend := strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if backend != "" && backend != "local" && backend != "minio" {
		return fmt.Errorf("unsupported storage backend: %s", c.Storage.Backend)
	}
	return nil
}

// GetServerAddr 获取服务器地址
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// AllowedExtension 判断文件后缀是否允许解析（忽略大小写）
func (c *Config) AllowedExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimSpace(ext))
	for _, allowed := range c.Parser.AllowedExtensions {
		if strings.ToLower(allowed) == ext {
			return true
		}
	}
	return false
}
