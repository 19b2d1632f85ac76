package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// 全局配置结构体
type GlobalConfig struct {
	Plugin PluginConfig `mapstructure:"plugin" yaml:"plugin"`
	DB     DBConfig     `mapstructure:"db" yaml:"db"`
	Redis  RedisConfig  `mapstructure:"redis" yaml:"redis"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// PluginConfig 插件路径配置
type PluginConfig struct {
	File        string `mapstructure:"file" yaml:"file"`                 // 插件主文件，为空时取项目根目录下的main.go
	PluginsRoot string `mapstructure:"plugins_root" yaml:"plugins_root"` // 插件根目录
	BaseURL     string `mapstructure:"base_url" yaml:"base_url"`         // 插件根目录对应的URL
}

// DBConfig 数据库配置
type DBConfig struct {
	Driver          string        `mapstructure:"driver" yaml:"driver"` // mysql / sqlite
	DSN             string        `mapstructure:"dsn" yaml:"dsn"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate" yaml:"auto_migrate"`
}

// RedisConfig 元数据缓存配置，URL为空时不启用缓存
type RedisConfig struct {
	URL string        `mapstructure:"url" yaml:"url"` // redis://localhost:6379/0
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	JSON  bool   `mapstructure:"json" yaml:"json"`
}

// 默认值
const (
	DefaultDriver      = "sqlite"
	DefaultDSN         = "job_manager.db"
	DefaultBaseURL     = "http://localhost/plugins"
	DefaultCacheTTL    = 10 * time.Minute
	DefaultLogLevel    = "info"
	defaultMaxIdle     = 10
	defaultMaxOpen     = 100
	defaultMaxLifetime = time.Hour
)

// EnvPrefix 环境变量前缀，例如 JMF_DB_DSN 覆盖 db.dsn
const EnvPrefix = "JMF"

// InitConfig 初始化配置，读取 ./config/config.yaml，环境变量优先
func InitConfig() (*GlobalConfig, error) {
	return InitConfigFrom("./config")
}

// InitConfigFrom 从指定目录读取 config.yaml；文件不存在时只使用环境变量和默认值
func InitConfigFrom(dir string) (*GlobalConfig, error) {
	v := viper.New()
	v.SetConfigName("config") // 配置文件名称（不带扩展名）
	v.SetConfigType("yaml")   // 配置文件类型
	v.AddConfigPath(dir)      // 配置文件路径

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindKeys(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var config GlobalConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// bindKeys AutomaticEnv 只对已知键生效，Unmarshal 前需要逐个绑定
func bindKeys(v *viper.Viper) {
	for _, key := range []string{
		"plugin.file", "plugin.plugins_root", "plugin.base_url",
		"db.driver", "db.dsn", "db.max_idle_conns", "db.max_open_conns",
		"db.conn_max_lifetime", "db.auto_migrate",
		"redis.url", "redis.ttl",
		"log.level", "log.json",
	} {
		_ = v.BindEnv(key)
	}
}

// LoadFile 从指定路径读取YAML配置
func LoadFile(path string) (*GlobalConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config GlobalConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *GlobalConfig) applyDefaults() {
	if c.DB.Driver == "" {
		c.DB.Driver = DefaultDriver
	}
	if c.DB.DSN == "" && c.DB.Driver == DefaultDriver {
		c.DB.DSN = DefaultDSN
	}
	if c.DB.MaxIdleConns <= 0 {
		c.DB.MaxIdleConns = defaultMaxIdle
	}
	if c.DB.MaxOpenConns <= 0 {
		c.DB.MaxOpenConns = defaultMaxOpen
	}
	if c.DB.ConnMaxLifetime <= 0 {
		c.DB.ConnMaxLifetime = defaultMaxLifetime
	}
	if c.Redis.TTL <= 0 {
		c.Redis.TTL = DefaultCacheTTL
	}
	if c.Plugin.BaseURL == "" {
		c.Plugin.BaseURL = DefaultBaseURL
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
