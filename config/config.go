// file: config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Port string
		Env  string
	}
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	JWT struct {
		Secret      string
		ExpiryHours int
	}
	Instance struct {
		// 实例默认存活时间（分钟），请求未指定 ttl_minutes 时使用
		DefaultTTLMinutes int
		// 静态题目内容根地址，endpoint_url = base + /challenges/<slug>/index.html
		StaticContentBase string
	}
}

var appConfig *Config

// Load 从 .env / 环境变量加载配置。没有 .env 文件也不报错（生产环境直接注入环境变量）
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system environment variables.")
	}

	cfg := &Config{}

	cfg.App.Port = getEnv("PORT", "8080")
	cfg.App.Env = getEnv("APP_ENV", "development")

	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "3306")
	cfg.DB.User = getEnv("DB_USER", "root")
	cfg.DB.Password = getEnv("DB_PASSWORD", "123456")
	cfg.DB.Name = getEnv("DB_NAME", "bambactf")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")

	var err error
	cfg.Redis.DB, err = getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cfg.JWT.Secret = getEnv("JWT_SECRET", "bambactf-dev-secret-change-me")
	cfg.JWT.ExpiryHours, err = getEnvAsInt("JWT_EXPIRY_HOURS", 168)
	if err != nil {
		return nil, err
	}

	cfg.Instance.DefaultTTLMinutes, err = getEnvAsInt("INSTANCE_DEFAULT_TTL_MINUTES", 60)
	if err != nil {
		return nil, err
	}
	cfg.Instance.StaticContentBase = getEnv("STATIC_CONTENT_BASE", "http://localhost:8080/static")

	if cfg.JWT.Secret == "bambactf-dev-secret-change-me" && cfg.App.Env == "production" {
		log.Println("WARNING: Using default JWT secret in production. Please set JWT_SECRET.")
	}

	appConfig = cfg
	return cfg, nil
}

// Get 返回已加载的配置，未加载时直接退出
func Get() *Config {
	if appConfig == nil {
		log.Fatal("Configuration not loaded. Call config.Load() first.")
	}
	return appConfig
}

// SetForTesting 测试用，直接注入配置
func SetForTesting(cfg *Config) {
	appConfig = cfg
}

func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}
