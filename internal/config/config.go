package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/resubscribe/resubscribe-go/internal/locale"
)

const (
	DefaultAPIBaseURL = "https://api.resubscribe.ai"
	DefaultAppBaseURL = "https://app.resubscribe.ai"
)

// Config 聚合 SDK 与预览服务的配置项。
type Config struct {
	Server ServerConfig
	SDK    SDKConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	sdk, err := LoadSDK()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, SDK: sdk}, nil
}

// ServerConfig 描述预览 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// SDKConfig 描述 SDK 访问后端与渲染聊天页所需的配置。
type SDKConfig struct {
	APIBaseURL    string
	AppBaseURL    string
	Locale        string
	ReportTimeout time.Duration
	Debug         bool
}

// LoadSDK 只加载 SDK 相关的环境变量。
func LoadSDK() (SDKConfig, error) {
	timeoutSeconds := 10
	if override, err := parseOptionalIntEnv("RESUBSCRIBE_REPORT_TIMEOUT"); err != nil {
		return SDKConfig{}, err
	} else if override != nil {
		if *override <= 0 {
			return SDKConfig{}, fmt.Errorf("invalid RESUBSCRIBE_REPORT_TIMEOUT value %d: must be positive", *override)
		}
		timeoutSeconds = *override
	}

	debug, err := parseBoolEnv("RESUBSCRIBE_DEBUG", false)
	if err != nil {
		return SDKConfig{}, err
	}

	return SDKConfig{
		APIBaseURL:    getEnvOrDefault("RESUBSCRIBE_API_BASE_URL", DefaultAPIBaseURL),
		AppBaseURL:    getEnvOrDefault("RESUBSCRIBE_APP_BASE_URL", DefaultAppBaseURL),
		Locale:        getEnvOrDefault("RESUBSCRIBE_LOCALE", locale.Detect()),
		ReportTimeout: time.Duration(timeoutSeconds) * time.Second,
		Debug:         debug,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
