package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config 聚合客户端与本地开发服务的配置项。
type Config struct {
	Server ServerConfig
	API    APIConfig
	Mock   MockConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	api, err := loadAPIConfig()
	if err != nil {
		return nil, err
	}

	mock, err := loadMockConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, API: api, Mock: mock}, nil
}

// ServerConfig 描述本地开发 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8000"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8000" 或 "127.0.0.1:8000"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// APIConfig 描述客户端访问后端 API 的配置。
type APIConfig struct {
	BaseURL        string
	Timeout        time.Duration
	TokenStorePath string
}

func loadAPIConfig() (APIConfig, error) {
	timeoutSeconds := 60
	if override, err := parseOptionalIntEnv("API_TIMEOUT_SECONDS"); err != nil {
		return APIConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return APIConfig{}, fmt.Errorf("invalid API_TIMEOUT_SECONDS value %d: must be positive", *override)
		}
		timeoutSeconds = *override
	}

	storePath := strings.TrimSpace(os.Getenv("TOKEN_STORE_PATH"))
	if storePath == "" {
		storePath = defaultTokenStorePath()
	}

	return APIConfig{
		BaseURL:        getEnvOrDefault("API_BASE_URL", "http://localhost:8000"),
		Timeout:        time.Duration(timeoutSeconds) * time.Second,
		TokenStorePath: storePath,
	}, nil
}

// MockConfig 描述本地模拟后端的配置。
type MockConfig struct {
	TokenTTL time.Duration
}

func loadMockConfig() (MockConfig, error) {
	ttlMinutes, err := parseOptionalIntEnv("MOCK_TOKEN_TTL_MINUTES")
	if err != nil {
		return MockConfig{}, err
	}

	cfg := MockConfig{}
	if ttlMinutes != nil && *ttlMinutes > 0 {
		cfg.TokenTTL = time.Duration(*ttlMinutes) * time.Minute
	}
	return cfg, nil
}

func defaultTokenStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "wealth-desk", "session.bolt")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
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
