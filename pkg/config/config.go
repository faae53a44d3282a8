// Файл: config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultSecretKey годится только для локального запуска.
const DefaultSecretKey = "change-me"

type ServerConfig struct {
	Port string `yaml:"port"`
}

// BackendConfig - удалённое REST API, единственный источник данных.
type BackendConfig struct {
	BaseURL    string        `yaml:"base_url"`
	AuthScheme string        `yaml:"auth_scheme"`
	Timeout    time.Duration `yaml:"timeout"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	SecretKey    string        `yaml:"secret_key"`
	TTL          time.Duration `yaml:"ttl"`
	CookieName   string        `yaml:"cookie_name"`
	SecureCookie bool          `yaml:"secure_cookie"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type NotificationConfig struct {
	Enabled bool   `yaml:"enabled"`
	Subject string `yaml:"subject"`
}

type Config struct {
	Server        ServerConfig       `yaml:"server"`
	Backend       BackendConfig      `yaml:"backend"`
	Redis         RedisConfig        `yaml:"redis"`
	Session       SessionConfig      `yaml:"session"`
	Log           LogConfig          `yaml:"log"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// Default - значения по умолчанию, поверх которых ложатся YAML и переменные окружения.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Backend: BackendConfig{
			BaseURL:    "http://localhost:8000/api",
			AuthScheme: "Token",
			Timeout:    20 * time.Second,
		},
		Redis: RedisConfig{Address: "localhost:6379"},
		Session: SessionConfig{
			SecretKey:  DefaultSecretKey,
			TTL:        time.Hour * 12,
			CookieName: "maintenance_session",
		},
		Log: LogConfig{Level: "info"},
		Notifications: NotificationConfig{
			Enabled: true,
			Subject: "Maintenance informatique",
		},
	}
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Avertissement: fichier .env introuvable ou illisible.")
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadYAML(path); err != nil {
			log.Printf("Avertissement: %v", err)
		}
	}
	cfg.applyEnv()
	return cfg
}

// UsesDefaultSecret - cookie подписываются общеизвестным ключом.
func (c *Config) UsesDefaultSecret() bool {
	return c.Session.SecretKey == "" || c.Session.SecretKey == DefaultSecretKey
}

// LoadYAML накладывает значения из YAML-файла на текущие.
func (c *Config) LoadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("lecture de %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("analyse de %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)

	c.Backend.BaseURL = getEnv("API_BASE_URL", c.Backend.BaseURL)
	c.Backend.AuthScheme = getEnv("API_AUTH_SCHEME", c.Backend.AuthScheme)
	c.Backend.Timeout = getEnvDuration("API_TIMEOUT", c.Backend.Timeout)

	c.Redis.Address = getEnv("REDIS_ADDRESS", c.Redis.Address)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)

	c.Session.SecretKey = getEnv("SESSION_SECRET_KEY", c.Session.SecretKey)
	c.Session.TTL = getEnvDuration("SESSION_TTL", c.Session.TTL)
	c.Session.CookieName = getEnv("SESSION_COOKIE_NAME", c.Session.CookieName)
	c.Session.SecureCookie = getEnvBool("SESSION_SECURE_COOKIE", c.Session.SecureCookie)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnv("LOG_FILE", c.Log.File)

	c.Notifications.Enabled = getEnvBool("NOTIFICATIONS_ENABLED", c.Notifications.Enabled)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}
