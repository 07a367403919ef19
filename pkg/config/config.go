package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AuthConfig struct {
	MaxLoginAttempts int
	LockoutDuration  time.Duration
}

type JWTConfig struct {
	SecretKey      string
	Algorithm      string
	AccessTokenTTL time.Duration
}

type ServerConfig struct {
	Host           string
	Port           string
	AllowedOrigins []string
}

type PostgresConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	SSLMode        string
	ConnectTimeout int
	AutoMigrate    bool
}

// DSN собирает URL подключения; логин и пароль экранируются.
func (p PostgresConfig) DSN() string {
	query := url.Values{}
	query.Set("sslmode", p.SSLMode)
	query.Set("connect_timeout", strconv.Itoa(p.ConnectTimeout))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Name,
		RawQuery: query.Encode(),
	}
	return u.String()
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LogConfig struct {
	Level string
	File  string
}

type SeedConfig struct {
	DevAdmin      bool
	AdminUsername string
	AdminPassword string
}

type Config struct {
	Env      string
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Log      LogConfig
	Seed     SeedConfig
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	return &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:           getEnv("API_HOST", "0.0.0.0"),
			Port:           getEnv("API_PORT", "8000"),
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost,http://localhost:5173")),
		},
		Postgres: PostgresConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			Name:           getEnv("DB_NAME", "filasling"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			ConnectTimeout: getEnvInt("DB_CONNECT_TIMEOUT", 10),
			AutoMigrate:    getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("SECRET_KEY", ""),
			Algorithm:      getEnv("ALGORITHM", "HS256"),
			AccessTokenTTL: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 1440)) * time.Minute,
		},
		Auth: AuthConfig{
			MaxLoginAttempts: getEnvInt("AUTH_MAX_LOGIN_ATTEMPTS", 5),
			LockoutDuration:  time.Duration(getEnvInt("AUTH_LOCKOUT_MINUTES", 15)) * time.Minute,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "debug"),
			File:  getEnv("LOG_FILE", ""),
		},
		Seed: SeedConfig{
			DevAdmin:      getEnvBool("SEED_DEV_ADMIN", false),
			AdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin@filasling.local"),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Предупреждение: %s=%q не является числом, используется %d", key, value, fallback)
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
