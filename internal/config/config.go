// Пакет config — загрузка и валидация конфигурации Lumina Studio
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Lumina Studio.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Окружение (development, production) — влияет на Secure flag cookie
	Env string
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- PostgreSQL ---

	// Хост PostgreSQL
	DBHost string
	// Порт PostgreSQL
	DBPort int
	// Имя базы данных
	DBName string
	// Имя пользователя PostgreSQL
	DBUser string
	// Пароль пользователя PostgreSQL
	DBPassword string
	// Режим SSL: disable, require, verify-ca, verify-full
	DBSSLMode string

	// --- Сессии ---

	// Секрет для подписи сессионных токенов (HMAC-SHA256)
	JWTSecret string

	// --- Объектное хранилище (S3-совместимое) ---

	// Endpoint хранилища (пусто или "placeholder" — хранилище не настроено)
	StorageEndpoint string
	// Регион (для SigV4, у совместимых хранилищ обычно фиктивный)
	StorageRegion string
	// Access key
	StorageAccessKey string
	// Secret key
	StorageSecretKey string
	// Bucket для фотографий
	PhotoBucket string
	// Bucket для видео
	VideoBucket string
	// Базовый публичный URL объектов (если пусто — выводится из endpoint)
	StoragePublicBaseURL string

	// --- Redis (опционально, список отозванных токенов) ---

	// Адрес Redis (пусто — ревокация отключена, токены полностью stateless)
	RedisAddr string
	// Пароль Redis
	RedisPassword string
	// Номер базы Redis
	RedisDB int

	// --- Мониторинг зависимостей ---

	// Имя группы topologymetrics
	DephealthGroup string
	// Интервал проверки зависимостей topologymetrics
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// LS_PORT — порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("LS_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("LS_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("LS_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// LS_ENV — окружение (по умолчанию development)
	cfg.Env = getEnvDefault("LS_ENV", "development")
	if cfg.Env != "development" && cfg.Env != "production" {
		return nil, fmt.Errorf("LS_ENV: недопустимое значение %q, допустимые: development, production", cfg.Env)
	}

	// LS_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("LS_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LS_LOG_LEVEL: %w", err)
	}

	// LS_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("LS_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("LS_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- PostgreSQL ---

	// LS_DB_HOST — обязательный
	cfg.DBHost, err = getEnvRequired("LS_DB_HOST")
	if err != nil {
		return nil, err
	}

	// LS_DB_PORT — порт PostgreSQL (по умолчанию 5432)
	cfg.DBPort, err = getEnvInt("LS_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("LS_DB_PORT: %w", err)
	}

	// LS_DB_NAME — обязательный
	cfg.DBName, err = getEnvRequired("LS_DB_NAME")
	if err != nil {
		return nil, err
	}

	// LS_DB_USER — обязательный
	cfg.DBUser, err = getEnvRequired("LS_DB_USER")
	if err != nil {
		return nil, err
	}

	// LS_DB_PASSWORD — обязательный
	cfg.DBPassword, err = getEnvRequired("LS_DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	// LS_DB_SSL_MODE — режим SSL (по умолчанию disable)
	cfg.DBSSLMode = getEnvDefault("LS_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[cfg.DBSSLMode] {
		return nil, fmt.Errorf("LS_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
	}

	// --- Сессии ---

	// LS_JWT_SECRET — обязательный
	cfg.JWTSecret, err = getEnvRequired("LS_JWT_SECRET")
	if err != nil {
		return nil, err
	}

	// --- Объектное хранилище ---

	// LS_STORAGE_ENDPOINT — опциональный: без него загрузка медиа недоступна,
	// но сайт и админка продолжают работать.
	cfg.StorageEndpoint = strings.TrimRight(getEnvDefault("LS_STORAGE_ENDPOINT", ""), "/")

	// LS_STORAGE_REGION — регион (по умолчанию us-east-1)
	cfg.StorageRegion = getEnvDefault("LS_STORAGE_REGION", "us-east-1")

	// LS_STORAGE_ACCESS_KEY / LS_STORAGE_SECRET_KEY — ключи доступа
	cfg.StorageAccessKey = getEnvDefault("LS_STORAGE_ACCESS_KEY", "")
	cfg.StorageSecretKey = getEnvDefault("LS_STORAGE_SECRET_KEY", "")

	// LS_PHOTO_BUCKET / LS_VIDEO_BUCKET — целевые buckets
	cfg.PhotoBucket = getEnvDefault("LS_PHOTO_BUCKET", "photos")
	cfg.VideoBucket = getEnvDefault("LS_VIDEO_BUCKET", "videos")

	// LS_STORAGE_PUBLIC_BASE_URL — базовый публичный URL (по умолчанию endpoint)
	cfg.StoragePublicBaseURL = strings.TrimRight(
		getEnvDefault("LS_STORAGE_PUBLIC_BASE_URL", cfg.StorageEndpoint), "/")

	// --- Redis ---

	// LS_REDIS_ADDR — опциональный (host:port)
	cfg.RedisAddr = getEnvDefault("LS_REDIS_ADDR", "")
	cfg.RedisPassword = getEnvDefault("LS_REDIS_PASSWORD", "")
	cfg.RedisDB, err = getEnvInt("LS_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("LS_REDIS_DB: %w", err)
	}

	// --- Мониторинг зависимостей ---

	// LS_DEPHEALTH_GROUP — имя группы (по умолчанию lumina)
	cfg.DephealthGroup = getEnvDefault("LS_DEPHEALTH_GROUP", "lumina")

	// LS_DEPHEALTH_CHECK_INTERVAL — интервал проверки зависимостей (по умолчанию 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("LS_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("LS_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	// LS_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("LS_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("LS_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// Production сообщает, запущен ли сервис в production-окружении.
// Влияет на Secure flag сессионного cookie.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// StorageConfigured сообщает, настроено ли объектное хранилище.
// Endpoint со словом "placeholder" считается не настроенным —
// таким шаблонные .env-файлы помечают незаполненные значения.
func (c *Config) StorageConfigured() bool {
	return c.StorageEndpoint != "" && !strings.Contains(c.StorageEndpoint, "placeholder")
}

// DatabaseDSN возвращает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// DatabaseURL возвращает URL подключения к PostgreSQL
// (для golang-migrate и topologymetrics).
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
