package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки приложения
type Config struct {
	// Server
	Port string
	Host string

	// Database
	DBPath string

	// File Storage
	UploadPath  string
	MaxFileSize int64

	// Security
	JWTSecret     string
	JWTExpiration time.Duration
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	_ = godotenv.Load()

	config := &Config{
		Port:          getEnv("PORT", "8000"),
		Host:          getEnv("HOST", "0.0.0.0"),
		DBPath:        getEnv("DB_PATH", "/tmp/tasktalk.db"),
		UploadPath:    getEnv("UPLOAD_PATH", "/tmp/tasktalk_uploads"),
		JWTSecret:     getEnv("JWT_SECRET", "tasktalk_secret_key"),
		JWTExpiration: 24 * time.Hour,
	}

	if maxFileSize, err := strconv.ParseInt(getEnv("MAX_FILE_SIZE", "52428800"), 10, 64); err == nil {
		config.MaxFileSize = maxFileSize
	} else {
		config.MaxFileSize = 50 * 1024 * 1024 // 50MB по умолчанию
	}

	return config, nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
