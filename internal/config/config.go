package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string
	SecretKey  string
	TokenTTL   time.Duration
	UploadDir  string
}

func LoadConfig() (Config, error) {

	err := godotenv.Load()

	return Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "skillmap"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		SecretKey:  getEnv("SECRET_KEY", "dev-secret-change-me"),
		TokenTTL:   time.Duration(getEnvInt("TOKEN_TTL_MINUTES", 30)) * time.Minute,
		UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
	}, err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
