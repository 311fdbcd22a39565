package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DataFile          string
	Language          string
	MaxDepth          int
	TranslationFolder string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		DataFile:          getEnv("TASKS_FILE", "tasks.json"),
		Language:          getEnv("TASKS_LANG", "en"),
		MaxDepth:          getEnvInt("TASKS_MAX_DEPTH", 3),
		TranslationFolder: getEnv("TASKS_TRANSLATIONS", "pkg/translator/translation"),
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
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
