package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Ai      AIConfig
	Emotion EmotionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	StaticRoot         string
	SessionStore       string // "memory" or "redis"
	RedisURL           string
	TurnEventsTopic    string
}

type AIConfig struct {
	LLMProvider    string // "ollama" or "openai"
	LLMModel       string // e.g. "llama3", "gpt-4o-mini"
	OllamaBaseURL  string
	OpenAIBaseURL  string
	OpenAIKey      string
	MaxRetries     int
	TimeoutSeconds int
}

type EmotionConfig struct {
	BaseURL string
	Model   string
	APIKey  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			StaticRoot:         getEnv("STATIC_ROOT", "./web"),
			SessionStore:       getEnv("SESSION_STORE", "memory"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			TurnEventsTopic:    getEnv("TURN_EVENTS_TOPIC", "CHAT_TURN_RECORDED"),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:       getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
			OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
			MaxRetries:     getEnvAsInt("LLM_MAX_RETRIES", 3),
			TimeoutSeconds: getEnvAsInt("LLM_TIMEOUT_SECONDS", 60),
		},
		Emotion: EmotionConfig{
			BaseURL: getEnv("EMOTION_BASE_URL", ""),
			Model:   getEnv("EMOTION_MODEL", ""),
			APIKey:  getEnv("EMOTION_API_KEY", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
