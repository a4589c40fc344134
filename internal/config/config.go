// Package config reads process configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr  string
	MySQLDSN  string
	RedisAddr string

	GeminiAPIKey string
	GeminiModel  string
	LLMTimeout   time.Duration

	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string
}

func Load() *Config {
	return &Config{
		HTTPAddr:  envOr("HTTP_ADDR", ":8080"),
		MySQLDSN:  envOr("MYSQL_DSN", "root:root@tcp(localhost:3306)/skylit?parseTime=true"),
		RedisAddr: envOr("REDIS_ADDR", "localhost:6379"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMTimeout:   time.Duration(envOrInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second,

		TwilioAccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppFrom: os.Getenv("TWILIO_WHATSAPP_FROM"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
