package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const DefaultModel = "gemini-2.0-flash"

type Config struct {
	// Server
	Port           string
	Env            string
	LogLevel       string
	MaxBodyBytes   int64
	RequestTimeout int // seconds

	// Gemini AI
	GeminiAPIKey string // fallback when a request carries no api_key
	GeminiModel  string

	// Chat
	ChatStrictRoles bool

	// Rate limiting
	RedisURL           string
	RateLimitPerMinute int

	// CORS
	CORSAllowedOrigins []string

	// Proxy
	TrustProxyHeaders bool // honor X-Forwarded-For / X-Real-IP
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8000"),
		Env:                getEnvOrDefault("ENV", "development"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		MaxBodyBytes:       int64(getEnvAsIntOrDefault("MAX_BODY_BYTES", 64*1024)),
		RequestTimeout:     getEnvAsIntOrDefault("REQUEST_TIMEOUT_SECONDS", 60),
		GeminiAPIKey:       getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:        getEnvOrDefault("GEMINI_MODEL", DefaultModel),
		ChatStrictRoles:    getEnvAsBoolOrDefault("CHAT_STRICT_ROLES", false),
		RedisURL:           getEnvOrDefault("REDIS_URL", ""),
		RateLimitPerMinute: getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 60),
		CORSAllowedOrigins: getEnvAsListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustProxyHeaders:  getEnvAsBoolOrDefault("TRUST_PROXY_HEADERS", false),
	}

	return cfg
}

// IsProduction reports whether the server runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvAsListOrDefault(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
