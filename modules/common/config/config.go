package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config - all environment configuration for the server
type Config struct {
	// Gemini API (optional - text generation degrades to fallbacks without it)
	GeminiAPIKey string
	GeminiModel  string

	// Image search
	SearchBaseURL string
	MaxImages     int

	// Redis (optional - sessions fall back to in-memory storage)
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool

	// Supabase (optional - users fall back to in-memory storage)
	SupabaseURL        string
	SupabaseServiceKey string

	// Server
	Port        string
	RequireAuth bool

	// Sessions
	SessionTTLHours int
}

var globalConfig *Config

// LoadConfig - load .env and environment variables
func LoadConfig() (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	useTLS := false
	if tlsStr := os.Getenv("REDIS_USE_TLS"); tlsStr != "" {
		if parsed, err := strconv.ParseBool(tlsStr); err == nil {
			useTLS = parsed
		}
	}

	requireAuth := false
	if authStr := os.Getenv("REQUIRE_AUTH"); authStr != "" {
		if parsed, err := strconv.ParseBool(authStr); err == nil {
			requireAuth = parsed
		}
	}

	maxImages := 5
	if maxStr := os.Getenv("MAX_IMAGES"); maxStr != "" {
		if parsed, err := strconv.Atoi(maxStr); err == nil && parsed > 0 {
			maxImages = parsed
		}
	}

	sessionTTL := 24
	if ttlStr := os.Getenv("SESSION_TTL_HOURS"); ttlStr != "" {
		if parsed, err := strconv.Atoi(ttlStr); err == nil && parsed > 0 {
			sessionTTL = parsed
		}
	}

	globalConfig = &Config{
		// Gemini API
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		// Image search
		SearchBaseURL: getEnv("SEARCH_BASE_URL", "https://duckduckgo.com"),
		MaxImages:     maxImages,

		// Redis
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisUseTLS:   useTLS,

		// Supabase
		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),

		// Server
		Port:        getEnv("PORT", "8080"),
		RequireAuth: requireAuth,

		// Sessions
		SessionTTLHours: sessionTTL,
	}

	// Missing credentials are a valid state: the pipeline degrades instead of failing
	if globalConfig.GeminiAPIKey == "" {
		log.Println("⚠️  GEMINI_API_KEY not set - query refinement and descriptions use fallbacks")
	}
	if !globalConfig.HasRedis() {
		log.Println("⚠️  REDIS_HOST not set - sessions stored in memory")
	}
	if !globalConfig.HasSupabase() {
		log.Println("⚠️  SUPABASE_URL not set - users stored in memory")
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Gemini: %s (configured: %v)", globalConfig.GeminiModel, globalConfig.GeminiAPIKey != "")
	log.Printf("   Image search: %s (max %d images)", globalConfig.SearchBaseURL, globalConfig.MaxImages)
	log.Printf("   Auth required: %v", globalConfig.RequireAuth)

	return globalConfig, nil
}

// GetConfig - fetch the loaded configuration
func GetConfig() *Config {
	if globalConfig == nil {
		log.Fatal("❌ Config not loaded. Call LoadConfig() first.")
	}
	return globalConfig
}

// HasRedis - whether a Redis backend is configured
func (c *Config) HasRedis() bool {
	return c.RedisHost != ""
}

// HasSupabase - whether a Supabase backend is configured
func (c *Config) HasSupabase() bool {
	return c.SupabaseURL != "" && c.SupabaseServiceKey != ""
}

// getEnv - read an environment variable with a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetRedisAddr - Redis connection string
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
