package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	JWTSecret     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SendGridKey   string
	EmailSender   string
}

// Load reads configuration from a .env file if present, falling back to the
// process environment.
func Load() *Config {
	_ = godotenv.Load()
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		Port:          getEnv("PORT", "8000"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "marketplace"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		SendGridKey:   os.Getenv("SENDGRID_API_KEY"),
		EmailSender:   getEnv("EMAIL_SENDER", "no-reply@nexus-market.example.com"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
